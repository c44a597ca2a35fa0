// Package snapshot persists the contents of a registry to disk as a
// versioned msgpack payload, and restores it. Writes are atomic: the payload
// is encoded to a temp file in the target directory and renamed into place.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vk/datacheckgo/internal/registry"
	"github.com/vk/datacheckgo/internal/resource"
)

// schemaVersion is incremented whenever the payload format changes, so stale
// snapshots are rejected instead of misread.
const schemaVersion uint16 = 1

// ErrSchemaMismatch is returned by Load when the snapshot was written with a
// different payload format version.
var ErrSchemaMismatch = errors.New("snapshot schema version mismatch")

// payload is the on-disk representation of a registry snapshot.
type payload struct {
	Schema    uint16
	SavedAt   time.Time
	Resources []record
}

// record flattens one descriptor into serializable form.
type record struct {
	Ref         string
	Description string
	DependsOn   []string
	SourceFile  string
}

// Save writes the registry's current contents to path.
func Save(path string, reg *registry.Registry) error {
	descriptors := reg.All()

	p := payload{
		Schema:    schemaVersion,
		SavedAt:   time.Now().UTC(),
		Resources: make([]record, 0, len(descriptors)),
	}
	for _, desc := range descriptors {
		rec := record{
			Ref:         desc.Ref().String(),
			Description: desc.Description,
			SourceFile:  desc.SourceFile,
		}
		for _, dep := range desc.DependsOn {
			rec.DependsOn = append(rec.DependsOn, dep.String())
		}
		p.Resources = append(p.Resources, rec)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&p); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	// Atomic replace.
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot from path and reconstructs the stored descriptors in
// their saved order.
func Load(path string) ([]*resource.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: snapshot %s has schema %d, want %d", ErrSchemaMismatch, path, p.Schema, schemaVersion)
	}

	descriptors := make([]*resource.Descriptor, 0, len(p.Resources))
	for _, rec := range p.Resources {
		ref, err := resource.ParseRef(rec.Ref)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot %s: %w", path, err)
		}

		desc := &resource.Descriptor{
			Kind:        ref.Kind,
			Name:        ref.Name,
			Description: rec.Description,
			SourceFile:  rec.SourceFile,
		}
		for _, rawDep := range rec.DependsOn {
			dep, err := resource.ParseRef(rawDep)
			if err != nil {
				return nil, fmt.Errorf("corrupt snapshot %s: %w", path, err)
			}
			desc.DependsOn = append(desc.DependsOn, dep)
		}
		descriptors = append(descriptors, desc)
	}

	return descriptors, nil
}
