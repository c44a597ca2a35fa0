package model

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vk/datacheckgo/internal/ctxlog"
	"github.com/vk/datacheckgo/internal/fsutil"
)

const (
	hclExt       = ".hcl"
	yamlSuiteExt = ".suite.yaml"
)

// Load discovers every resource file under the given paths and parses them
// into a single Model. Files are parsed in parallel, bounded by workers, and
// merged in sorted file order so that the result is deterministic.
func Load(ctx context.Context, workers int, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, hclExt, yamlSuiteExt)
		if err != nil {
			return nil, fmt.Errorf("failed to find resource files in %s: %w", path, err)
		}
		files = append(files, found...)
	}

	merged := NewModel()
	if len(files) == 0 {
		logger.Warn("No resource files found, returning empty model", "paths", paths)
		return merged, nil
	}
	logger.Debug("Found resource files to load", "count", len(files))

	if workers < 1 {
		workers = 1
	}

	// Parse in parallel, collect per-file results by index, merge serially.
	results := make([]*Model, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, filePath := range files {
		i, filePath := i, filePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			var partial *Model
			if strings.HasSuffix(filePath, yamlSuiteExt) {
				partial, err = decodeYAMLSuite(src, filePath)
			} else {
				partial, err = decodeHCL(src, filePath)
			}
			if err != nil {
				return err
			}

			results[i] = partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, partial := range results {
		if err := merged.merge(partial); err != nil {
			return nil, err
		}
	}

	logger.Info("Resource model loaded.",
		"batch_definitions", len(merged.BatchDefinitions),
		"expectation_suites", len(merged.Suites),
		"validation_definitions", len(merged.ValidationDefinitions),
		"checkpoints", len(merged.Checkpoints),
	)
	return merged, nil
}
