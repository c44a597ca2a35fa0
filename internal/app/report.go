package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/datacheckgo/internal/model"
	"github.com/vk/datacheckgo/internal/resource"
)

// writeReport prints one line per declared resource to the report writer and
// returns how many resources are not added. For a failed resource the error
// recorded at add time is preferred, since it carries the full ordered list
// of missing dependencies; otherwise the registry's current diagnostics are
// used.
func (a *App) writeReport(ctx context.Context, m *model.Model, addErrs map[resource.Ref]error) int {
	notAdded := 0

	for _, desc := range m.Descriptors() {
		ref := desc.Ref()
		diag := a.registry.Diagnostics(ctx, ref)
		if diag.IsAdded() {
			fmt.Fprintf(a.outW, "added      %s\n", ref)
			continue
		}

		notAdded++
		err := diag.Err()
		if addErr, ok := addErrs[ref]; ok {
			err = addErr
		}
		fmt.Fprintf(a.outW, "not added  %s\n", ref)
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(a.outW, "           %s\n", strings.TrimLeft(line, " "))
		}
	}

	return notAdded
}
