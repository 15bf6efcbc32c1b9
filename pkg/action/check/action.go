package check

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/pyscaffold/pkg/action/generate"
	"github.com/cmmoran/pyscaffold/pkg/manifest"
	"github.com/cmmoran/pyscaffold/pkg/scaffold"
)

// Diff renders the project in memory and compares it with opts.OutDir. Every
// configured output name is checked: a file the current options no longer
// produce (main.py after switching to SkipRoutes) is stale when it still
// exists. The result maps stale file names to a textual diff (on disk vs.
// generated); an empty map means the output is current.
func Diff(opts *scaffold.Options) (map[string]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p, err := manifest.Load(opts.Project)
	if err != nil {
		return nil, err
	}
	files, err := generate.Render(p, opts)
	if err != nil {
		return nil, err
	}

	names := []string{opts.ModelsFile, opts.SchemasFile, opts.CrudFile, opts.MainFile, opts.ExtrasFile}
	stale := make(map[string]string)
	for _, name := range names {
		want, produced := files[name]
		path := filepath.Join(opts.OutDir, name)
		current, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if !produced {
				continue
			}
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if d := cmp.Diff(string(current), want); d != "" {
			slog.With("file", path, "produced", produced).Debug("stale")
			stale[name] = d
		}
	}
	return stale, nil
}
