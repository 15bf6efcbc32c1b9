package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/pyscaffold/internal/crud"
	"github.com/cmmoran/pyscaffold/internal/orm"
	"github.com/cmmoran/pyscaffold/internal/router"
	"github.com/cmmoran/pyscaffold/internal/schema"
	"github.com/cmmoran/pyscaffold/pkg/manifest"
	"github.com/cmmoran/pyscaffold/pkg/scaffold"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

// Render produces the content of every generated file keyed by file name
// relative to opts.OutDir. Pages are rendered concurrently; the renderers
// share no state.
func Render(p *manifest.Project, opts *scaffold.Options) (map[string]string, error) {
	var (
		g       errgroup.Group
		models  string
		schemas string
		crudPy  string
		mainPy  string
		extras  string
	)

	if len(p.Models) > 0 {
		g.Go(func() (err error) {
			models, err = orm.ModelsPage(p.Models)
			return err
		})
		g.Go(func() (err error) {
			schemas, err = schema.SchemasPage(p.Models, schema.Options{PydanticV2: opts.PydanticV2})
			return err
		})
		g.Go(func() (err error) {
			crudPy, err = crud.CrudPage(p.Models, crud.Options{PydanticV2: opts.PydanticV2})
			return err
		})
		if !opts.SkipRoutes {
			g.Go(func() (err error) {
				mainPy, err = router.MainPage(p.Models)
				return err
			})
		}
	}
	if len(p.Classes) > 0 || len(p.Functions) > 0 {
		g.Go(func() (err error) {
			extras, err = RenderExtras(p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, 5)
	for name, content := range map[string]string{
		opts.ModelsFile:  models,
		opts.SchemasFile: schemas,
		opts.CrudFile:    crudPy,
		opts.MainFile:    mainPy,
		opts.ExtrasFile:  extras,
	} {
		if content != "" {
			out[name] = content
		}
	}
	return out, nil
}

// RenderExtras renders the project's free-form classes followed by its
// functions as one module.
func RenderExtras(p *manifest.Project) (string, error) {
	blocks := make([]string, 0, len(p.Classes)+len(p.Functions))
	for _, cs := range p.Classes {
		c, err := cs.Descriptor()
		if err != nil {
			return "", err
		}
		blocks = append(blocks, source.RenderClass(c))
	}
	for _, fs := range p.Functions {
		f, err := fs.Descriptor()
		if err != nil {
			return "", err
		}
		blocks = append(blocks, source.RenderFunction(f))
	}
	return source.RenderModule("", blocks...), nil
}

// Generate loads the project named by opts, renders it and writes every file
// under opts.OutDir. It returns the written paths in sorted order.
func Generate(opts *scaffold.Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p, err := manifest.Load(opts.Project)
	if err != nil {
		return nil, err
	}
	files, err := Render(p, opts)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Clean(filepath.Join(opts.OutDir, name))
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create directory for %s: %w", name, err)
		}
		if err = os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		slog.With("file", path, "bytes", len(files[name])).Info("generated")
		written = append(written, path)
	}
	return written, nil
}
