package scaffold

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrFileNameClash is returned by Validate when two outputs share a file name.
var ErrFileNameClash = errors.New("output file names must be distinct")

// Options control a generation run.
//
// Project     – project file describing models, classes and functions
// OutDir      – directory generated files are written to
// ModelsFile  – SQLAlchemy models output file
// SchemasFile – pydantic schemas output file
// CrudFile    – CRUD helpers output file
// MainFile    – FastAPI application output file
// ExtrasFile  – free-form classes and functions output file
// PydanticV2  – emit pydantic v2 idioms (from_attributes, model_dump)
// SkipRoutes  – do not generate MainFile
type Options struct {
	Project     string `json:"project,omitempty" yaml:"project,omitempty" toml:"project,omitempty" mapstructure:"project,omitempty"`
	OutDir      string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ModelsFile  string `json:"models_file,omitempty" yaml:"models_file,omitempty" toml:"models_file,omitempty" mapstructure:"models_file,omitempty"`
	SchemasFile string `json:"schemas_file,omitempty" yaml:"schemas_file,omitempty" toml:"schemas_file,omitempty" mapstructure:"schemas_file,omitempty"`
	CrudFile    string `json:"crud_file,omitempty" yaml:"crud_file,omitempty" toml:"crud_file,omitempty" mapstructure:"crud_file,omitempty"`
	MainFile    string `json:"main_file,omitempty" yaml:"main_file,omitempty" toml:"main_file,omitempty" mapstructure:"main_file,omitempty"`
	ExtrasFile  string `json:"extras_file,omitempty" yaml:"extras_file,omitempty" toml:"extras_file,omitempty" mapstructure:"extras_file,omitempty"`
	PydanticV2  bool   `json:"pydantic_v2,omitempty" yaml:"pydantic_v2,omitempty" toml:"pydantic_v2,omitempty" mapstructure:"pydantic_v2,omitempty"`
	SkipRoutes  bool   `json:"skip_routes,omitempty" yaml:"skip_routes,omitempty" toml:"skip_routes,omitempty" mapstructure:"skip_routes,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		Project:     "project.yaml",
		OutDir:      "app",
		ModelsFile:  "models.py",
		SchemasFile: "schemas.py",
		CrudFile:    "crud.py",
		MainFile:    "main.py",
		ExtrasFile:  "extras.py",
	}
}

// Normalize fills empty settings with defaults and makes relative
// directories absolute.
func (o *Options) Normalize() {
	def := NewOptions()
	if len(o.Project) == 0 {
		o.Project = def.Project
	}
	if len(o.OutDir) == 0 {
		o.OutDir = def.OutDir
	}
	if len(o.ModelsFile) == 0 {
		o.ModelsFile = def.ModelsFile
	}
	if len(o.SchemasFile) == 0 {
		o.SchemasFile = def.SchemasFile
	}
	if len(o.CrudFile) == 0 {
		o.CrudFile = def.CrudFile
	}
	if len(o.MainFile) == 0 {
		o.MainFile = def.MainFile
	}
	if len(o.ExtrasFile) == 0 {
		o.ExtrasFile = def.ExtrasFile
	}
	if abs, err := filepath.Abs(o.Project); err == nil {
		o.Project = abs
	}
	if abs, err := filepath.Abs(o.OutDir); err == nil {
		o.OutDir = abs
	}
}

// Validate reports settings Normalize cannot repair.
func (o *Options) Validate() error {
	seen := map[string]bool{}
	for _, f := range []string{o.ModelsFile, o.SchemasFile, o.CrudFile, o.MainFile, o.ExtrasFile} {
		key := strings.ToLower(filepath.Clean(f))
		if seen[key] {
			return ErrFileNameClash
		}
		seen[key] = true
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithProject(p string) Option     { return func(o *Options) { o.Project = p } }
func WithOutDir(d string) Option      { return func(o *Options) { o.OutDir = d } }
func WithModelsFile(f string) Option  { return func(o *Options) { o.ModelsFile = f } }
func WithSchemasFile(f string) Option { return func(o *Options) { o.SchemasFile = f } }
func WithCrudFile(f string) Option    { return func(o *Options) { o.CrudFile = f } }
func WithMainFile(f string) Option    { return func(o *Options) { o.MainFile = f } }
func WithExtrasFile(f string) Option  { return func(o *Options) { o.ExtrasFile = f } }
func WithPydanticV2() Option          { return func(o *Options) { o.PydanticV2 = true } }
func WithSkipRoutes() Option          { return func(o *Options) { o.SkipRoutes = true } }

// New applies opts over the defaults and normalizes the result.
func New(opts ...Option) *Options {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	o.Normalize()
	return o
}
