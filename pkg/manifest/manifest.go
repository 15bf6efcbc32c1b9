package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/pyscaffold/internal/model"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

// ErrInvalidProject is returned when a project file is structurally valid
// YAML but describes something that cannot be generated.
var ErrInvalidProject = errors.New("invalid project")

var validate = validator.New()

// AttributeSpec describes a class field or function argument.
type AttributeSpec struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Datatype    string `yaml:"datatype" json:"datatype" validate:"required"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ClassSpec is the file form of a class descriptor.
type ClassSpec struct {
	Name       string          `yaml:"name" json:"name" validate:"required"`
	Base       string          `yaml:"base,omitempty" json:"base,omitempty"`
	Attributes []AttributeSpec `yaml:"attributes,omitempty" json:"attributes,omitempty" validate:"dive"`
	Inner      *ClassSpec      `yaml:"inner,omitempty" json:"inner,omitempty"`
}

// FunctionSpec is the file form of a function descriptor.
type FunctionSpec struct {
	Name      string          `yaml:"name" json:"name" validate:"required"`
	Arguments []AttributeSpec `yaml:"arguments,omitempty" json:"arguments,omitempty" validate:"dive"`
	Return    string          `yaml:"return,omitempty" json:"return,omitempty"`
	Body      string          `yaml:"body,omitempty" json:"body,omitempty"`
	Decorator string          `yaml:"decorator,omitempty" json:"decorator,omitempty"`
}

// Project is the input to a generation run.
type Project struct {
	Models    []*model.Model  `yaml:"models,omitempty" json:"models,omitempty" validate:"dive,required"`
	Classes   []*ClassSpec    `yaml:"classes,omitempty" json:"classes,omitempty" validate:"dive,required"`
	Functions []*FunctionSpec `yaml:"functions,omitempty" json:"functions,omitempty" validate:"dive,required"`
}

// Load reads and validates a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a project document.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the project to the provided path, creating parent directories as needed.
func (p *Project) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}

	return nil
}

// Validate checks class nesting, field constraints, unique model names and
// that every relationship points at a declared model. Nesting is checked
// first so a class spec that contains itself fails before anything walks it.
func (p *Project) Validate() error {
	for _, c := range p.Classes {
		if err := c.checkNesting(); err != nil {
			return err
		}
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	seen := make(map[string]bool, len(p.Models))
	for _, m := range p.Models {
		key := strings.ToLower(m.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate model %q", ErrInvalidProject, m.Name)
		}
		seen[key] = true
	}
	for _, m := range p.Models {
		for _, r := range m.Relationships {
			if !seen[strings.ToLower(r.Model)] {
				return fmt.Errorf("%w: model %q: relationship %q references unknown model %q", ErrInvalidProject, m.Name, r.Name, r.Model)
			}
		}
	}
	return nil
}

// Model returns the model with the given name, case-insensitively.
func (p *Project) Model(name string) *model.Model {
	for _, m := range p.Models {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

func (a AttributeSpec) attribute() source.Attribute {
	return source.Attr(a.Name, a.Datatype).WithDefault(a.Default).WithDescription(a.Description)
}

func attributes(specs []AttributeSpec) []source.Attribute {
	out := make([]source.Attribute, len(specs))
	for i, s := range specs {
		out[i] = s.attribute()
	}
	return out
}

// Descriptor converts c and its nested classes into a class descriptor.
// Nesting beyond source.MaxNestingDepth, including a spec that contains
// itself, is rejected before it is walked any further.
func (c *ClassSpec) Descriptor() (*source.Class, error) {
	return c.descriptor(1)
}

// checkNesting walks the Inner chain and fails once it is deeper than
// source.MaxNestingDepth.
func (c *ClassSpec) checkNesting() error {
	depth := 0
	for cur := c; cur != nil; cur = cur.Inner {
		depth++
		if depth > source.MaxNestingDepth {
			return fmt.Errorf("%w: class %q nests more than %d levels", source.ErrMalformedDescriptor, c.Name, source.MaxNestingDepth)
		}
	}
	return nil
}

func (c *ClassSpec) descriptor(depth int) (*source.Class, error) {
	if depth > source.MaxNestingDepth {
		return nil, fmt.Errorf("%w: class %q nests more than %d levels", source.ErrMalformedDescriptor, c.Name, source.MaxNestingDepth)
	}
	var inner *source.Class
	if c.Inner != nil {
		var err error
		if inner, err = c.Inner.descriptor(depth + 1); err != nil {
			return nil, err
		}
	}
	return source.NewClass(c.Name,
		source.WithBase(c.Base),
		source.WithAttributes(attributes(c.Attributes)...),
		source.WithInner(inner),
	)
}

// Descriptor converts f into a function descriptor.
func (f *FunctionSpec) Descriptor() (*source.Function, error) {
	return source.NewFunction(f.Name, f.Return,
		source.WithArguments(attributes(f.Arguments)...),
		source.WithBody(strings.TrimRight(f.Body, "\n")),
		source.WithDecorator(f.Decorator),
	)
}
