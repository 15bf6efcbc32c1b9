package schema

import (
	"fmt"
	"strings"

	"github.com/cmmoran/pyscaffold/internal/model"
	"github.com/cmmoran/pyscaffold/internal/naming"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

const (
	baseSuffix   = "Base"
	createSuffix = "Create"
)

type Options struct {
	// PydanticV2 emits from_attributes instead of orm_mode in Config.
	PydanticV2 bool
}

// Classes returns the base, create and read schema classes for m, in that
// order.
func Classes(m *model.Model, opts Options) ([]*source.Class, error) {
	name := naming.ClassName(m.Name)
	baseName := name + baseSuffix

	base, err := source.NewClass(baseName,
		source.WithBase("BaseModel"),
		source.WithAttributes(attributes(m.FieldsWith(model.ExposurePublic))...),
	)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}

	create, err := source.NewClass(name+createSuffix,
		source.WithBase(baseName),
		source.WithAttributes(attributes(m.FieldsWith(model.ExposureWrite))...),
	)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}

	readAttrs := attributes(m.FieldsWith(model.ExposureRead))
	for _, r := range m.Relationships {
		if r.Many {
			readAttrs = append(readAttrs, source.Attr(r.Name, "List["+naming.ClassName(r.Model)+"]").WithDefault("[]"))
		}
	}
	read, err := source.NewClass(name,
		source.WithBase(baseName),
		source.WithAttributes(readAttrs...),
		source.WithInner(configClass(opts)),
	)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}

	return []*source.Class{base, create, read}, nil
}

func configClass(opts Options) *source.Class {
	flag := "orm_mode"
	if opts.PydanticV2 {
		flag = "from_attributes"
	}
	return source.MustClass("Config", source.WithAttributes(source.Attr(flag, "bool").WithDefault("True")))
}

func attributes(fields []*model.Field) []source.Attribute {
	out := make([]source.Attribute, 0, len(fields))
	for _, f := range fields {
		a := source.Attr(f.Name, f.Datatype).WithDefault(f.Default).WithDescription(f.Comment)
		if f.Nullable {
			a.Datatype = "Optional[" + f.Datatype + "]"
			if a.Default == "" {
				a.Default = "None"
			}
		}
		out = append(out, a)
	}
	return out
}

// SchemasPage renders schemas.py for all models.
func SchemasPage(models []*model.Model, opts Options) (string, error) {
	var (
		blocks   = make([]string, 0, len(models)*3)
		optional bool
		list     bool
	)
	for _, m := range models {
		classes, err := Classes(m, opts)
		if err != nil {
			return "", err
		}
		for _, c := range classes {
			blocks = append(blocks, source.RenderClass(c))
		}
		for _, f := range m.Fields {
			if f.Nullable && f.EffectiveExposure() != model.ExposureHidden {
				optional = true
			}
		}
		for _, r := range m.Relationships {
			list = list || r.Many
		}
	}

	var header strings.Builder
	typing := make([]string, 0, 2)
	if list {
		typing = append(typing, "List")
	}
	if optional {
		typing = append(typing, "Optional")
	}
	if len(typing) > 0 {
		header.WriteString("from typing import " + strings.Join(typing, ", ") + "\n\n")
	}
	header.WriteString("from pydantic import BaseModel\n")

	return source.RenderModule(header.String(), blocks...), nil
}
