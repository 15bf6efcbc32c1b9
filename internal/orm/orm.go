package orm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cmmoran/pyscaffold/internal/model"
	"github.com/cmmoran/pyscaffold/internal/naming"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

// ErrUnknownTypeMapping is returned when a field datatype has no SQLAlchemy
// column type.
var ErrUnknownTypeMapping = errors.New("unknown type mapping")

// BaseClass is the declarative base every model class extends.
const BaseClass = "Base"

var columnTypes = map[string]string{
	"int":      "Integer",
	"str":      "String",
	"bool":     "Boolean",
	"float":    "Float",
	"datetime": "DateTime",
	"date":     "Date",
	"bytes":    "LargeBinary",
}

// ColumnType maps a python datatype to its SQLAlchemy column type. Lookup is
// case-insensitive.
func ColumnType(datatype string) (string, error) {
	if ct, ok := columnTypes[strings.ToLower(strings.TrimSpace(datatype))]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTypeMapping, datatype)
}

// ModelClass builds the declarative class for m.
func ModelClass(m *model.Model) (*source.Class, error) {
	plural := naming.Plural(m.Name, m.Plural)
	attrs := []source.Attribute{
		source.Attr("__tablename__", "str").WithDefault(fmt.Sprintf("%q", plural)),
	}

	for _, f := range m.Columns() {
		a, err := columnAttribute(f)
		if err != nil {
			return nil, fmt.Errorf("model %s: field %s: %w", m.Name, f.Name, err)
		}
		attrs = append(attrs, a)
	}

	for _, r := range m.Relationships {
		attrs = append(attrs, relationshipAttribute(r))
	}

	return source.NewClass(naming.ClassName(m.Name),
		source.WithBase(BaseClass),
		source.WithAttributes(attrs...),
	)
}

func columnAttribute(f *model.Field) (source.Attribute, error) {
	ct, err := ColumnType(f.Datatype)
	if err != nil {
		return source.Attribute{}, err
	}
	args := []string{ct}
	if f.ForeignKey != "" {
		args = append(args, fmt.Sprintf("ForeignKey(%q)", f.ForeignKey))
	}
	if f.PrimaryKey {
		args = append(args, "primary_key=True")
	}
	if f.Unique && !f.PrimaryKey {
		args = append(args, "unique=True")
	}
	if f.Index {
		args = append(args, "index=True")
	}
	if f.Default != "" {
		args = append(args, "default="+f.Default)
	}

	mapped := f.Datatype
	if f.Nullable {
		mapped = "Optional[" + mapped + "]"
	}
	return source.Attr(f.Name, "Mapped["+mapped+"]").
		WithDefault("mapped_column(" + strings.Join(args, ", ") + ")").
		WithDescription(f.Comment), nil
}

func relationshipAttribute(r *model.Relationship) source.Attribute {
	target := fmt.Sprintf("%q", naming.ClassName(r.Model))
	if r.Many {
		target = "List[" + target + "]"
	}
	call := "relationship()"
	if r.BackPopulates != "" {
		call = fmt.Sprintf("relationship(back_populates=%q)", r.BackPopulates)
	}
	return source.Attr(r.Name, "Mapped["+target+"]").WithDefault(call)
}

// ModelsPage renders models.py for all models.
func ModelsPage(models []*model.Model) (string, error) {
	used := map[string]bool{}
	var (
		blocks   = make([]string, 0, len(models))
		optional bool
		list     bool
	)
	for _, m := range models {
		c, err := ModelClass(m)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, source.RenderClass(c))
		for _, f := range m.Columns() {
			ct, _ := ColumnType(f.Datatype)
			used[ct] = true
			if f.ForeignKey != "" {
				used["ForeignKey"] = true
			}
			optional = optional || f.Nullable
		}
		for _, r := range m.Relationships {
			list = list || r.Many
		}
	}

	return source.RenderModule(modelsHeader(used, optional, list), blocks...), nil
}

func modelsHeader(used map[string]bool, optional, list bool) string {
	var sb strings.Builder
	typing := make([]string, 0, 2)
	if list {
		typing = append(typing, "List")
	}
	if optional {
		typing = append(typing, "Optional")
	}
	if len(typing) > 0 {
		sb.WriteString("from typing import " + strings.Join(typing, ", ") + "\n\n")
	}

	names := make([]string, 0, len(used))
	for n := range used {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) > 0 {
		sb.WriteString("from sqlalchemy import " + strings.Join(names, ", ") + "\n")
	}
	sb.WriteString("from sqlalchemy.orm import Mapped, mapped_column, relationship\n\n")
	sb.WriteString("from .database import " + BaseClass + "\n")
	return sb.String()
}
