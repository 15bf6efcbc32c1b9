package model

import "strings"

// Exposure controls which generated schema classes carry a field.
type Exposure string

const (
	ExposurePublic Exposure = "public" // base schema, inherited by create and read
	ExposureRead   Exposure = "read"   // read schema only
	ExposureWrite  Exposure = "write"  // create schema only
	ExposureHidden Exposure = "hidden" // ORM model only
)

type Field struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Datatype string `yaml:"datatype" json:"datatype" validate:"required"` // python type: int, str, bool, ...
	// Default is a python literal, e.g. "True" or "0".
	Default    string   `yaml:"default,omitempty" json:"default,omitempty"`
	Index      bool     `yaml:"index,omitempty" json:"index,omitempty"`
	Unique     bool     `yaml:"unique,omitempty" json:"unique,omitempty"`
	PrimaryKey bool     `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	ForeignKey string   `yaml:"foreign_key,omitempty" json:"foreign_key,omitempty"` // "users.id"
	Nullable   bool     `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Exposure   Exposure `yaml:"exposure,omitempty" json:"exposure,omitempty" validate:"omitempty,oneof=public read write hidden"`
	Transient  bool     `yaml:"transient,omitempty" json:"transient,omitempty"` // schema only, no column
	Comment    string   `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// EffectiveExposure resolves the default exposure: primary and foreign keys
// are read-only, everything else is public.
func (f *Field) EffectiveExposure() Exposure {
	if f.Exposure != "" {
		return f.Exposure
	}
	if f.PrimaryKey || f.ForeignKey != "" {
		return ExposureRead
	}
	return ExposurePublic
}

// InCreateSchema reports whether the create schema carries f.
func (f *Field) InCreateSchema() bool {
	e := f.EffectiveExposure()
	return e == ExposurePublic || e == ExposureWrite
}

// Relationship links two models. Many marks the "one-to-many" side.
type Relationship struct {
	Name          string `yaml:"name" json:"name" validate:"required"`
	Model         string `yaml:"model" json:"model" validate:"required"`
	BackPopulates string `yaml:"back_populates,omitempty" json:"back_populates,omitempty"`
	Many          bool   `yaml:"many,omitempty" json:"many,omitempty"`
}

type Model struct {
	Name          string          `yaml:"name" json:"name" validate:"required"`
	Plural        string          `yaml:"plural,omitempty" json:"plural,omitempty"`
	Comment       string          `yaml:"comment,omitempty" json:"comment,omitempty"`
	Fields        []*Field        `yaml:"fields" json:"fields" validate:"required,min=1,dive,required"`
	Relationships []*Relationship `yaml:"relationships,omitempty" json:"relationships,omitempty" validate:"dive,required"`
}

// PrimaryKey returns the first primary key field, or nil.
func (m *Model) PrimaryKey() *Field {
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// Columns returns the fields that are persisted, in declaration order.
func (m *Model) Columns() []*Field {
	out := make([]*Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if !f.Transient {
			out = append(out, f)
		}
	}
	return out
}

// FieldsWith returns the fields whose effective exposure is e.
func (m *Model) FieldsWith(e Exposure) []*Field {
	out := make([]*Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.EffectiveExposure() == e {
			out = append(out, f)
		}
	}
	return out
}

// ForeignKeys returns the persisted foreign key fields.
func (m *Model) ForeignKeys() []*Field {
	out := make([]*Field, 0)
	for _, f := range m.Columns() {
		if f.ForeignKey != "" {
			out = append(out, f)
		}
	}
	return out
}

// ForeignKeyArgs returns the persisted foreign keys the create schema does
// not carry; creating a row needs them passed separately.
func (m *Model) ForeignKeyArgs() []*Field {
	out := make([]*Field, 0)
	for _, f := range m.ForeignKeys() {
		if !f.InCreateSchema() {
			out = append(out, f)
		}
	}
	return out
}

// Uniques returns the persisted unique fields that are not primary keys.
func (m *Model) Uniques() []*Field {
	out := make([]*Field, 0)
	for _, f := range m.Columns() {
		if f.Unique && !f.PrimaryKey {
			out = append(out, f)
		}
	}
	return out
}

// SnakeName is the model name lowercased, used for function and variable names.
func (m *Model) SnakeName() string {
	return strings.ToLower(m.Name)
}
