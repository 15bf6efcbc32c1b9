package source

// Attribute is a typed entry: a class field or a function argument.
//
// Attribute is a value type. WithDefault and WithDescription return modified
// copies, so an Attribute held by a descriptor never changes underneath it.
type Attribute struct {
	Name     string
	Datatype string
	// Default is a literal source expression; "" means no default.
	Default string
	// Description is carried for documentation tooling and never rendered.
	Description string
}

// Attr returns an Attribute without a default value.
func Attr(name, datatype string) Attribute {
	return Attribute{Name: name, Datatype: datatype}
}

func (a Attribute) WithDefault(v string) Attribute {
	a.Default = v
	return a
}

func (a Attribute) WithDescription(d string) Attribute {
	a.Description = d
	return a
}

func (a Attribute) String() string {
	return FormatTypedEntry(a)
}

// FormatTypedEntry renders "<name>: <datatype>", suffixed with " = <default>"
// when the attribute has a default. Class fields and function arguments both
// go through here.
func FormatTypedEntry(a Attribute) string {
	s := a.Name + ": " + a.Datatype
	if a.Default != "" {
		s += " = " + a.Default
	}
	return s
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}
