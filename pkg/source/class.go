package source

import (
	"fmt"
	"strings"
)

// Class describes a class definition. Build one with NewClass; a Class is
// never modified after construction.
type Class struct {
	name       string
	base       string
	attributes []Attribute
	inner      *Class
	depth      int
}

type ClassOption func(*Class)

// WithBase sets the single base class. An empty base emits no parentheses.
func WithBase(base string) ClassOption {
	return func(c *Class) { c.base = base }
}

// WithAttributes appends fields in declaration order.
func WithAttributes(attrs ...Attribute) ClassOption {
	return func(c *Class) { c.attributes = append(c.attributes, attrs...) }
}

// WithInner nests an already constructed class. A later WithInner replaces
// an earlier one.
func WithInner(inner *Class) ClassOption {
	return func(c *Class) { c.inner = inner }
}

// NewClass builds a class descriptor. The nested class must exist before its
// parent, so a descriptor can never contain itself.
func NewClass(name string, opts ...ClassOption) (*Class, error) {
	c := &Class{name: name}
	for _, fn := range opts {
		fn(c)
	}
	if strings.TrimSpace(c.name) == "" {
		return nil, fmt.Errorf("%w: class name is empty", ErrMalformedDescriptor)
	}
	for i, a := range c.attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: class %q: attribute %d has no name", ErrMalformedDescriptor, c.name, i)
		}
	}
	c.attributes = cloneAttributes(c.attributes)
	c.depth = 1
	if c.inner != nil {
		c.depth = c.inner.depth + 1
	}
	if c.depth > MaxNestingDepth {
		return nil, fmt.Errorf("%w: class %q nests %d levels, limit is %d", ErrMalformedDescriptor, c.name, c.depth, MaxNestingDepth)
	}
	return c, nil
}

// MustClass is like NewClass but panics on error. Intended for fixed
// descriptors known to be valid.
func MustClass(name string, opts ...ClassOption) *Class {
	c, err := NewClass(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Class) Name() string  { return c.name }
func (c *Class) Base() string  { return c.base }
func (c *Class) Inner() *Class { return c.inner }

// Depth is 1 for a class without an inner class.
func (c *Class) Depth() int { return c.depth }

// Attributes returns a copy of the fields in declaration order.
func (c *Class) Attributes() []Attribute {
	return cloneAttributes(c.attributes)
}

// RenderClass renders a class definition without a trailing newline. A nil
// class renders as "".
func RenderClass(c *Class) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(c.name)
	if c.base != "" {
		sb.WriteString("(" + c.base + ")")
	}
	sb.WriteString(":")

	if len(c.attributes) == 0 && c.inner == nil {
		sb.WriteString("\n" + indentUnit + "pass")
		return sb.String()
	}

	if len(c.attributes) > 0 {
		sb.WriteString("\n")
		for _, a := range c.attributes {
			sb.WriteString("\n" + indentUnit + FormatTypedEntry(a))
		}
	}

	if c.inner != nil {
		// the splice point carries the first line's indent, the rest is
		// shifted here
		sb.WriteString("\n\n" + indentUnit)
		sb.WriteString(indentLines(RenderClass(c.inner), true, true))
	}
	return sb.String()
}
