package source

import (
	"fmt"
	"strings"
)

// Function describes a function definition. Build one with NewFunction.
type Function struct {
	name        string
	arguments   []Attribute
	returnValue string
	body        string
	decorator   string
}

type FunctionOption func(*Function)

// WithArguments appends parameters in order. A non-empty Default becomes the
// parameter's default value.
func WithArguments(args ...Attribute) FunctionOption {
	return func(f *Function) { f.arguments = append(f.arguments, args...) }
}

// WithBody sets raw statements placed before the return line. Lines are
// indented as given; the text is not interpreted.
func WithBody(body string) FunctionOption {
	return func(f *Function) { f.body = body }
}

// WithDecorator sets a line emitted verbatim above the signature.
func WithDecorator(decorator string) FunctionOption {
	return func(f *Function) { f.decorator = decorator }
}

// NewFunction builds a function descriptor returning returnValue, a source
// expression emitted as is.
func NewFunction(name, returnValue string, opts ...FunctionOption) (*Function, error) {
	f := &Function{name: name, returnValue: returnValue}
	for _, fn := range opts {
		fn(f)
	}
	if strings.TrimSpace(f.name) == "" {
		return nil, fmt.Errorf("%w: function name is empty", ErrMalformedDescriptor)
	}
	for i, a := range f.arguments {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: function %q: argument %d has no name", ErrMalformedDescriptor, f.name, i)
		}
	}
	f.arguments = cloneAttributes(f.arguments)
	return f, nil
}

// MustFunction is like NewFunction but panics on error.
func MustFunction(name, returnValue string, opts ...FunctionOption) *Function {
	f, err := NewFunction(name, returnValue, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Function) Name() string        { return f.name }
func (f *Function) ReturnValue() string { return f.returnValue }
func (f *Function) Body() string        { return f.body }
func (f *Function) Decorator() string   { return f.decorator }

func (f *Function) Arguments() []Attribute {
	return cloneAttributes(f.arguments)
}

// RenderFunction renders a function definition without a trailing newline.
// A nil function renders as "".
func RenderFunction(f *Function) string {
	if f == nil {
		return ""
	}
	var sb strings.Builder
	if f.decorator != "" {
		sb.WriteString(f.decorator + "\n")
	}

	entries := make([]string, len(f.arguments))
	for i, a := range f.arguments {
		entries[i] = FormatTypedEntry(a)
	}
	sb.WriteString("def " + f.name + "(" + strings.Join(entries, ", ") + "):")

	if f.body != "" {
		sb.WriteString("\n" + indentLines(f.body, false, false))
	}

	sb.WriteString("\n" + indentUnit + "return")
	if f.returnValue != "" {
		sb.WriteString(" " + f.returnValue)
	}
	return sb.String()
}
