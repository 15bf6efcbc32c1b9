package source

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func configClass(t *testing.T) *Class {
	t.Helper()
	c, err := NewClass("Config", WithAttributes(Attr("orm_mode", "bool").WithDefault("True")))
	require.NoError(t, err)
	return c
}

func TestRenderClass(ttt *testing.T) {
	tests := []struct {
		name string
		opts func(t *testing.T) (string, []ClassOption)
		want string
	}{
		{
			name: "attributes with base",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "ItemBase", []ClassOption{
					WithBase("BaseModel"),
					WithAttributes(
						Attr("title", "str"),
						Attr("description", "Optional[str]").WithDefault("None"),
					),
				}
			},
			want: "class ItemBase(BaseModel):\n\n    title: str\n    description: Optional[str] = None",
		},
		{
			name: "empty class renders pass",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "ItemCreate", []ClassOption{WithBase("ItemBase"), WithAttributes()}
			},
			want: "class ItemCreate(ItemBase):\n    pass",
		},
		{
			name: "no base",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "Config", []ClassOption{WithAttributes(Attr("orm_mode", "bool").WithDefault("True"))}
			},
			want: "class Config:\n\n    orm_mode: bool = True",
		},
		{
			name: "inner class",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "Item", []ClassOption{
					WithBase("ItemBase"),
					WithAttributes(Attr("id", "int"), Attr("owner_id", "int")),
					WithInner(configClass(t)),
				}
			},
			want: "class Item(ItemBase):\n\n    id: int\n    owner_id: int\n\n    class Config:\n\n        orm_mode: bool = True",
		},
		{
			name: "inner class without attributes",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "Item", []ClassOption{WithInner(configClass(t))}
			},
			want: "class Item:\n\n    class Config:\n\n        orm_mode: bool = True",
		},
		{
			name: "empty inner class",
			opts: func(t *testing.T) (string, []ClassOption) {
				return "Outer", []ClassOption{WithInner(MustClass("Meta"))}
			},
			want: "class Outer:\n\n    class Meta:\n        pass",
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, opts := tt.opts(t)
			c, err := NewClass(name, opts...)
			require.NoError(t, err)
			got := RenderClass(c)
			require.Equalf(t, tt.want, got, "RenderClass() diff = %s", cmp.Diff(tt.want, got))
		})
	}
}

func TestRenderClassNestingIsAdditive(t *testing.T) {
	t.Parallel()
	innermost := MustClass("Deep", WithAttributes(Attr("x", "int")))
	middle := MustClass("Middle", WithAttributes(Attr("y", "str")), WithInner(innermost))
	outer := MustClass("Outer", WithInner(middle))

	want := strings.Join([]string{
		"class Outer:",
		"",
		"    class Middle:",
		"",
		"        y: str",
		"",
		"        class Deep:",
		"",
		"            x: int",
	}, "\n")
	require.Equal(t, want, RenderClass(outer))
	require.Equal(t, 3, outer.Depth())

	standalone := strings.Split(RenderClass(middle), "\n")
	spliced := strings.Split(RenderClass(outer), "\n")[2:]
	require.Len(t, spliced, len(standalone))
	require.Equal(t, indentUnit+standalone[0], spliced[0])
	for i := 1; i < len(standalone); i++ {
		if standalone[i] == "" {
			require.Empty(t, spliced[i])
			continue
		}
		require.Equal(t, indentUnit+standalone[i], spliced[i])
	}
}

func TestRenderClassAttributeLines(t *testing.T) {
	t.Parallel()
	attrs := []Attribute{
		Attr("a", "int"),
		Attr("b", "str").WithDefault(`"x"`),
		Attr("c", "List[int]").WithDefault("[]").WithDescription("ignored"),
		Attr("d", "bool"),
	}
	got := RenderClass(MustClass("Thing", WithAttributes(attrs...)))
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2+len(attrs))
	require.Empty(t, lines[1])
	for i, a := range attrs {
		require.Equal(t, "    "+FormatTypedEntry(a), lines[i+2])
	}
	require.NotContains(t, got, "ignored")
}

func TestNewClassRejectsMalformed(ttt *testing.T) {
	deep := MustClass("L1")
	for i := 2; i <= MaxNestingDepth; i++ {
		deep = MustClass("L", WithInner(deep))
	}
	tests := []struct {
		name string
		cls  string
		opts []ClassOption
	}{
		{name: "empty name", cls: ""},
		{name: "blank name", cls: "   "},
		{name: "unnamed attribute", cls: "X", opts: []ClassOption{WithAttributes(Attr("", "int"))}},
		{name: "too deep", cls: "Top", opts: []ClassOption{WithInner(deep)}},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := NewClass(tt.cls, tt.opts...)
			require.ErrorIs(t, err, ErrMalformedDescriptor)
			require.Nil(t, c)
		})
	}
	require.Equal(ttt, MaxNestingDepth, deep.Depth())
}

func TestClassIsImmutable(t *testing.T) {
	t.Parallel()
	attrs := []Attribute{Attr("id", "int")}
	c := MustClass("Item", WithAttributes(attrs...))
	before := RenderClass(c)

	attrs[0].Name = "changed"
	got := c.Attributes()
	got[0].Name = "changed too"

	require.Equal(t, before, RenderClass(c))
	require.Equal(t, "id", c.Attributes()[0].Name)
}

func TestRenderClassConcurrent(t *testing.T) {
	t.Parallel()
	c := MustClass("Item", WithBase("ItemBase"),
		WithAttributes(Attr("id", "int")),
		WithInner(MustClass("Config", WithAttributes(Attr("orm_mode", "bool").WithDefault("True")))))
	want := RenderClass(c)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = RenderClass(c)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, want, r)
	}
}

func TestRenderClassNil(t *testing.T) {
	t.Parallel()
	require.Empty(t, RenderClass(nil))
}
