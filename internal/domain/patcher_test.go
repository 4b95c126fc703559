package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

func callRename(name, newName string, line, column int, isMethod bool) m.Rename {
	return m.Rename{
		Name:     name,
		NewName:  m.NewName{Text: newName},
		Line:     line,
		Column:   column,
		IsMethod: isMethod,
	}
}

func TestApply_EmptyCollection(t *testing.T) {
	c := NewCollection("lib.rs", m.ToolCalls)

	out, records, changed := Apply([]byte("fn main() {}\n"), c, m.DocAliasGenerate)
	assert.False(t, changed)
	assert.Nil(t, out)
	assert.Nil(t, records)
}

func TestApply_Calls(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		renames []m.Rename
		want    string
	}{
		{
			name: "columns",
			src:  "let a = (x.get_foo(), y.get_foo());\n",
			renames: []m.Rename{
				callRename("get_foo", "foo", 1, 11, true),
				callRename("get_foo", "foo", 1, 24, true),
			},
			want: "let a = (x.foo(), y.foo());\n",
		},
		{
			name: "string literal is left alone",
			src:  "let a = (\".get_foo(\", x.get_foo());\n",
			renames: []m.Rename{
				callRename("get_foo", "foo", 1, 24, true),
			},
			want: "let a = (\".get_foo(\", x.foo());\n",
		},
		{
			name: "unknown columns",
			src:  "let a = get_foo() + x.get_foo();\n",
			renames: []m.Rename{
				callRename("get_foo", "foo", 1, -1, true),
				callRename("get_foo", "foo", 1, -1, false),
			},
			want: "let a = foo() + x.foo();\n",
		},
		{
			name: "stale column",
			src:  "x.get_foo_bar(); x.get_foo();\n",
			renames: []m.Rename{
				callRename("get_foo", "foo", 1, 0, true),
			},
			want: "x.get_foo_bar(); x.foo();\n",
		},
		{
			name: "missing trailing newline",
			src:  "fn f() {}\nx.get_foo()",
			renames: []m.Rename{
				callRename("get_foo", "foo", 2, 2, true),
			},
			want: "fn f() {}\nx.foo()\n",
		},
		{
			name: "carriage return",
			src:  "x.get_foo()\r\ny\r\n",
			renames: []m.Rename{
				callRename("get_foo", "foo", 1, 2, true),
			},
			want: "x.foo()\r\ny\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection("lib.rs", m.ToolCalls)
			for _, r := range tt.renames {
				require.NoError(t, c.Add(r))
			}

			out, records, changed := Apply([]byte(tt.src), c, m.DocAliasGenerate)
			require.True(t, changed)
			assert.Equal(t, tt.want, string(out))
			assert.Len(t, records, len(tt.renames))
			assert.True(t, c.IsEmpty())
		})
	}
}

func TestApply_NotFound(t *testing.T) {
	c := NewCollection("lib.rs", m.ToolCalls)
	require.NoError(t, c.Add(callRename("get_foo", "foo", 1, -1, true)))
	require.NoError(t, c.Add(callRename("get_bar", "bar", 5, -1, true)))

	out, records, changed := Apply([]byte("let foo = 1;\n"), c, m.DocAliasGenerate)
	assert.False(t, changed)
	assert.Nil(t, out)
	assert.Nil(t, records)
}

func TestApply_Definitions(t *testing.T) {
	src := "impl Foo {\n    pub fn get_foo(&self) -> u32 {\n        self.get_foo_inner()\n    }\n}\n"

	tests := []struct {
		name      string
		docAlias  m.DocAliasMode
		needAlias bool
		column    int
		want      string
	}{
		{
			name:      "alias",
			docAlias:  m.DocAliasGenerate,
			needAlias: true,
			column:    11,
			want:      "impl Foo {\n#[doc(alias = \"get_foo\")]     pub fn foo(&self) -> u32 {\n        self.get_foo_inner()\n    }\n}\n",
		},
		{
			name:      "discarded alias",
			docAlias:  m.DocAliasDiscard,
			needAlias: true,
			column:    11,
			want:      "impl Foo {\n    pub fn foo(&self) -> u32 {\n        self.get_foo_inner()\n    }\n}\n",
		},
		{
			name:      "alias not needed",
			docAlias:  m.DocAliasGenerate,
			needAlias: false,
			column:    -1,
			want:      "impl Foo {\n    pub fn foo(&self) -> u32 {\n        self.get_foo_inner()\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection("lib.rs", m.ToolDefinitions)
			require.NoError(t, c.Add(m.Rename{
				Name:          "get_foo",
				NewName:       m.NewName{Text: "foo", Rule: m.RuleRegular},
				Line:          2,
				Column:        tt.column,
				Scope:         m.Scope{Kind: m.ScopeInherentImpl, Name: "Foo"},
				IsMethod:      true,
				NeedsDocAlias: tt.needAlias,
			}))

			out, records, changed := Apply([]byte(src), c, tt.docAlias)
			require.True(t, changed)
			assert.Equal(t, tt.want, string(out))

			require.Len(t, records, 1)
			assert.Equal(t, m.RenameRecord{
				Line:     2,
				Name:     "get_foo",
				NewName:  "foo",
				Rule:     "regular",
				Scope:    "Foo",
				DocAlias: tt.docAlias.MustGenerate() && tt.needAlias,
			}, records[0])
		})
	}
}

func TestFindOccurrence_Definitions(t *testing.T) {
	never := func(int) bool { return false }
	r := callRename("get_foo", "foo", 1, -1, true)

	line := []byte("/// let x = get_foo(); fn get_foo(&self) {}")
	assert.Equal(t, 26, findOccurrence(line, r, m.ToolDefinitions, never))

	assert.Equal(t, -1, findOccurrence([]byte("/// afn get_foo()"), r, m.ToolDefinitions, never))
	assert.Equal(t, -1, findOccurrence([]byte("get_foo()"), r, m.ToolDefinitions, never))
}
