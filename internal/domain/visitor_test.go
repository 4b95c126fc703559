package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
	"fixgetters.dev/pkg/fixgetters/internal/syntax"
)

func analyzeSource(t *testing.T, src string, tool m.Tool, mode m.IdentificationMode) *Collection {
	t.Helper()

	file, err := syntax.Parse([]byte(src))
	require.NoError(t, err)

	c, err := Analyze("lib.rs", file, tool, mode)
	require.NoError(t, err)

	return c
}

// fixSource returns the fixed text of src, or src itself when nothing changed.
func fixSource(t *testing.T, src string, tool m.Tool, mode m.IdentificationMode, docAlias m.DocAliasMode) string {
	t.Helper()

	c := analyzeSource(t, src, tool, mode)

	out, _, changed := Apply([]byte(src), c, docAlias)
	if !changed {
		return src
	}

	return string(out)
}

const callsSource = `fn update(s: &mut State) {
    if s.get_mute() && s.get_structure().is_ok() {
        s.set_item(s.get_item(0), Foo::get_instance());
    }

    let value = s.get_value::<u32>();
    println!("{} {}", s.get_structure(), value);
}
`

func TestAnalyze_Calls(t *testing.T) {
	tests := []struct {
		name string
		mode m.IdentificationMode
		want string
	}{
		{
			name: "permissive",
			mode: m.AllGetFunctions,
			want: `fn update(s: &mut State) {
    if s.is_muted() && s.structure().is_ok() {
        s.set_item(s.item(0), Foo::instance());
    }

    let value = s.value::<u32>();
    println!("{} {}", s.structure(), value);
}
`,
		},
		{
			name: "conservative",
			mode: m.Conservative,
			want: `fn update(s: &mut State) {
    if s.is_muted() && s.structure().is_ok() {
        s.set_item(s.get_item(0), Foo::get_instance());
    }

    let value = s.get_value::<u32>();
    println!("{} {}", s.structure(), value);
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixSource(t, callsSource, m.ToolCalls, tt.mode, m.DocAliasGenerate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_CallsTwoOnOneLine(t *testing.T) {
	src := "fn f(a: &A, b: &B) -> bool {\n    a.get_structure() == b.get_structure() && a.get_mute()\n}\n"

	c := analyzeSource(t, src, m.ToolCalls, m.Conservative)
	renames := c.Renames()
	require.Len(t, renames, 3)
	assert.Equal(t, "structure", renames[0].NewName.Text)
	assert.Equal(t, "structure", renames[1].NewName.Text)
	assert.Equal(t, "is_muted", renames[2].NewName.Text)

	out, records, changed := Apply([]byte(src), c, m.DocAliasGenerate)
	require.True(t, changed)
	assert.Equal(t, "fn f(a: &A, b: &B) -> bool {\n    a.structure() == b.structure() && a.is_muted()\n}\n", string(out))
	require.Len(t, records, 3)
	assert.Equal(t, "fn f", records[0].Scope)
	assert.Equal(t, "substituted", records[2].Rule)
}

const defsSource = `struct Foo {
    entry: bool,
}

impl Foo {
    pub fn get_has_entry(&self) -> bool {
        self.entry
    }

    pub fn get_structure(&self) -> &Structure {
        &self.structure
    }

    fn get_non_self_unique_arg(other: u64) -> u64 {
        other
    }

    fn get_item(&self, idx: usize) -> u64 {
        self.items[idx]
    }
}

trait Active {
    fn get_active(&self) -> bool;
}

impl Active for Foo {
    fn get_active(&self) -> bool {
        true
    }
}

fn get_non_self_unique_arg(other: u64) -> u64 {
    other
}
`

func TestAnalyze_Definitions(t *testing.T) {
	tests := []struct {
		name     string
		mode     m.IdentificationMode
		docAlias m.DocAliasMode
		want     string
	}{
		{
			name:     "conservative",
			mode:     m.Conservative,
			docAlias: m.DocAliasGenerate,
			want: `struct Foo {
    entry: bool,
}

impl Foo {
#[doc(alias = "get_has_entry")]     pub fn has_entry(&self) -> bool {
        self.entry
    }

#[doc(alias = "get_structure")]     pub fn structure(&self) -> &Structure {
        &self.structure
    }

    fn get_non_self_unique_arg(other: u64) -> u64 {
        other
    }

    fn get_item(&self, idx: usize) -> u64 {
        self.items[idx]
    }
}

trait Active {
#[doc(alias = "get_active")]     fn is_active(&self) -> bool;
}

impl Active for Foo {
    fn is_active(&self) -> bool {
        true
    }
}

fn get_non_self_unique_arg(other: u64) -> u64 {
    other
}
`,
		},
		{
			name:     "permissive without aliases",
			mode:     m.AllGetFunctions,
			docAlias: m.DocAliasDiscard,
			want: `struct Foo {
    entry: bool,
}

impl Foo {
    pub fn has_entry(&self) -> bool {
        self.entry
    }

    pub fn structure(&self) -> &Structure {
        &self.structure
    }

    fn non_self_unique_arg(other: u64) -> u64 {
        other
    }

    fn item(&self, idx: usize) -> u64 {
        self.items[idx]
    }
}

trait Active {
    fn is_active(&self) -> bool;
}

impl Active for Foo {
    fn is_active(&self) -> bool {
        true
    }
}

fn non_self_unique_arg(other: u64) -> u64 {
    other
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixSource(t, defsSource, m.ToolDefinitions, tt.mode, tt.docAlias)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_DefinitionScopes(t *testing.T) {
	c := analyzeSource(t, defsSource, m.ToolDefinitions, m.AllGetFunctions)

	type scoped struct {
		name  string
		scope string
		alias bool
	}

	var got []scoped
	for _, r := range c.Renames() {
		got = append(got, scoped{r.Name, r.Scope.String(), r.NeedsDocAlias})
	}

	assert.Equal(t, []scoped{
		{"get_has_entry", "Foo", true},
		{"get_structure", "Foo", true},
		{"get_non_self_unique_arg", "Foo", true},
		{"get_item", "Foo", true},
		{"get_active", "Active", true},
		{"get_active", "impl Active for Foo", false},
		{"get_non_self_unique_arg", "fn get_non_self_unique_arg", true},
	}, got)
}

func TestAnalyze_DefinitionRules(t *testing.T) {
	src := "impl Foo {\n    fn get_has_entry(&self) -> bool { true }\n}\n"

	c := analyzeSource(t, src, m.ToolDefinitions, m.Conservative)
	renames := c.Renames()
	require.Len(t, renames, 1)
	assert.Equal(t, "has_entry", renames[0].NewName.Text)
	assert.Equal(t, m.RuleNoPrefix, renames[0].NewName.Rule)
	assert.Equal(t, 2, renames[0].Line)
	assert.Equal(t, 7, renames[0].Column)
}

func TestAnalyze_MacroDefinitions(t *testing.T) {
	src := `macro_rules! getter {
    ($name:ident, $ty:ty) => {
        impl $name {
            pub fn get_value(&self) -> $ty {
                self.value
            }
        }
    };
}
`

	want := `macro_rules! getter {
    ($name:ident, $ty:ty) => {
        impl $name {
#[doc(alias = "get_value")]             pub fn value(&self) -> $ty {
                self.value
            }
        }
    };
}
`

	got := fixSource(t, src, m.ToolDefinitions, m.Conservative, m.DocAliasGenerate)
	assert.Equal(t, want, got)
}

func TestAnalyze_NestedScopes(t *testing.T) {
	src := `mod inner {
    const LIMIT: u32 = Foo::get_limit();

    fn run(s: &S) {
        s.get_structure();
    }
}
`

	c := analyzeSource(t, src, m.ToolCalls, m.AllGetFunctions)
	renames := c.Renames()
	require.Len(t, renames, 2)
	assert.Equal(t, "const LIMIT", renames[0].Scope.String())
	assert.False(t, renames[0].IsMethod)
	assert.Equal(t, "fn run", renames[1].Scope.String())
	assert.True(t, renames[1].IsMethod)
}

func TestAnalyze_DuplicateDefinition(t *testing.T) {
	src := "impl Foo {\n    fn get_a(&self) -> u32 { 0 } fn get_b(&self) -> u32 { 1 }\n}\n"

	file, err := syntax.Parse([]byte(src))
	require.NoError(t, err)

	_, err = Analyze("lib.rs", file, m.ToolDefinitions, m.Conservative)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
	assert.Contains(t, err.Error(), "lib.rs:2")

	// call sites can share a line
	_, err = Analyze("lib.rs", file, m.ToolCalls, m.Conservative)
	require.NoError(t, err)
}

func TestAnalyze_NothingToRename(t *testing.T) {
	src := "fn main() {\n    let s = State::new();\n    s.update();\n}\n"

	for _, tool := range []m.Tool{m.ToolCalls, m.ToolDefinitions} {
		c := analyzeSource(t, src, tool, m.AllGetFunctions)
		assert.True(t, c.IsEmpty())

		out, records, changed := Apply([]byte(src), c, m.DocAliasGenerate)
		assert.False(t, changed)
		assert.Nil(t, out)
		assert.Nil(t, records)
	}
}
