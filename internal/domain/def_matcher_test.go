package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

func TestMatchDefinitions(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		permissive   []string
		conservative []string
	}{
		{
			name:         "getter",
			src:          "fn get_structure(&self) -> Structure { self.structure }",
			permissive:   []string{"get_structure -> structure"},
			conservative: []string{"get_structure -> structure"},
		},
		{
			name:         "bool getter",
			src:          "fn get_active(&self) -> bool { self.active }",
			permissive:   []string{"get_active -> is_active"},
			conservative: []string{"get_active -> is_active"},
		},
		{
			name:         "declaration",
			src:          "fn get_active(&self) -> bool;",
			permissive:   []string{"get_active -> is_active"},
			conservative: []string{"get_active -> is_active"},
		},
		{
			name:         "bool in a generic type",
			src:          "fn get_flags(&self) -> Vec<bool> { vec![] }",
			permissive:   []string{"get_flags -> flags"},
			conservative: []string{"get_flags -> flags"},
		},
		{
			name:         "metavariable return type",
			src:          "pub fn get_value(&self) -> $ty { self.value }",
			permissive:   []string{"get_value -> value"},
			conservative: []string{"get_value -> value"},
		},
		{
			name:         "lifetimes",
			src:          "fn get_value<'a>(&'a self) -> &'a u32 { &self.value }",
			permissive:   []string{"get_value -> value"},
			conservative: []string{"get_value -> value"},
		},
		{
			name:         "mutable receiver",
			src:          "fn get_mut_value(&mut self) -> &mut u32 { &mut self.value }",
			permissive:   []string{"get_mut_value -> value_mut"},
			conservative: []string{"get_mut_value -> value_mut"},
		},
		{
			name:         "generic type parameter",
			src:          "fn get_value<T: Default>(&self) -> T { T::default() }",
			permissive:   []string{"get_value -> value"},
			conservative: nil,
		},
		{
			name:         "multiple arguments",
			src:          "fn get_item(&self, idx: usize) -> u32 { self.items[idx] }",
			permissive:   []string{"get_item -> item"},
			conservative: nil,
		},
		{
			name:         "unique argument is not self",
			src:          "fn get_item(other: &Self) -> u32 { other.item }",
			permissive:   []string{"get_item -> item"},
			conservative: nil,
		},
		{
			name:         "no arguments",
			src:          "fn get_instance() -> u32 { 42 }",
			permissive:   []string{"get_instance -> instance"},
			conservative: nil,
		},
		{
			name:         "bool with arguments",
			src:          "fn get_visible(&self, idx: usize) -> bool { true }",
			permissive:   []string{"get_visible -> is_visible"},
			conservative: []string{"get_visible -> is_visible"},
		},
		{
			name:         "no return type",
			src:          "fn get_value(&self) { }",
			permissive:   nil,
			conservative: nil,
		},
		{
			name:         "reserved",
			src:          "fn get_mut(&mut self) -> &mut u32 { &mut self.value }",
			permissive:   nil,
			conservative: nil,
		},
		{
			name:         "call",
			src:          "let value = self.get_value();",
			permissive:   nil,
			conservative: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := matchSource(t, m.ToolDefinitions, m.AllGetFunctions, tt.src)
			assert.Equal(t, tt.permissive, renamed(c), "permissive")

			c = matchSource(t, m.ToolDefinitions, m.Conservative, tt.src)
			assert.Equal(t, tt.conservative, renamed(c), "conservative")
		})
	}
}

func TestMatchDefinitions_MacroTemplate(t *testing.T) {
	src := `($name:ident, $ty:ty) => {
    impl $name {
        pub fn get_value(&self) -> $ty {
            self.value
        }

        pub fn get_visible(&self) -> bool {
            self.visible
        }
    }
};`

	c := matchSource(t, m.ToolDefinitions, m.Conservative, src)
	renames := c.Renames()
	require.Len(t, renames, 2)

	assert.Equal(t, "value", renames[0].NewName.Text)
	assert.Equal(t, 3, renames[0].Line)
	assert.Equal(t, 15, renames[0].Column)
	assert.True(t, renames[0].NeedsDocAlias)

	assert.Equal(t, "is_visible", renames[1].NewName.Text)
	assert.Equal(t, 7, renames[1].Line)
}
