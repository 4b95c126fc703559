package adapter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

func TestYAMLReportStore_SaveSummary(t *testing.T) {
	store := NewReportStore()
	path := m.Path(filepath.Join(t.TempDir(), "reports", "fixgetters.yaml"))

	summary := m.Summary{
		Tool:  "definitions",
		Mode:  "conservative",
		Files: 3,
		Changed: []m.FileResult{
			{
				Path: "src/lib.rs",
				Renames: []m.RenameRecord{
					{Line: 12, Name: "get_has_entry", NewName: "has_entry", Rule: "no-prefix", Scope: "Foo", DocAlias: true},
					{Line: 20, Name: "get_type", NewName: "type_", Rule: "substituted", Scope: "impl Bar for Foo"},
				},
				Diff: "not persisted",
			},
		},
	}

	require.NoError(t, store.SaveSummary(path, summary))

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "new_name: has_entry"))
	assert.True(t, strings.Contains(string(content), "doc_alias: true"))
	assert.False(t, strings.Contains(string(content), "not persisted"))

	loaded, err := store.LoadSummary(path)
	require.NoError(t, err)

	summary.Changed[0].Diff = ""
	assert.Equal(t, summary, loaded)
	assert.Equal(t, 2, loaded.RenameCount())
}

func TestYAMLReportStore_LoadSummaryErrors(t *testing.T) {
	store := NewReportStore()
	dir := t.TempDir()

	_, err := store.LoadSummary(m.Path(filepath.Join(dir, "missing.yaml")))
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("files: [not an int"), 0o600))

	_, err = store.LoadSummary(m.Path(broken))
	require.Error(t, err)
}
