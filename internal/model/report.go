package model

// RenameRecord is the persisted form of an applied rename.
type RenameRecord struct {
	Line     int    `yaml:"line"`
	Name     string `yaml:"name"`
	NewName  string `yaml:"new_name"`
	Rule     string `yaml:"rule"`
	Scope    string `yaml:"scope"`
	DocAlias bool   `yaml:"doc_alias,omitempty"`
}

// FileResult holds the outcome of fixing a single source file.
type FileResult struct {
	Path    Path           `yaml:"path"`
	Output  Path           `yaml:"output,omitempty"`
	Renames []RenameRecord `yaml:"renames"`
	// Diff is the unified diff between the original and rewritten text,
	// only computed for dry runs.
	Diff string `yaml:"-"`
}

// Summary holds the outcome of a whole run.
type Summary struct {
	Tool    string       `yaml:"tool"`
	Mode    string       `yaml:"mode"`
	Files   int          `yaml:"files"`
	Changed []FileResult `yaml:"changed"`
}

// RenameCount returns the number of renames across all changed files.
func (s Summary) RenameCount() int {
	count := 0
	for _, file := range s.Changed {
		count += len(file.Renames)
	}

	return count
}

// NewRenameRecord converts a rename to its persisted form.
func NewRenameRecord(r Rename, docAlias bool) RenameRecord {
	return RenameRecord{
		Line:     r.Line,
		Name:     r.Name,
		NewName:  r.NewName.Text,
		Rule:     r.NewName.Rule.Label(),
		Scope:    r.Scope.String(),
		DocAlias: docAlias,
	}
}
