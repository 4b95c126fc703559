package domain

import (
	"context"
	"errors"
	"log/slog"

	"fixgetters.dev/pkg/fixgetters/internal/domain/rules"
	m "fixgetters.dev/pkg/fixgetters/internal/model"
)

// LevelTrace is below slog.LevelDebug. It is used for identifiers which
// don't even have the getter prefix.
const LevelTrace = slog.LevelDebug - 4

func logf(level slog.Level, msg string, args ...any) {
	slog.Log(context.Background(), level, msg, args...)
}

// logRenameError logs a name refused by the rules.
func logRenameError(c *Collection, scope m.Scope, name string, line int, err error) {
	level := slog.LevelDebug
	if errors.Is(err, rules.ErrNotAnAccessor) {
		level = LevelTrace
	}

	logf(level, "skipping",
		"path", c.Path(), "line", line, "scope", scope.String(), "name", name, "reason", err)
}

// logNonGetter logs a get function whose shape disqualifies it.
func logNonGetter(c *Collection, scope m.Scope, name string, line int, reason m.NonGetterReason) {
	logf(slog.LevelDebug, "skipping",
		"path", c.Path(), "line", line, "scope", scope.String(), "name", name, "reason", reason.String())
}

// logRename logs a confirmed rename. The more surprising the rule,
// the higher the level.
func logRename(c *Collection, r m.Rename) {
	level := slog.LevelDebug

	switch r.NewName.Rule {
	case m.RuleFixed:
		level = slog.LevelInfo
	case m.RuleSubstituted:
		level = slog.LevelWarn
	}

	logf(level, "renaming",
		"path", c.Path(), "line", r.Line, "scope", r.Scope.String(),
		"name", r.Name, "new_name", r.NewName.String())
}
