// pkg/composer/prompter.go

package composer

import (
	"context"
	"errors"
)

// ErrAborted is returned by a Prompter when the user cancels input.
var ErrAborted = errors.New("input aborted")

// Prompter renders questions and collects answers. Any method may return an
// error wrapping ErrAborted.
type Prompter interface {
	SelectOne(ctx context.Context, label string, items []string, defaultIndex int) (int, error)
	InputLine(ctx context.Context, label string, allowEmpty bool) (string, error)
	Confirm(ctx context.Context, label string, defaultYes bool) (bool, error)
	// EditMultiline returns ok=false when the user leaves the editor without saving.
	EditMultiline(ctx context.Context, initial string) (text string, ok bool, err error)
}

// Prompt labels, in the order the default pipeline asks them.
const (
	LabelType         = "Commit type"
	LabelScope        = "Scope (optional, e.g. api, auth, ui)"
	LabelDescription  = "Short description (imperative mood)"
	LabelAddBody      = "Add a longer description?"
	LabelBreaking     = "Is this a breaking change?"
	LabelAddIssues    = "Add issue references?"
	LabelIssue        = "Issue number (empty to finish)"
	LabelAnotherIssue = "Add another issue?"
)
