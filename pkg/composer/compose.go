// pkg/composer/compose.go

// Package composer walks the user through building a Conventional Commits
// record. The walk is an ordered pipeline of Steps, each reading the record
// so far and returning it with one more field filled in.
package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Step fills in part of the record.
type Step struct {
	Name string
	Run  func(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error)
}

// DefaultSteps returns the standard pipeline: type, scope, description,
// body, breaking flag, issue references.
func DefaultSteps() []Step {
	return []Step{
		{Name: "type", Run: selectType},
		{Name: "scope", Run: inputScope},
		{Name: "description", Run: inputDescription},
		{Name: "body", Run: inputBody},
		{Name: "breaking", Run: confirmBreaking},
		{Name: "issues", Run: collectIssues},
	}
}

// Compose runs the default pipeline.
func Compose(ctx context.Context, p Prompter) (conventional.Record, error) {
	return Run(ctx, p, DefaultSteps())
}

// Run executes steps in order. On any error the zero Record is returned; a
// cancelled context or a Prompter abort yields an error matching ErrAborted.
// The steps must leave a type from the table on the record.
func Run(ctx context.Context, p Prompter, steps []Step) (conventional.Record, error) {
	logger := otelzap.Ctx(ctx)
	var rec conventional.Record

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return conventional.Record{}, fmt.Errorf("%w: %v", ErrAborted, err)
		}

		next, err := step.Run(ctx, rec, p)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				logger.Debug("Composer aborted", zap.String("step", step.Name))
				return conventional.Record{}, err
			}
			return conventional.Record{}, fmt.Errorf("%s step: %w", step.Name, err)
		}
		rec = next
		logger.Debug("Composer step done", zap.String("step", step.Name))
	}

	if !rec.Type.Valid() {
		return conventional.Record{}, fmt.Errorf("composed record has unknown type %q", rec.Type)
	}

	logger.Debug("Record composed",
		zap.String("type", rec.Type.String()),
		zap.Bool("has_scope", rec.Scope != ""),
		zap.Bool("breaking", rec.Breaking),
		zap.Int("issues", len(rec.Issues)))
	return rec, nil
}

func selectType(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	types := conventional.Types()
	items := make([]string, len(types))
	for i, t := range types {
		items[i] = t.Display()
	}

	idx, err := p.SelectOne(ctx, LabelType, items, 0)
	if err != nil {
		return rec, err
	}
	if idx < 0 || idx >= len(types) {
		return rec, fmt.Errorf("selection %d out of range", idx)
	}
	rec.Type = types[idx].Type
	return rec, nil
}

func inputScope(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	scope, err := p.InputLine(ctx, LabelScope, true)
	if err != nil {
		return rec, err
	}
	rec.Scope = strings.TrimSpace(scope)
	return rec, nil
}

func inputDescription(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	desc, err := p.InputLine(ctx, LabelDescription, false)
	if err != nil {
		return rec, err
	}
	rec.Description = desc
	return rec, nil
}

func inputBody(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	add, err := p.Confirm(ctx, LabelAddBody, false)
	if err != nil || !add {
		return rec, err
	}

	text, ok, err := p.EditMultiline(ctx, "")
	if err != nil {
		return rec, err
	}
	if ok {
		rec.Body = text
	}
	return rec, nil
}

func confirmBreaking(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	breaking, err := p.Confirm(ctx, LabelBreaking, false)
	if err != nil {
		return rec, err
	}
	rec.Breaking = breaking
	return rec, nil
}

func collectIssues(ctx context.Context, rec conventional.Record, p Prompter) (conventional.Record, error) {
	add, err := p.Confirm(ctx, LabelAddIssues, false)
	if err != nil || !add {
		return rec, err
	}

	for {
		issue, err := p.InputLine(ctx, LabelIssue, true)
		if err != nil {
			return rec, err
		}
		issue = strings.TrimSpace(issue)
		if issue == "" {
			return rec, nil
		}
		rec.Issues = append(rec.Issues, NormalizeIssue(issue))

		more, err := p.Confirm(ctx, LabelAnotherIssue, false)
		if err != nil {
			return rec, err
		}
		if !more {
			return rec, nil
		}
	}
}

// NormalizeIssue strips surrounding whitespace and leading '#' markers.
// "#" alone normalizes to "".
func NormalizeIssue(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "#")
}
