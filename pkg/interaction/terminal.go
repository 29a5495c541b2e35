// pkg/interaction/terminal.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// TerminalPrompter asks questions on a terminal. Prompts go to Out (stderr
// by default) so stdout stays clean for scripted use.
type TerminalPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	tty    *os.File
	editor *Editor
	styles ui.Styles
}

// Options configures a TerminalPrompter.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Editor string
	Styles ui.Styles
	// Plain disables the arrow-key selector even on a terminal.
	Plain bool
}

// NewTerminalPrompter wires the prompter to opts, defaulting to stdin/stderr.
func NewTerminalPrompter(opts Options) *TerminalPrompter {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	p := &TerminalPrompter{
		in:     bufio.NewReader(in),
		out:    out,
		editor: NewEditor(opts.Editor),
		styles: opts.Styles,
	}
	if !opts.Plain && IsTerminal(in) && IsTerminal(out) {
		p.tty = in.(*os.File)
	}
	return p
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SelectOne uses the arrow-key selector on a terminal and a numbered list otherwise.
func (p *TerminalPrompter) SelectOne(ctx context.Context, label string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("no items to select from")
	}
	if defaultIndex < 0 || defaultIndex >= len(items) {
		defaultIndex = 0
	}
	if p.tty != nil {
		return runSelector(ctx, p.tty, p.out, p.styles, label, items, defaultIndex)
	}
	return p.selectNumbered(ctx, label, items, defaultIndex)
}

func (p *TerminalPrompter) selectNumbered(ctx context.Context, label string, items []string, defaultIndex int) (int, error) {
	logger := otelzap.Ctx(ctx)

	_, _ = fmt.Fprintln(p.out, p.styles.Prompt.Render("? "+label))
	for i, item := range items {
		_, _ = fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
	}

	prompt := fmt.Sprintf("%s [%d]: ", EnterChoicePrompt, defaultIndex+1)
	for {
		choice, err := ReadLine(ctx, p.in, p.out, prompt)
		if err != nil {
			return 0, err
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			return defaultIndex, nil
		}
		idx, err := strconv.Atoi(choice)
		if err == nil && idx >= 1 && idx <= len(items) {
			logger.Debug("User selected option", zap.Int("index", idx-1))
			return idx - 1, nil
		}
		_, _ = fmt.Fprint(p.out, p.styles.WarnLine("Invalid selection. Please try again."))
	}
}

// InputLine reads one line. With allowEmpty false a blank answer is asked again.
func (p *TerminalPrompter) InputLine(ctx context.Context, label string, allowEmpty bool) (string, error) {
	prompt := p.styles.Prompt.Render("? "+label) + ": "
	for {
		value, err := ReadLine(ctx, p.in, p.out, prompt)
		if err != nil {
			return "", err
		}
		if allowEmpty || strings.TrimSpace(value) != "" {
			return value, nil
		}
		_, _ = fmt.Fprint(p.out, p.styles.WarnLine("A value is required."))
	}
}

// Confirm asks a yes/no question; an empty answer takes the default.
func (p *TerminalPrompter) Confirm(ctx context.Context, label string, defaultYes bool) (bool, error) {
	hint := DefaultNoPrompt
	if defaultYes {
		hint = DefaultYesPrompt
	}
	prompt := p.styles.Prompt.Render("? "+label) + " " + p.styles.Hint.Render("["+hint+"]") + " "

	for {
		input, err := ReadLine(ctx, p.in, p.out, prompt)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(input) == "" {
			return defaultYes, nil
		}
		if answer, ok := NormalizeYesNoInput(input); ok {
			return answer, nil
		}
		_, _ = fmt.Fprint(p.out, p.styles.WarnLine("Please answer y or n."))
	}
}

// EditMultiline opens the configured editor on initial.
func (p *TerminalPrompter) EditMultiline(ctx context.Context, initial string) (string, bool, error) {
	return p.editor.Edit(ctx, initial)
}
