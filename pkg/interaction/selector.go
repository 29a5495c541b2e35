// pkg/interaction/selector.go

package interaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/composer"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type selectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func defaultSelectKeys() selectKeyMap {
	return selectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+d", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// selectModel is the bubbletea model behind SelectOne on a terminal.
type selectModel struct {
	label   string
	items   []string
	cursor  int
	chosen  int
	aborted bool
	keys    selectKeyMap
	styles  ui.Styles
}

func newSelectModel(label string, items []string, defaultIndex int, styles ui.Styles) selectModel {
	return selectModel{
		label:  label,
		items:  items,
		cursor: defaultIndex,
		chosen: -1,
		keys:   defaultSelectKeys(),
		styles: styles,
	}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Choose):
		m.chosen = m.cursor
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case key.Matches(km, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.items)
	default:
		// digits jump straight to an entry
		if s := km.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if idx := int(s[0] - '1'); idx < len(m.items) {
				m.cursor = idx
			}
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.chosen >= 0 {
		return m.styles.Prompt.Render("? "+m.label) + " " + m.styles.Selected.Render(m.items[m.chosen]) + "\n"
	}
	if m.aborted {
		return m.styles.Prompt.Render("? "+m.label) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Prompt.Render("? " + m.label))
	sb.WriteString("\n")
	for i, item := range m.items {
		if i == m.cursor {
			sb.WriteString(m.styles.Cursor.Render("❯ "))
			sb.WriteString(m.styles.Selected.Render(item))
		} else {
			sb.WriteString("  ")
			sb.WriteString(item)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Hint.Render(fmt.Sprintf("%s • %s • %s",
		m.keys.Up.Help().Key+"/"+m.keys.Down.Help().Key+" move",
		m.keys.Choose.Help().Key+" "+m.keys.Choose.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)))
	sb.WriteString("\n")
	return sb.String()
}

func runSelector(ctx context.Context, in *os.File, out io.Writer, styles ui.Styles, label string, items []string, defaultIndex int) (int, error) {
	prog := tea.NewProgram(
		newSelectModel(label, items, defaultIndex, styles),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %v", composer.ErrAborted, err)
		}
		return 0, fmt.Errorf("selector failed: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.aborted || m.chosen < 0 {
		return 0, fmt.Errorf("%w: selection cancelled", composer.ErrAborted)
	}
	return m.chosen, nil
}
