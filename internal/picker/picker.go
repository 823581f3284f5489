// Package picker is the interactive day chooser shown when aoc runs without
// a day argument.
package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/aoc2024/internal/display"
	"github.com/tOgg1/aoc2024/internal/problems"
)

const defaultListHeight = 10

// Item is one selectable day.
type Item struct {
	Day    int
	Solved bool
	// Note is shown after the day, e.g. the last recorded result.
	Note string
}

// Items lists every calendar day of reg.
func Items(reg *problems.Registry) []Item {
	days := reg.Days()
	items := make([]Item, 0, len(days))
	for _, day := range days {
		items = append(items, Item{Day: day, Solved: reg.Solved(day)})
	}
	return items
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Choose, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Top, k.Bottom},
		{k.Choose, k.Quit},
	}
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "move"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k", "move"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/G", "top/bottom"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("g/G", "top/bottom"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "solve"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Options configures a picker session.
type Options struct {
	// Initial is the day the cursor starts on.
	Initial int
	Theme   display.Theme
	// Height is the number of list lines shown at once.
	Height int
	Input  io.Reader
	Output io.Writer
}

// Model is the Bubble Tea model for the day picker.
type Model struct {
	items  []Item
	cursor int
	offset int
	height int
	chosen int
	done   bool
	width  int
	keys   keyMap
	help   help.Model
	styles styles
}

type styles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	solved   lipgloss.Style
	unsolved lipgloss.Style
	note     lipgloss.Style
}

func newStyles(theme display.Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Footer)).Bold(true),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Footer)).Bold(true),
		solved:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Good)),
		unsolved: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)),
		note:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)),
	}
}

// NewModel creates a picker over items.
func NewModel(items []Item, opts Options) Model {
	theme := opts.Theme
	if theme.Name == "" {
		theme = display.DefaultTheme
	}
	height := opts.Height
	if height <= 0 {
		height = defaultListHeight
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))

	m := Model{
		items:  items,
		height: height,
		keys:   defaultKeyMap,
		help:   h,
		styles: newStyles(theme),
	}
	for i, item := range items {
		if item.Day == opts.Initial {
			m.cursor = i
		}
	}
	m.scroll()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		// Keys typed faster than one read arrive as a single message.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			var next tea.Model = m
			for _, r := range msg.Runes {
				var cmd tea.Cmd
				next, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
				if cmd != nil {
					return next, cmd
				}
			}
			return next, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			if len(m.items) > 0 {
				m.chosen = m.items[m.cursor].Day
			}
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = max(len(m.items)-1, 0)
		}
		m.scroll()
	}
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	lines := []string{m.styles.title.Render("Advent of Code 2024")}
	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderItem(i))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderItem(i int) string {
	item := m.items[i]

	prefix := "  "
	if i == m.cursor {
		prefix = m.styles.cursor.Render("> ")
	}

	var b strings.Builder
	b.WriteString(prefix)
	if item.Solved {
		b.WriteString(m.styles.solved.Render(fmt.Sprintf("Day %2d  solved", item.Day)))
	} else {
		b.WriteString(m.styles.unsolved.Render(fmt.Sprintf("Day %2d  ------", item.Day)))
	}
	if item.Note != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.note.Render(item.Note))
	}
	return b.String()
}

// Chosen returns the selected day, or false if the picker was dismissed.
func (m Model) Chosen() (int, bool) {
	return m.chosen, m.chosen != 0
}

// Run shows the picker until the user chooses a day or quits.
func Run(ctx context.Context, items []Item, opts Options) (int, bool, error) {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(NewModel(items, opts), programOpts...)
	final, err := program.Run()
	if err != nil {
		return 0, false, fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return 0, false, fmt.Errorf("unexpected picker model %T", final)
	}
	day, chosen := m.Chosen()
	return day, chosen, nil
}
