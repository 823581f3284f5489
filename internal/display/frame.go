package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterHeight is the number of summary lines under the content area.
const FooterHeight = 2

// Theme holds the ANSI-256 colours used for row tones and the footer.
type Theme struct {
	Name   string
	Plain  string
	Good   string
	Bad    string
	Muted  string
	Footer string
}

// DefaultTheme is the baseline dark palette.
var DefaultTheme = Theme{
	Name:   "default",
	Plain:  "252",
	Good:   "41",
	Bad:    "203",
	Muted:  "245",
	Footer: "75",
}

// HighContrastTheme favours bright primaries.
var HighContrastTheme = Theme{
	Name:   "high-contrast",
	Plain:  "15",
	Good:   "46",
	Bad:    "196",
	Muted:  "250",
	Footer: "51",
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
}

func (t Theme) toneStyle(tone Tone) lipgloss.Style {
	color := t.Plain
	switch tone {
	case ToneGood:
		color = t.Good
	case ToneBad:
		color = t.Bad
	case ToneMuted:
		color = t.Muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (t Theme) footerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Footer)).Bold(true)
}

// RenderRow styles each span of row with theme.
func RenderRow(row Row, theme Theme) string {
	var b strings.Builder
	for _, span := range row {
		b.WriteString(theme.toneStyle(span.Tone).Render(span.Text))
	}
	return b.String()
}

// Footer returns the two summary lines, unstyled.
func Footer(s State) []string {
	return []string{
		fmt.Sprintf("Part 1: %d", s.Result1()),
		fmt.Sprintf("Part 2: %d", s.Result2()),
	}
}

// Frame lays out exactly height lines for s: the content area (grid snapshot
// when present, otherwise the newest rows) followed by the footer. Lines are
// truncated to width when width is positive.
func Frame(s State, width, height int, theme Theme) []string {
	if height < FooterHeight {
		height = FooterHeight
	}
	contentHeight := height - FooterHeight

	lines := make([]string, 0, height)
	if s.Grid != nil {
		for _, line := range s.Grid.Render(func(r rune) rune { return r }) {
			if len(lines) == contentHeight {
				break
			}
			lines = append(lines, line)
		}
	} else {
		for _, row := range s.Rows {
			if len(lines) == contentHeight {
				break
			}
			lines = append(lines, RenderRow(row, theme))
		}
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	footer := theme.footerStyle()
	for _, line := range Footer(s) {
		lines = append(lines, footer.Render(line))
	}

	if width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return lines
}

// View joins Frame into a single string.
func View(s State, width, height int, theme Theme) string {
	return lipgloss.JoinVertical(lipgloss.Left, Frame(s, width, height, theme)...)
}
