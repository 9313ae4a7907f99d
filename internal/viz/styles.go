package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	text      lipgloss.Style
	muted     lipgloss.Style
	title     lipgloss.Style
	active    lipgloss.Style
	inactive  lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	banner    lipgloss.Style
	celebrate lipgloss.Style
	help      lipgloss.Style
	status    lipgloss.Style
	high      lipgloss.Style
	mid       lipgloss.Style
	low       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		text:     lipgloss.NewStyle().Foreground(t.Text),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		active:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		inactive: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		label:    lipgloss.NewStyle().Foreground(t.Muted),
		value:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Foreground(t.Text).
			Padding(0, 2),
		celebrate: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Foreground(t.Accent).
			Bold(true).
			Padding(0, 2),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		status: lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(t.Muted),
		high:   lipgloss.NewStyle().Foreground(t.Error),
		mid:    lipgloss.NewStyle().Foreground(t.Warning),
		low:    lipgloss.NewStyle().Foreground(t.Success),
	}
}

// depthBar renders how far down the page the viewport is.
func (s styles) depthBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.value.Render(strings.Repeat("█", filled)) + s.muted.Render(strings.Repeat("░", width-filled))
}

// sparkline renders the most recent width values, colored by magnitude.
func (s styles) sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return s.muted.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := v / max
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.high.Render(c))
		case norm > 0.3:
			b.WriteString(s.mid.Render(c))
		default:
			b.WriteString(s.low.Render(c))
		}
	}
	return b.String()
}
