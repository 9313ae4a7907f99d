package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravscroll/internal/config"
	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
)

const (
	// LinePixels is the height of one document line in page pixels.
	LinePixels = 20.0
	// WheelDelta is the deltaY of one wheel notch or arrow key press.
	WheelDelta = 100.0

	chromeRows   = 4
	speedHistory = 240
)

type TickMsg time.Time

// Model renders a document scrolled by a gravity session.
type Model struct {
	ctrl   *session.Controller
	page   *page.Page
	frames *session.Manual

	lines    []string
	interval time.Duration
	theme    Theme
	styles   styles
	presets  []string
	preset   int

	width    int
	height   int
	speeds   []float64
	frame    int
	showHelp bool
	err      error
}

// NewModel wires a controller whose host is pg and whose scheduler is
// frames. The model advances frames on every tick.
func NewModel(ctrl *session.Controller, pg *page.Page, frames *session.Manual, lines []string, fps int) Model {
	if fps <= 0 {
		fps = session.DefaultFPS
	}
	pg.ContentHeight = float64(len(lines)) * LinePixels
	m := Model{
		ctrl:     ctrl,
		page:     pg,
		frames:   frames,
		lines:    lines,
		interval: time.Second / time.Duration(fps),
		theme:    ThemeCyberpunk,
		styles:   newStyles(ThemeCyberpunk),
		presets:  config.ListPresets(),
		width:    80,
		height:   24,
	}
	for i, name := range m.presets {
		if name == "default" {
			m.preset = i
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.page.ViewportHeight = float64(m.rows()) * LinePixels
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.page.Wheel(-WheelDelta)
		case tea.MouseButtonWheelDown:
			m.page.Wheel(WheelDelta)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.frames.Advance(time.Time(msg))
		m.frame++
		m.speeds = append(m.speeds, math.Abs(m.ctrl.State().Velocity))
		if len(m.speeds) > speedHistory {
			m.speeds = m.speeds[len(m.speeds)-speedHistory:]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.ctrl.Stop()
		return m, tea.Quit
	case "s", " ":
		m.ctrl.Toggle()
	case "d":
		m.err = m.ctrl.Dispatch(session.Command{Command: session.CmdScroll})
	case "up", "k":
		m.page.Wheel(-WheelDelta)
	case "down", "j":
		m.page.Wheel(WheelDelta)
	case "p":
		if len(m.presets) == 0 {
			break
		}
		m.preset = (m.preset + 1) % len(m.presets)
		if p := config.GetPreset(m.presets[m.preset]); p != nil {
			m.err = m.ctrl.UpdateParams(p.Patch())
		}
	case "+", "=":
		m.err = m.scaleGravity(1.1)
	case "-", "_":
		m.err = m.scaleGravity(0.9)
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) scaleGravity(f float64) error {
	g := m.ctrl.Params().G * f
	return m.ctrl.UpdateParams(gravity.Patch{G: gravity.Float(g)})
}

func (m Model) rows() int {
	if r := m.height - chromeRows; r > 1 {
		return r
	}
	return 1
}

func (m Model) View() string {
	if m.showHelp {
		help := m.styles.banner.Render(helpText)
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.Place(m.width, m.rows(), lipgloss.Center, lipgloss.Center, help),
			m.statusBar(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.body(), m.statusBar())
}

func (m Model) body() string {
	rows := m.rows()
	top := int(m.page.ScrollPosition() / LinePixels)

	view := make([]string, rows)
	for i := range view {
		n := top + i
		if n >= 0 && n < len(m.lines) {
			view[i] = m.styles.text.Render(truncate(m.lines[n], m.width))
		}
	}

	banners := m.page.Banners(m.page.Now())
	celebrating := false
	for _, b := range banners {
		if b.Milestone == gravity.Confetti {
			celebrating = true
		}
	}
	if celebrating {
		for i := 0; i < rows && i < rows/2; i += 2 {
			view[i] = m.confettiRow(i)
		}
	}

	row := rows / 2
	for _, b := range banners {
		if row >= rows {
			break
		}
		style := m.styles.banner
		if b.Milestone == gravity.Confetti {
			style = m.styles.celebrate
		}
		box := strings.Split(style.Render(page.Caption(b.Milestone)), "\n")
		for _, line := range box {
			if row >= rows {
				break
			}
			view[row] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
			row++
		}
	}
	return strings.Join(view, "\n")
}

// confettiRow scatters colored glyphs that drift with the frame counter.
func (m Model) confettiRow(row int) string {
	glyphs := []string{"*", "+", "o", "•", "✦"}
	var b strings.Builder
	for col := 0; col < m.width; col++ {
		h := (col*31 + row*17 + m.frame*7) % 23
		if h != 0 {
			b.WriteByte(' ')
			continue
		}
		color := m.theme.Confetti[(col+row)%len(m.theme.Confetti)]
		glyph := glyphs[(col+m.frame)%len(glyphs)]
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(glyph))
	}
	return b.String()
}

func (m Model) statusBar() string {
	s := m.ctrl.State()
	p := m.ctrl.Params()

	title := m.styles.inactive.Render(m.ctrl.Title())
	if m.ctrl.Running() {
		title = m.styles.active.Render(m.ctrl.Title())
	}

	depth := 0.0
	if max := m.page.MaxScroll(); max > 0 {
		depth = m.page.ScrollPosition() / max
	}

	preset := "custom"
	if len(m.presets) > 0 {
		preset = m.presets[m.preset]
	}

	field := func(label, value string) string {
		return m.styles.label.Render(label+" ") + m.styles.value.Render(value)
	}

	line1 := strings.Join([]string{
		title,
		field("pos", fmt.Sprintf("%.0f/%.0f", m.page.ScrollPosition(), m.page.MaxScroll())),
		field("vel", fmt.Sprintf("%+.0f", s.Velocity)),
		field("phase", s.Phase.String()),
	}, "  ")
	line2 := strings.Join([]string{
		m.styles.depthBar(depth, 12),
		field("g", fmt.Sprintf("%.2f", p.G)),
		field("preset", preset),
		m.styles.sparkline(m.speeds, 20),
	}, "  ")

	hint := m.styles.help.Render("s start/stop  d descend  ↑↓ wheel  p preset  +/- g  t theme  ? help  q quit")
	if m.err != nil {
		hint = lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error())
	}
	return m.styles.status.Render(strings.Join([]string{line1, line2, hint}, "\n"))
}

const helpText = `Gravity Scroll

s / space   start or stop the session
d           smooth descent to the bottom (stopped only)
↑ ↓ k j     wheel up / down
wheel       wheel up / down
p           cycle presets
+ / -       raise / lower gravity
t           cycle themes
?           toggle this help
q           quit`

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s
}
