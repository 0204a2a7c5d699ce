package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/carousel"
)

// ─── layout ─────────────────────────────────────────────────────────────────

const (
	// cellPixels converts terminal columns into the pseudo-pixels the
	// gesture thresholds are measured in.
	cellPixels = 8

	cardCols = 24
	cardRows = 7

	defaultWidth  = 100
	defaultHeight = 24
)

// ─── keys ───────────────────────────────────────────────────────────────────

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.First, k.Last},
		{k.Help, k.Quit},
	}
}

// ─── model ──────────────────────────────────────────────────────────────────

// Model drives a carousel.Engine from the terminal. Mouse drags are fed to
// the engine's gesture pipeline in pseudo-pixels so the same thresholds
// apply as in the windowed stage.
type Model struct {
	engine *carousel.Engine
	keys   keyMap
	help   help.Model

	now   func() time.Time
	start time.Time

	width  int
	height int
	last   carousel.GestureResult
}

// New returns a Model over e.
func New(e *carousel.Engine) Model {
	m := Model{
		engine: e,
		keys:   defaultKeyMap(),
		help:   help.New(),
		now:    time.Now,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.start = m.now()
	return m
}

// Run starts a full-screen program with mouse support and blocks until
// the user quits.
func Run(e *carousel.Engine) error {
	p := tea.NewProgram(New(e), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// timestamp returns milliseconds since the model was created.
func (m Model) timestamp() float64 {
	return float64(m.now().Sub(m.start).Microseconds()) / 1000
}

func (m Model) containerWidth() float64 {
	return float64(m.width * cellPixels)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.engine.Prev()
		case key.Matches(msg, m.keys.Next):
			m.engine.Next()
		case key.Matches(msg, m.keys.First):
			m.engine.ScrollTo(0)
		case key.Matches(msg, m.keys.Last):
			m.engine.ScrollTo(m.engine.Len() - 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() {
			switch msg.Button {
			case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
				m.engine.Prev()
			case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
				m.engine.Next()
			}
			return m, nil
		}
		x := float64(msg.X * cellPixels)
		switch msg.Action {
		case tea.MouseActionPress:
			button := carousel.MouseButtonLeft
			if msg.Button != tea.MouseButtonLeft {
				button = carousel.MouseButtonRight
			}
			m.engine.PointerDown(x, m.timestamp(), button)
		case tea.MouseActionMotion:
			m.engine.PointerMove(x, m.timestamp(), m.containerWidth())
		case tea.MouseActionRelease:
			m.last = m.engine.PointerUp(m.timestamp())
		}
		return m, nil
	}
	return m, nil
}

// ─── view ───────────────────────────────────────────────────────────────────

func (m Model) View() string {
	descs := m.engine.Descriptors()
	cards := make([]string, 0, len(descs))
	for _, d := range descs {
		cards = append(cards, renderCard(d))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, cards...)
	row = lipgloss.PlaceHorizontal(max(m.width-4, lipgloss.Width(row)), lipgloss.Center, row)

	status := []string{
		titleStyle.Render(fmt.Sprintf("Slide %d of %d", m.engine.ActiveIndex()+1, m.engine.Len())),
		arrows(m.engine),
	}
	if st := m.engine.State(); st.IsDragging {
		status = append(status, hotStyle.Render(fmt.Sprintf("drag %+.2f", st.DragOffsetPercent)))
	} else if m.last.Classification != carousel.ClassNone {
		status = append(status, mutedStyle.Render(gestureLabel(m.last)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		row,
		"",
		strings.Join(status, "  "),
		"",
		m.help.View(m.keys),
	)
	return appStyle.Render(body)
}

func renderCard(d carousel.SlideTransform) string {
	t := d.Transform
	style := cardStyle
	if math.Abs(d.Position) < 0.5 {
		style = cardActiveStyle
	}
	if t.Opacity < 0.9 {
		style = style.Faint(true)
	}

	w := max(int(math.Round(cardCols*t.Scale)), 8)
	h := max(int(math.Round(cardRows*t.Scale)), 3)

	title := d.Slide.Title
	if title == "" {
		title = fmt.Sprintf("Slide %d", d.Index+1)
	}
	lines := []string{
		title,
		mutedStyle.Render(fmt.Sprintf("pos %+.2f", d.Position)),
	}
	if t.RotationDegrees != 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("rot %+.0f°", t.RotationDegrees)))
	}
	return style.Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

func arrows(e *carousel.Engine) string {
	prev, next := mutedStyle.Render("‹"), mutedStyle.Render("›")
	if e.CanScrollPrev() {
		prev = titleStyle.Render("‹")
	}
	if e.CanScrollNext() {
		next = titleStyle.Render("›")
	}
	return prev + " " + next
}

func gestureLabel(r carousel.GestureResult) string {
	if r.Flick {
		return r.Classification.String() + " (flick)"
	}
	return r.Classification.String()
}
