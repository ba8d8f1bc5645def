package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// frameMsg carries a converted frame from the render goroutine.
type frameMsg struct {
	lines         []string
	width, height int
}

// releaseMsg fires while keys are held so expired ones can be released.
type releaseMsg time.Time

type model struct {
	t    *terminal
	keys keyMap
	help help.Model
	now  func() time.Time

	width  int
	height int

	frame       []string
	frameWidth  int
	frameHeight int

	// held keys and the time each one is released
	deadlines map[uint32]time.Time
	ticking   bool

	frames   int
	fpsStart time.Time
	fps      float64
}

func newModel(t *terminal, now func() time.Time) model {
	h := help.New()
	h.Styles.ShortKey = dimStyle
	h.Styles.ShortDesc = dimStyle
	return model{
		t:         t,
		keys:      defaultKeyMap(),
		help:      h,
		now:       now,
		deadlines: make(map[uint32]time.Time),
		fpsStart:  now(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeCanvas()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case releaseMsg:
		return m.releaseExpired(time.Time(msg))
	case frameMsg:
		m.frame = msg.lines
		m.frameWidth, m.frameHeight = msg.width, msg.height
		m.countFrame()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.t.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeCanvas()
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		m.t.input.Scroll(1)
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.t.input.Scroll(-1)
		return m, nil
	}

	for _, mb := range m.keys.movement() {
		if key.Matches(msg, mb.binding) {
			return m.press(mb.code)
		}
	}
	return m, nil
}

// press holds a key until its deadline, or taps it when holding is disabled.
func (m model) press(code uint32) (tea.Model, tea.Cmd) {
	if m.t.holdFor <= 0 {
		m.t.input.Tap(code)
		return m, nil
	}

	m.t.input.KeyDown(code)
	m.deadlines[code] = m.now().Add(m.t.holdFor)
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.releaseTick()
}

func (m model) releaseExpired(now time.Time) (tea.Model, tea.Cmd) {
	for code, deadline := range m.deadlines {
		if !now.Before(deadline) {
			m.t.input.KeyUp(code)
			delete(m.deadlines, code)
		}
	}
	if len(m.deadlines) == 0 {
		m.ticking = false
		return m, nil
	}
	return m, m.releaseTick()
}

func (m model) releaseTick() tea.Cmd {
	return tea.Tick(m.t.holdFor/3+time.Millisecond, func(t time.Time) tea.Msg {
		return releaseMsg(t)
	})
}

func (m *model) countFrame() {
	m.frames++
	now := m.now()
	if elapsed := now.Sub(m.fpsStart); elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.fpsStart = now
	}
}

// canvasRows is the number of terminal rows left for the frame after the header and help footer.
func (m model) canvasRows() int {
	return max(m.height-1-lipgloss.Height(m.help.View(m.keys)), 1)
}

func (m model) resizeCanvas() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.t.resized(CanvasSize(m.width, m.canvasRows()))
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Render(" " + m.t.title + " ")
	status := dimStyle.Render(fmt.Sprintf(" %dx%d  %.1f fps ", m.frameWidth, m.frameHeight, m.fps))
	gap := max(0, m.width-lipgloss.Width(title)-lipgloss.Width(status))
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), status)

	rows := m.canvasRows()
	lines := m.frame
	if len(lines) > rows {
		lines = lines[:rows]
	}
	canvas := canvasStyle.Width(m.width).Height(rows).MaxWidth(m.width).Render(strings.Join(lines, "\n"))

	footer := m.help.View(m.keys)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, canvas, footer)
	return appStyle.Width(m.width).Height(m.height).MaxHeight(m.height).Render(ui)
}
