package terminal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, options ...TerminalBuilderOption) (model, *terminal, *time.Time) {
	t.Helper()
	term := NewTerminal(input.NewManager(), options...).(*terminal)
	clock := time.Unix(100, 0)
	return newModel(term, func() time.Time { return clock }), term, &clock
}

func TestBrailleDots(t *testing.T) {
	fb := framebuffer.New(4, 4, 0)
	fb.Draw(func(pixels []uint32, width, _ int) {
		pixels[0] = 1         // cell 0, dot (0,0)
		pixels[3*width+1] = 1 // cell 0, dot (3,1)
		pixels[1*width+2] = 1 // cell 1, dot (1,0)
	})

	lines := Braille(fb)
	require.Len(t, lines, 1)
	assert.Equal(t, string([]rune{0x2800 + 0x01 + 0x80, 0x2800 + 0x02}), lines[0])
}

func TestBrailleBlankAndPartialCells(t *testing.T) {
	fb := framebuffer.New(3, 5, 7)
	lines := Braille(fb)
	require.Len(t, lines, 2)
	assert.Equal(t, "  ", lines[0])
	assert.Equal(t, "  ", lines[1])

	assert.Empty(t, Braille(framebuffer.New(0, 0, 0)))
}

func TestCanvasSize(t *testing.T) {
	w, h := CanvasSize(80, 20)
	assert.Equal(t, 160, w)
	assert.Equal(t, 80, h)

	w, h = CanvasSize(-1, 3)
	assert.Equal(t, 0, w)
	assert.Equal(t, 12, h)
}

func TestWindowSizeReportsCanvas(t *testing.T) {
	m, term, _ := newTestModel(t)
	var got [2]int
	term.SetResizeCallback(func(w, h int) { got = [2]int{w, h} })

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(model)
	rows := m.canvasRows()
	assert.Less(t, rows, 30)
	assert.Equal(t, [2]int{200, rows * 4}, got)
}

func TestMovementKeysHoldUntilDeadline(t *testing.T) {
	m, term, clock := newTestModel(t, WithHoldTime(150*time.Millisecond))

	next, cmd := m.Update(runes("w"))
	m = next.(model)
	require.NotNil(t, cmd, "first press schedules a release tick")
	assert.True(t, term.input.IsHeld(common.KeyW))

	*clock = clock.Add(100 * time.Millisecond)
	next, cmd = m.Update(runes("w"))
	m = next.(model)
	assert.Nil(t, cmd, "tick already scheduled")

	next, cmd = m.Update(releaseMsg(clock.Add(100 * time.Millisecond)))
	m = next.(model)
	assert.True(t, term.input.IsHeld(common.KeyW), "repeat extended the deadline")
	assert.NotNil(t, cmd)

	next, cmd = m.Update(releaseMsg(clock.Add(150 * time.Millisecond)))
	m = next.(model)
	assert.False(t, term.input.IsHeld(common.KeyW))
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)
}

func TestZeroHoldTimeTaps(t *testing.T) {
	m, term, _ := newTestModel(t, WithHoldTime(0))
	_, cmd := m.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.True(t, term.input.IsHeld(common.KeyQ))
	term.input.EndUpdate()
	assert.False(t, term.input.IsHeld(common.KeyQ))
}

func TestArrowAndZoomKeys(t *testing.T) {
	m, term, _ := newTestModel(t)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.True(t, term.input.IsHeld(common.KeyUp))

	_, _ = m.Update(runes("+"))
	_, _ = m.Update(runes("+"))
	_, _ = m.Update(runes("-"))
	assert.Equal(t, float32(1), term.input.ConsumeScroll())
}

func TestQuitRunsCallback(t *testing.T) {
	m, term, _ := newTestModel(t)
	quit := false
	term.SetQuitCallback(func() { quit = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, quit)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFrameShownInView(t *testing.T) {
	m, _, _ := newTestModel(t, WithTitle("demo"))
	assert.Empty(t, m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	next, _ = next.(model).Update(frameMsg{lines: []string{"⣿⣿"}, width: 4, height: 4})
	view := next.(model).View()
	assert.Contains(t, view, "demo")
	assert.Contains(t, view, "⣿⣿")
	assert.Contains(t, view, "4x4")
}

func TestPresentAfterExit(t *testing.T) {
	term := NewTerminal(nil).(*terminal)
	term.markDone()
	assert.ErrorIs(t, term.Present(framebuffer.New(2, 4, 0)), ErrNotRunning)
	term.Close()
}
