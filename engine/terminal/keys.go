package terminal

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/charmbracelet/bubbles/key"
)

// moveBinding ties a terminal key binding to the engine key code it stands in for.
type moveBinding struct {
	binding key.Binding
	code    uint32
}

type keyMap struct {
	Forward  key.Binding
	Back     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	OrbitL   key.Binding
	OrbitR   key.Binding
	TiltUp   key.Binding
	TiltDown key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Forward:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w/s", "forward/back")),
		Back:     key.NewBinding(key.WithKeys("s")),
		Left:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a/d", "strafe")),
		Right:    key.NewBinding(key.WithKeys("d")),
		Up:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space/c", "up/down")),
		Down:     key.NewBinding(key.WithKeys("c")),
		OrbitL:   key.NewBinding(key.WithKeys("q", "left"), key.WithHelp("q/e ←/→", "orbit")),
		OrbitR:   key.NewBinding(key.WithKeys("e", "right")),
		TiltUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "tilt")),
		TiltDown: key.NewBinding(key.WithKeys("down")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// movement lists the bindings that translate into held engine keys.
func (k keyMap) movement() []moveBinding {
	return []moveBinding{
		{k.Forward, common.KeyW},
		{k.Back, common.KeyS},
		{k.Left, common.KeyA},
		{k.Right, common.KeyD},
		{k.Up, common.KeySpace},
		{k.Down, common.KeyLeftControl},
		{k.OrbitL, common.KeyQ},
		{k.OrbitR, common.KeyE},
		{k.TiltUp, common.KeyUp},
		{k.TiltDown, common.KeyDown},
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Left, k.OrbitL, k.ZoomIn, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Left, k.Up},
		{k.OrbitL, k.TiltUp, k.ZoomIn},
		{k.Help, k.Quit},
	}
}
