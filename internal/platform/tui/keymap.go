package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Exit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Pause, k.Exit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW},
		{k.Pause, k.Restart, k.Exit},
	}
}

// NewKeyMap builds bindings from the configured key lists. With
// inverseRotation the clockwise and counter-clockwise keys swap roles.
func NewKeyMap(keys config.KeysConfig, inverseRotation bool) KeyMap {
	keys = config.Config{Keys: keys}.Normalize().Keys

	cw, ccw := keys.RotateCW, keys.RotateCCW
	if inverseRotation {
		cw, ccw = ccw, cw
	}

	return KeyMap{
		Left:      binding(keys.Left, "left"),
		Right:     binding(keys.Right, "right"),
		RotateCW:  binding(cw, "rotate"),
		RotateCCW: binding(ccw, "rotate ccw"),
		SoftDrop:  binding(keys.SoftDrop, "soft drop"),
		HardDrop:  binding(keys.HardDrop, "drop"),
		Pause:     binding(keys.Pause, "pause"),
		Restart:   binding(keys.Restart, "restart"),
		Exit:      binding(keys.Exit, "quit"),
	}
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys, false)
}

func binding(keys []string, desc string) key.Binding {
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = keyLabel(k)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

// keyLabel returns a printable name for a Bubble Tea key string.
func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys  KeyMap
	table []keyAction
}

type keyAction struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	km := &KeyMapper{keys: keys}
	// Exit first so a key bound twice can always leave the game.
	km.table = []keyAction{
		{&km.keys.Exit, core.ActionExit},
		{&km.keys.Left, core.ActionMoveLeft},
		{&km.keys.Right, core.ActionMoveRight},
		{&km.keys.RotateCW, core.ActionRotateCW},
		{&km.keys.RotateCCW, core.ActionRotateCCW},
		{&km.keys.SoftDrop, core.ActionSoftDrop},
		{&km.keys.HardDrop, core.ActionHardDrop},
		{&km.keys.Pause, core.ActionPause},
		{&km.keys.Restart, core.ActionRestart},
	}
	return km
}

// Keys returns the bindings the mapper was built from.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns ActionNone for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	for _, ka := range km.table {
		if key.Matches(msg, *ka.binding) {
			return ka.action
		}
	}
	return core.ActionNone
}
