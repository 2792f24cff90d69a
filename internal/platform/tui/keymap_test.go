package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperDefaults(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{"up rotates clockwise", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW},
		{"z rotates counter-clockwise", runeKey('z'), core.ActionRotateCCW},
		{"down soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"space hard drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop},
		{"pause", runeKey('p'), core.ActionPause},
		{"restart", runeKey('r'), core.ActionRestart},
		{"escape exits", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionExit},
		{"q exits", runeKey('q'), core.ActionExit},
		{"ctrl+c exits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionExit},
		{"unbound", runeKey('m'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKey(tt.msg))
		})
	}
}

func TestKeyMapperInverseRotation(t *testing.T) {
	km := NewKeyMapper(NewKeyMap(config.Default().Keys, true))

	assert.Equal(t, core.ActionRotateCCW, km.MapKey(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, core.ActionRotateCW, km.MapKey(runeKey('z')))
	assert.Equal(t, core.ActionMoveLeft, km.MapKey(tea.KeyMsg{Type: tea.KeyLeft}), "other keys unchanged")
}

func TestKeyMapperCustomKeys(t *testing.T) {
	keys := config.KeysConfig{HardDrop: []string{"enter"}}
	km := NewKeyMapper(NewKeyMap(keys, false))

	assert.Equal(t, core.ActionHardDrop, km.MapKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, core.ActionNone, km.MapKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}),
		"space is no longer bound")
	assert.Equal(t, core.ActionMoveLeft, km.MapKey(tea.KeyMsg{Type: tea.KeyLeft}), "missing lists fall back to defaults")
}

func TestKeyMapperExitWinsOnConflict(t *testing.T) {
	keys := config.KeysConfig{Pause: []string{"q"}}
	km := NewKeyMapper(NewKeyMap(keys, false))

	assert.Equal(t, core.ActionExit, km.MapKey(runeKey('q')))
}

func TestKeyMapHelpLabels(t *testing.T) {
	keys := DefaultKeyMap()

	assert.Equal(t, "space", keys.HardDrop.Help().Key)
	assert.Equal(t, "←/h", keys.Left.Help().Key)
	assert.Equal(t, "rotate", keys.RotateCW.Help().Desc)
	assert.Len(t, keys.FullHelp(), 3)
}
