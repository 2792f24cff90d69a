package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func TestChannelInputPollTimesOut(t *testing.T) {
	in := NewChannelInput(4)

	start := time.Now()
	a, ok := in.Poll(5 * time.Millisecond)

	assert.False(t, ok)
	assert.Equal(t, core.ActionNone, a)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestChannelInputDeliversInOrder(t *testing.T) {
	in := NewChannelInput(4)
	require.True(t, in.Send(core.ActionMoveLeft))
	require.True(t, in.Send(core.ActionHardDrop))

	a, ok := in.Poll(time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, core.ActionMoveLeft, a)

	a, ok = in.Poll(time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, core.ActionHardDrop, a)

	_, ok = in.Poll(time.Millisecond)
	assert.False(t, ok)
}

func TestChannelInputWakesOnSend(t *testing.T) {
	in := NewChannelInput(1)
	// Prime the timer so Poll exercises Reset.
	in.Poll(time.Millisecond)

	go func() {
		time.Sleep(5 * time.Millisecond)
		in.Send(core.ActionPause)
	}()

	a, ok := in.Poll(time.Second)
	require.True(t, ok)
	assert.Equal(t, core.ActionPause, a)
}

func TestChannelInputDropsWhenFull(t *testing.T) {
	in := NewChannelInput(1)

	assert.True(t, in.Send(core.ActionMoveLeft))
	assert.False(t, in.Send(core.ActionMoveRight))
}

func TestFrameBufferKeepsLatest(t *testing.T) {
	fb := NewFrameBuffer()

	fb.Render(tetris.Snapshot{Score: 1})
	fb.Render(tetris.Snapshot{Score: 2})
	fb.Render(tetris.Snapshot{Score: 3})

	select {
	case s := <-fb.Frames():
		assert.Equal(t, 3, s.Score)
	default:
		t.Fatal("no frame available")
	}

	select {
	case <-fb.Frames():
		t.Fatal("stale frame left in the mailbox")
	default:
	}
}
