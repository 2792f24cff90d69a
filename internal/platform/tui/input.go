package tui

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// defaultInputBuffer is enough for a burst of key repeats between polls.
const defaultInputBuffer = 64

// ChannelInput queues actions from the UI goroutine for the engine loop.
// Send may be called from any goroutine; Poll only from the engine loop.
type ChannelInput struct {
	ch    chan core.Action
	timer *time.Timer
}

var _ tetris.InputSource = (*ChannelInput)(nil)

// NewChannelInput creates an input queue holding up to size actions.
func NewChannelInput(size int) *ChannelInput {
	if size <= 0 {
		size = defaultInputBuffer
	}
	return &ChannelInput{ch: make(chan core.Action, size)}
}

// Send queues an action without blocking. It reports false if the
// queue was full and the action was dropped.
func (c *ChannelInput) Send(a core.Action) bool {
	select {
	case c.ch <- a:
		return true
	default:
		return false
	}
}

// Poll waits at most timeout for the next action.
func (c *ChannelInput) Poll(timeout time.Duration) (core.Action, bool) {
	select {
	case a := <-c.ch:
		return a, true
	default:
	}

	if c.timer == nil {
		c.timer = time.NewTimer(timeout)
	} else {
		c.timer.Reset(timeout)
	}

	select {
	case a := <-c.ch:
		c.timer.Stop()
		return a, true
	case <-c.timer.C:
		return core.ActionNone, false
	}
}

// FrameBuffer is a one-slot mailbox holding the latest snapshot.
// A newer frame replaces one the UI has not picked up yet.
type FrameBuffer struct {
	ch chan tetris.Snapshot
}

var _ tetris.Renderer = (*FrameBuffer)(nil)

// NewFrameBuffer creates an empty frame mailbox.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{ch: make(chan tetris.Snapshot, 1)}
}

// Render publishes s, dropping any unread frame. Only the engine loop
// may call it.
func (f *FrameBuffer) Render(s tetris.Snapshot) {
	select {
	case <-f.ch:
	default:
	}
	f.ch <- s
}

// Frames returns the receive side of the mailbox.
func (f *FrameBuffer) Frames() <-chan tetris.Snapshot {
	return f.ch
}
