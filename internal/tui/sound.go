package tui

import "github.com/omini25/fitsched/internal/engine"

// cueSink collects the engine's notification cues so the event loop can turn
// them into status lines (with a terminal bell when sound is on). Playback
// cannot fail here; failures would be swallowed by the engine anyway.
type cueSink struct {
	bell  bool
	queue []engine.Notification
}

func (c *cueSink) Play(n engine.Notification) error {
	c.queue = append(c.queue, n)
	return nil
}

// drain returns the status line for any pending cues and clears the queue.
func (c *cueSink) drain() (string, bool) {
	if len(c.queue) == 0 {
		return "", false
	}
	n := c.queue[len(c.queue)-1]
	c.queue = c.queue[:0]

	var text string
	switch n {
	case engine.NotifyStart:
		text = "Workout started"
	case engine.NotifyRest:
		text = "Rest time"
	case engine.NotifyNext:
		text = "Next exercise"
	case engine.NotifyComplete:
		text = "Workout complete!"
	default:
		return "", false
	}
	if c.bell {
		text += " \a"
	}
	return text, true
}
