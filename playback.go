package glyphgrid

import "github.com/tanema/gween"

// Playback is a cooperative state machine driven entirely by the host's
// Update call. There are no goroutines and no timers: tick accumulates dt
// until a frame period elapses, then advances. Multiple Play calls share
// the one clock, so playback can never double-speed.

// tick advances the playback clock and the active crossfade by dt seconds.
func (c *rendererCore) tick(dt float64) {
	if c.destroyed {
		return
	}

	if c.fade != nil {
		v, done := c.fade.Update(float32(dt))
		c.fadeT = float64(v)
		if done {
			c.fade = nil
		}
	}

	if !c.playing {
		return
	}
	if len(c.project.Frames) < 2 {
		return
	}

	period := 1.0 / c.opts.FramesPerSecond
	c.acc += dt
	for c.acc >= period {
		c.acc -= period
		c.advance(1, true)
	}
}

// play starts playback from the current frame. Calling it again while
// already playing is a no-op; the accumulator is reset only on the
// stopped-to-playing edge so a pause/play pair resumes cleanly.
func (c *rendererCore) play() {
	if c.destroyed || c.playing {
		return
	}
	c.playing = true
	c.acc = 0
}

// pause halts the clock but keeps the current frame.
func (c *rendererCore) pause() {
	c.playing = false
}

// stop halts the clock and rewinds to frame 0.
func (c *rendererCore) stop() {
	if c.destroyed {
		return
	}
	c.playing = false
	c.acc = 0
	c.setFrame(0, false)
}

func (c *rendererCore) togglePlay() {
	if c.playing {
		c.pause()
	} else {
		c.play()
	}
}

// step moves the frame index by delta with wraparound. Manual steps skip
// the crossfade so scrubbing feels immediate.
func (c *rendererCore) step(delta int) {
	c.advance(delta, false)
}

// goTo jumps to an absolute frame index; out-of-range indices are ignored.
func (c *rendererCore) goTo(index int) {
	if c.destroyed {
		return
	}
	if index < 0 || index >= len(c.project.Frames) {
		debugf("GoTo(%d) out of range [0, %d)", index, len(c.project.Frames))
		return
	}
	c.setFrame(index, false)
}

// advance moves delta frames with wraparound, optionally starting a
// crossfade from the outgoing frame.
func (c *rendererCore) advance(delta int, crossfade bool) {
	n := len(c.project.Frames)
	if c.destroyed || n == 0 {
		return
	}
	next := ((c.frame+delta)%n + n) % n
	c.setFrame(next, crossfade)
}

// setFrame is the single frame-index mutation point: it snapshots the
// outgoing frame for the crossfade, updates the index, and fires the
// frame-change callback.
func (c *rendererCore) setFrame(index int, crossfade bool) {
	if index == c.frame {
		return
	}

	if crossfade && c.opts.TransitionDuration > 0 && c.atlas != nil {
		// Snapshot the outgoing frame's encoding before the index moves.
		c.prevBuf = EncodeFrame(c.prevBuf, c.project.FrameAt(c.frame), c.project.Canvas, c.atlas)
		c.fade = gween.New(0, 1, float32(c.opts.TransitionDuration), c.opts.TransitionEase)
		c.fadeT = 0
	} else {
		c.fade = nil
	}

	c.frame = index
	if c.opts.OnFrameChange != nil {
		c.opts.OnFrameChange(index)
	}
}
