package glyphgrid

import "testing"

// makeTestProject builds a small project with n frames, each marking its
// own index with a distinct cell so frames are distinguishable.
func makeTestProject(n int) Project {
	canvas := Canvas{
		Width:       4,
		Height:      3,
		Charset:     "@#. ",
		DefaultChar: ' ',
	}
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{Cells: []Cell{{X: i % 4, Y: 0, Char: '@'}}}
	}
	return Project{Canvas: canvas, Frames: frames}
}

func newTestRenderer(t *testing.T, frames int, opts Options) *CellRenderer {
	t.Helper()
	r := NewCellRenderer(makeTestProject(frames), opts)
	t.Cleanup(r.Destroy)
	return r
}

func TestPlayback_UpdateAdvancesAtConfiguredRate(t *testing.T) {
	r := newTestRenderer(t, 4, Options{FramesPerSecond: 10})
	r.Play()

	r.Update(0.05)
	if r.CurrentFrame() != 0 {
		t.Errorf("frame after half a period = %d, want 0", r.CurrentFrame())
	}
	r.Update(0.05)
	if r.CurrentFrame() != 1 {
		t.Errorf("frame after one period = %d, want 1", r.CurrentFrame())
	}
}

func TestPlayback_LargeDtAdvancesMultipleFrames(t *testing.T) {
	r := newTestRenderer(t, 10, Options{FramesPerSecond: 10})
	r.Play()

	r.Update(0.35)
	if r.CurrentFrame() != 3 {
		t.Errorf("frame after 3.5 periods = %d, want 3", r.CurrentFrame())
	}
}

func TestPlayback_PlayIdempotent(t *testing.T) {
	r := newTestRenderer(t, 4, Options{FramesPerSecond: 10})
	r.Play()
	r.Play()
	r.Play()

	r.Update(0.1)
	if r.CurrentFrame() != 1 {
		t.Errorf("frame = %d, want 1 (multiple Play calls must not stack)", r.CurrentFrame())
	}
}

func TestPlayback_WrapsAround(t *testing.T) {
	r := newTestRenderer(t, 3, Options{FramesPerSecond: 10})
	r.GoTo(2)
	r.Play()

	r.Update(0.1)
	if r.CurrentFrame() != 0 {
		t.Errorf("frame after wrapping = %d, want 0", r.CurrentFrame())
	}
}

func TestPlayback_NextPrevWrap(t *testing.T) {
	r := newTestRenderer(t, 3, Options{})

	r.Prev()
	if r.CurrentFrame() != 2 {
		t.Errorf("Prev from 0 = %d, want 2", r.CurrentFrame())
	}
	r.Next()
	if r.CurrentFrame() != 0 {
		t.Errorf("Next from 2 = %d, want 0", r.CurrentFrame())
	}
}

func TestPlayback_StopRewindsToFirstFrame(t *testing.T) {
	r := newTestRenderer(t, 4, Options{FramesPerSecond: 10})
	r.Play()
	r.Update(0.2)
	if r.CurrentFrame() == 0 {
		t.Fatal("setup: playback did not advance")
	}

	r.Stop()
	if r.CurrentFrame() != 0 {
		t.Errorf("frame after Stop = %d, want 0", r.CurrentFrame())
	}
	if r.IsPlaying() {
		t.Error("still playing after Stop")
	}
}

func TestPlayback_PauseKeepsFrame(t *testing.T) {
	r := newTestRenderer(t, 4, Options{FramesPerSecond: 10})
	r.Play()
	r.Update(0.1)

	r.Pause()
	frame := r.CurrentFrame()
	r.Update(1.0)
	if r.CurrentFrame() != frame {
		t.Errorf("frame advanced while paused: %d -> %d", frame, r.CurrentFrame())
	}
}

func TestPlayback_TogglePlay(t *testing.T) {
	r := newTestRenderer(t, 4, Options{})
	r.TogglePlay()
	if !r.IsPlaying() {
		t.Error("not playing after first toggle")
	}
	r.TogglePlay()
	if r.IsPlaying() {
		t.Error("still playing after second toggle")
	}
}

func TestPlayback_GoToOutOfRangeIgnored(t *testing.T) {
	r := newTestRenderer(t, 3, Options{})
	r.GoTo(1)

	r.GoTo(-1)
	r.GoTo(3)
	r.GoTo(100)
	if r.CurrentFrame() != 1 {
		t.Errorf("frame = %d, want 1 after out-of-range seeks", r.CurrentFrame())
	}
}

func TestPlayback_SingleFrameNeverAdvances(t *testing.T) {
	r := newTestRenderer(t, 1, Options{FramesPerSecond: 10})
	r.Play()
	r.Update(5)
	if r.CurrentFrame() != 0 {
		t.Errorf("frame = %d, want 0 for single-frame project", r.CurrentFrame())
	}
}

func TestPlayback_OnFrameChangeFires(t *testing.T) {
	var seen []int
	r := newTestRenderer(t, 3, Options{
		FramesPerSecond: 10,
		OnFrameChange:   func(i int) { seen = append(seen, i) },
	})

	r.Next()
	r.GoTo(2)
	r.Play()
	r.Update(0.1) // wraps to 0

	want := []int{1, 2, 0}
	if len(seen) != len(want) {
		t.Fatalf("callback fired %d times (%v), want %d", len(seen), seen, len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("callback %d = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestPlayback_OnFrameChangeSkipsNoopSeek(t *testing.T) {
	fired := 0
	r := newTestRenderer(t, 3, Options{OnFrameChange: func(int) { fired++ }})

	r.GoTo(0) // already there
	if fired != 0 {
		t.Errorf("callback fired %d times for a no-op seek, want 0", fired)
	}
}

func TestPlayback_CrossfadeRunsAndCompletes(t *testing.T) {
	r := newTestRenderer(t, 3, Options{
		FramesPerSecond:    1,
		TransitionDuration: 0.2,
	})
	r.Play()

	r.Update(1.0) // frame advances, crossfade starts
	if r.core.fade == nil {
		t.Fatal("no crossfade after playback tick")
	}

	r.Update(0.1)
	if r.core.fade == nil {
		t.Fatal("crossfade ended early")
	}
	if r.core.fadeT <= 0 || r.core.fadeT >= 1 {
		t.Errorf("fadeT = %v, want mid-transition", r.core.fadeT)
	}

	r.Update(0.15)
	if r.core.fade != nil {
		t.Error("crossfade still active past its duration")
	}
}

func TestPlayback_ManualStepSkipsCrossfade(t *testing.T) {
	r := newTestRenderer(t, 3, Options{TransitionDuration: 0.5})

	r.Next()
	if r.core.fade != nil {
		t.Error("manual step started a crossfade")
	}
	r.GoTo(2)
	if r.core.fade != nil {
		t.Error("seek started a crossfade")
	}
}

func TestPlayback_ZeroDurationDisablesCrossfade(t *testing.T) {
	r := newTestRenderer(t, 3, Options{FramesPerSecond: 10})
	r.Play()
	r.Update(0.1)
	if r.core.fade != nil {
		t.Error("crossfade active with zero duration")
	}
}
