// Package lifecycle decides when it is safe to draw on the game's device.
//
// A freshly created or reset device is only trusted after it has presented
// a number of frames; until then every overlay draw is suppressed.
package lifecycle

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type State int

const (
	Uninitialized State = iota
	WarmingUp
	Stable
	Lost
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case WarmingUp:
		return "WARMING_UP"
	case Stable:
		return "STABLE"
	case Lost:
		return "LOST"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DefaultWarmupFrames is how many frames a device must present before it is
// considered stable.
const DefaultWarmupFrames = 600

// Session describes the current device from its creation or last reset.
type Session struct {
	ID      int
	Started time.Time
	State   State
	Frames  int
	Resets  int
}

type Tracker struct {
	mu        sync.Mutex
	threshold int
	now       func() time.Time
	session   Session

	suppressed atomic.Uint64
}

func NewTracker(threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultWarmupFrames
	}
	return &Tracker{threshold: threshold, now: time.Now}
}

// DeviceCreated starts a new session for a newly created device.
func (t *Tracker) DeviceCreated() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = Session{
		ID:      t.session.ID + 1,
		Started: t.now(),
		State:   WarmingUp,
	}
}

// DeviceLost must be called before the device's Reset runs.
func (t *Tracker) DeviceLost() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.State = Lost
}

// DeviceReset must be called after Reset returns. A failed reset leaves the
// device lost until the next frame.
func (t *Tracker) DeviceReset(ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Resets++
	if !ok {
		t.session.State = Lost
		return
	}
	t.session.State = WarmingUp
	t.session.Frames = 0
}

// FrameEnd records one presented frame and reports whether drawing is
// allowed for it.
func (t *Tracker) FrameEnd() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.session.State {
	case Uninitialized:
		t.session.ID++
		t.session.Started = t.now()
		t.session.State = WarmingUp
		t.session.Frames = 0
	case Lost:
		t.session.State = WarmingUp
		t.session.Frames = 0
	case WarmingUp:
		t.session.Frames++
		if t.session.Frames > t.threshold {
			t.session.State = Stable
		}
	case Stable:
		t.session.Frames++
	}
	return t.session.State == Stable
}

// Safe reports whether the device is stable.
func (t *Tracker) Safe() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.State == Stable
}

// Suppress counts a draw skipped because the device was not stable.
func (t *Tracker) Suppress() {
	t.suppressed.Add(1)
}

// Suppressed is the number of skipped draws since the tracker was created.
func (t *Tracker) Suppressed() uint64 {
	return t.suppressed.Load()
}

func (t *Tracker) Session() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

func (t *Tracker) Threshold() int {
	return t.threshold
}
