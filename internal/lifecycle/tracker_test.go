package lifecycle

import (
	"testing"
	"time"
)

func frames(t *Tracker, n int) (safe bool) {
	for i := 0; i < n; i++ {
		safe = t.FrameEnd()
	}
	return safe
}

func TestTrackerWarmup(t *testing.T) {
	tr := NewTracker(10)
	if tr.Safe() {
		t.Fatal("uninitialized tracker is safe")
	}
	if tr.FrameEnd() {
		t.Fatal("first frame is safe")
	}
	if s := tr.Session(); s.State != WarmingUp || s.Frames != 0 {
		t.Fatalf("after first frame: %+v", s)
	}
	if frames(tr, 10) {
		t.Fatal("stable at the threshold, must exceed it")
	}
	if !tr.FrameEnd() {
		t.Fatal("not stable after exceeding the threshold")
	}
}

func TestTrackerResetForcesWarmup(t *testing.T) {
	tr := NewTracker(DefaultWarmupFrames)
	tr.DeviceCreated()
	if !frames(tr, DefaultWarmupFrames+1) {
		t.Fatal("device never became stable")
	}

	tr.DeviceLost()
	if tr.Safe() {
		t.Fatal("lost device is safe")
	}
	tr.DeviceReset(true)
	if s := tr.Session(); s.State != WarmingUp || s.Frames != 0 || s.Resets != 1 {
		t.Fatalf("after reset: %+v", s)
	}
	// no draw until the threshold is exceeded again
	for i := 0; i < DefaultWarmupFrames; i++ {
		if tr.FrameEnd() {
			t.Fatalf("drawing allowed %d frames after reset", i+1)
		}
	}
	if !tr.FrameEnd() {
		t.Fatalf("not stable %d frames after reset", DefaultWarmupFrames+1)
	}
	if s := tr.Session(); s.State != Stable || s.Resets != 1 {
		t.Fatalf("after warm-up: %+v", s)
	}
}

func TestTrackerFailedReset(t *testing.T) {
	tr := NewTracker(5)
	tr.DeviceCreated()
	frames(tr, 6)
	tr.DeviceLost()
	tr.DeviceReset(false)
	if s := tr.Session(); s.State != Lost {
		t.Fatalf("failed reset left state %s", s.State)
	}
	tr.FrameEnd()
	if s := tr.Session(); s.State != WarmingUp || s.Frames != 0 {
		t.Fatalf("frame after failed reset: %+v", s)
	}
}

func TestTrackerSessions(t *testing.T) {
	tr := NewTracker(5)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }
	tr.DeviceCreated()
	first := tr.Session()
	now = now.Add(time.Minute)
	tr.DeviceCreated()
	second := tr.Session()
	if second.ID != first.ID+1 || !second.Started.Equal(now) {
		t.Errorf("sessions %+v then %+v", first, second)
	}
}

func TestTrackerSuppressed(t *testing.T) {
	tr := NewTracker(0)
	if tr.Threshold() != DefaultWarmupFrames {
		t.Errorf("threshold %d", tr.Threshold())
	}
	for i := 0; i < 3; i++ {
		tr.Suppress()
	}
	if tr.Suppressed() != 3 {
		t.Errorf("suppressed %d", tr.Suppressed())
	}
}
