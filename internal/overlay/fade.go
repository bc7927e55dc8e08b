package overlay

import "time"

const (
	DefaultFadeStep    = 0.02
	DefaultDisplayTime = 5 * time.Second
	fadeWindow         = time.Second
)

// Fade animates the now-playing banner: a fast fade in during the first
// second of a track, full opacity for the display time, a slow fade out
// over the following second, then hidden. Without a track the banner fades
// out fast.
type Fade struct {
	Alpha   float32
	Step    float32
	Display time.Duration
}

func NewFade(step float32, display time.Duration) Fade {
	if step <= 0 {
		step = DefaultFadeStep
	}
	if display <= 0 {
		display = DefaultDisplayTime
	}
	return Fade{Step: step, Display: display}
}

// Advance moves alpha one frame forward. elapsed is the time since the
// current track started.
func (f *Fade) Advance(elapsed time.Duration, hasTrack, permanent bool) float32 {
	switch {
	case permanent:
		f.Alpha = 1
	case !hasTrack:
		f.Alpha -= 2 * f.Step
	case elapsed < fadeWindow:
		f.Alpha += 2 * f.Step
	case elapsed < f.Display:
		f.Alpha = 1
	case elapsed < f.Display+fadeWindow:
		f.Alpha -= f.Step
	default:
		f.Alpha = 0
	}
	f.Alpha = clamp01(f.Alpha)
	return f.Alpha
}

func (f *Fade) Visible() bool {
	return f.Alpha > 0
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
