package d3d9hook

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Trace counts calls of device methods the overlay itself never hooks. It
// is a second, independent hook layer on the same device.
type Trace struct {
	CreateTexture atomic.Uint64
	SetTexture    atomic.Uint64
	SetFVF        atomic.Uint64

	log  *zap.SugaredLogger
	last time.Time
}

func NewTrace(log *zap.SugaredLogger) *Trace {
	return &Trace{log: log}
}

// Tick logs the counters at most once per second and resets them. It
// reports whether a line was logged.
func (t *Trace) Tick(now time.Time) bool {
	if t.last.IsZero() {
		t.last = now
		return false
	}
	if now.Sub(t.last) < time.Second {
		return false
	}
	t.last = now
	t.log.Debugw("device calls",
		"create_texture", t.CreateTexture.Swap(0),
		"set_texture", t.SetTexture.Swap(0),
		"set_fvf", t.SetFVF.Swap(0))
	return true
}
