// Package bridge carries notifications from the sound hook module to the
// overlay module. Both live in the game process as separate DLLs: the
// overlay exports NotifyTrackStart, NotifyTrackStop and ResetSession, and
// the sound hook resolves them by name at runtime.
//
// Notifications may arrive on any thread. They are queued and applied by
// the render thread at the start of its next frame.
package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Export names of the bridge contract.
const (
	ExportTrackStart   = "NotifyTrackStart"
	ExportTrackStop    = "NotifyTrackStop"
	ExportResetSession = "ResetSession"
)

// Exports lists the bridge contract in a stable order.
var Exports = []string{ExportTrackStart, ExportTrackStop, ExportResetSession}

type EventKind int

const (
	TrackStart EventKind = iota
	TrackStop
	ResetSession
)

func (k EventKind) String() string {
	switch k {
	case TrackStart:
		return "TrackStart"
	case TrackStop:
		return "TrackStop"
	case ResetSession:
		return "ResetSession"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

type Event struct {
	Kind EventKind
	ID   uint32
}

// MaxPending bounds a queue whose consumer stopped draining, e.g. when
// frames are presented through a path the overlay does not see.
const MaxPending = 1024

// Queue is a multi-producer, single-consumer event queue. When full it
// drops the oldest event.
type Queue struct {
	mu      sync.Mutex
	pending []Event
	dropped uint64
}

func (q *Queue) Push(e Event) {
	q.mu.Lock()
	if len(q.pending) >= MaxPending {
		n := copy(q.pending, q.pending[1:])
		q.pending = q.pending[:n]
		q.dropped++
	}
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Drain returns every queued event in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.pending
	q.pending = nil
	return events
}

// Endpoint is the receiving side behind the exported functions. Its zero
// value is detached and drops every notification, which makes calls that
// arrive before the overlay is initialized harmless.
type Endpoint struct {
	queue atomic.Pointer[Queue]
}

func (e *Endpoint) Attach(q *Queue) { e.queue.Store(q) }
func (e *Endpoint) Detach()         { e.queue.Store(nil) }

func (e *Endpoint) push(ev Event) {
	if q := e.queue.Load(); q != nil {
		q.Push(ev)
	}
}

func (e *Endpoint) NotifyTrackStart(id uint32) { e.push(Event{Kind: TrackStart, ID: id}) }
func (e *Endpoint) NotifyTrackStop(id uint32)  { e.push(Event{Kind: TrackStop, ID: id}) }
func (e *Endpoint) ResetSession()              { e.push(Event{Kind: ResetSession}) }
