package bridge

import (
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestEndpointDetachedIsNoop(t *testing.T) {
	var e Endpoint
	e.NotifyTrackStart(0x100)
	e.NotifyTrackStop(0x100)
	e.ResetSession()

	q := &Queue{}
	e.Attach(q)
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("events from before attach leaked: %v", got)
	}
}

func TestEndpointOrder(t *testing.T) {
	var e Endpoint
	q := &Queue{}
	e.Attach(q)
	e.NotifyTrackStart(0x100)
	e.ResetSession()
	e.NotifyTrackStop(0x100)
	want := []Event{{TrackStart, 0x100}, {ResetSession, 0}, {TrackStop, 0x100}}
	if got := q.Drain(); !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("second drain returned %v", got)
	}
	e.Detach()
	e.NotifyTrackStart(1)
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("detached endpoint queued %v", got)
	}
}

func TestEndpointConcurrentProducers(t *testing.T) {
	var e Endpoint
	q := &Queue{}
	e.Attach(q)

	const producers, perProducer = 8, 500
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				e.NotifyTrackStart(uint32(p<<16 | i))
			}
		}(p)
	}

	// the consumer drains while producers run
	seen := 0
	last := make(map[int]int)
	drain := func() {
		for _, ev := range q.Drain() {
			p, i := int(ev.ID>>16), int(ev.ID&0xFFFF)
			if prev, ok := last[p]; ok && i <= prev {
				t.Errorf("producer %d: event %d after %d", p, i, prev)
			}
			last[p] = i
			seen++
		}
	}
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			drain()
		}
	}
	drain()
	if got := seen + int(q.Dropped()); got != producers*perProducer {
		t.Errorf("saw %d events and dropped %d, want %d in total", seen, q.Dropped(), producers*perProducer)
	}
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := &Queue{}
	for i := 0; i < MaxPending+10; i++ {
		q.Push(Event{Kind: TrackStart, ID: uint32(i)})
	}
	q.Push(Event{Kind: TrackStop, ID: 7})
	got := q.Drain()
	if len(got) != MaxPending {
		t.Fatalf("drained %d events, want %d", len(got), MaxPending)
	}
	if got[0].ID != 11 {
		t.Errorf("oldest kept event %d, want 11", got[0].ID)
	}
	if last := got[len(got)-1]; last != (Event{TrackStop, 7}) {
		t.Errorf("newest event %v", last)
	}
	if q.Dropped() != 11 {
		t.Errorf("dropped %d, want 11", q.Dropped())
	}
	q.Push(Event{Kind: ResetSession})
	if got := q.Drain(); len(got) != 1 {
		t.Errorf("queue did not recover after drain: %d events", len(got))
	}
}

type fakeResolver map[string]uintptr

func (f fakeResolver) Resolve(module, name string) (uintptr, bool) {
	fn, ok := f[module+"!"+name]
	return fn, ok
}

func TestClient(t *testing.T) {
	var calls [][]uintptr
	invoke := func(fn uintptr, args ...uintptr) uintptr {
		calls = append(calls, append([]uintptr{fn}, args...))
		return 0
	}
	resolver := fakeResolver{}
	c := NewClient("skoverlay.dll", resolver, invoke, zap.NewNop().Sugar())

	if c.NotifyTrackStart(0x100) || c.Connected() {
		t.Fatal("call succeeded without the overlay module")
	}
	if len(calls) != 0 {
		t.Fatal("missing export was invoked")
	}

	// the overlay module loads later
	resolver["skoverlay.dll!NotifyTrackStart"] = 0x10
	resolver["skoverlay.dll!NotifyTrackStop"] = 0x20
	resolver["skoverlay.dll!ResetSession"] = 0x30
	if !c.Connected() {
		t.Fatal("not connected after the module loaded")
	}
	c.NotifyTrackStart(0x100)
	c.NotifyTrackStop(0x100)
	c.ResetSession()
	want := [][]uintptr{{0x10, 0x100}, {0x20, 0x100}, {0x30}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("%v != %v", calls, want)
	}
}
