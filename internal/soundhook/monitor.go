// Package soundhook watches the game's sound player function and forwards
// every played sound id to the overlay module through the bridge.
package soundhook

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Notifier is the sending side of the bridge.
type Notifier interface {
	NotifyTrackStart(id uint32) bool
	NotifyTrackStop(id uint32) bool
	ResetSession() bool
}

var bgmRanges = [][2]uint32{
	{0x34, 0x34},
	{0x34D, 0x34D},
	{0x100, 0x108}, // stages
	{0x200, 0x209}, // bosses
	{0x300, 0x305}, // special
	{0x400, 0x402}, // villages
}

// IsBGM reports whether id is one of the known music ids.
func IsBGM(id uint32) bool {
	for _, r := range bgmRanges {
		if id >= r[0] && id <= r[1] {
			return true
		}
	}
	return false
}

// Category is a rough guess of what a sound id is, used in discovery logs.
func Category(id uint32) string {
	switch {
	case id < 0x30:
		return "player/system sfx"
	case id < 0x100:
		return "menu/ui"
	case id < 0x200:
		return "stage music?"
	case id < 0x300:
		return "boss music?"
	case id < 0x400:
		return "special music?"
	case id < 0x500:
		return "village/shop?"
	case id < 0x600:
		return "enemy sfx?"
	case id < 0x700:
		return "environment sfx?"
	}
	return "unknown"
}

// Monitor receives sound ids from the hooked function. Observe runs on the
// game's audio path and everything else on the control goroutine.
type Monitor struct {
	mu        sync.Mutex
	notify    Notifier
	resetID   uint32
	log       *zap.SugaredLogger
	last      uint32
	freq      map[uint32]int
	discovery bool
}

func NewMonitor(n Notifier, resetID uint32, log *zap.SugaredLogger) *Monitor {
	return &Monitor{
		notify:  n,
		resetID: resetID,
		log:     log,
		freq:    make(map[uint32]int),
	}
}

// Observe handles one call of the sound player.
func (m *Monitor) Observe(id uint32) {
	if id == 0 {
		return
	}
	m.mu.Lock()
	m.freq[id]++
	count := m.freq[id]
	discovery := m.discovery
	reset := id == m.resetID && m.last != m.resetID
	if IsBGM(id) {
		m.last = id
	}
	m.mu.Unlock()

	if discovery {
		m.log.Infow("sound", "id", fmt.Sprintf("0x%X", id), "count", count, "category", Category(id))
	}
	// the overlay filters by its track table
	m.notify.NotifyTrackStart(id)
	if reset {
		m.log.Infow("title screen reached, resetting BGM session")
		m.notify.ResetSession()
	}
}

// Stop tells the overlay the last music stopped.
func (m *Monitor) Stop() {
	m.mu.Lock()
	last := m.last
	m.last = 0
	m.mu.Unlock()
	if last != 0 {
		m.notify.NotifyTrackStop(last)
	}
}

func (m *Monitor) ToggleDiscovery() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discovery = !m.discovery
	return m.discovery
}

func (m *Monitor) LastBGM() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

type Count struct {
	ID    uint32
	Count int
}

// Frequencies returns the observed ids, most frequent first.
func (m *Monitor) Frequencies() []Count {
	m.mu.Lock()
	counts := make([]Count, 0, len(m.freq))
	for id, n := range m.freq {
		counts = append(counts, Count{id, n})
	}
	m.mu.Unlock()
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].ID < counts[j].ID
	})
	return counts
}

// Report logs the frequency table grouped into rare, occasional and
// frequent sounds.
func (m *Monitor) Report() {
	counts := m.Frequencies()
	m.log.Infow("sound frequency report", "distinct", len(counts))
	for _, c := range counts {
		bucket := "rare"
		switch {
		case c.Count > 10:
			bucket = "frequent"
		case c.Count > 2:
			bucket = "occasional"
		}
		m.log.Infow("  sound", "id", fmt.Sprintf("0x%X", c.ID), "count", c.Count, "bucket", bucket, "bgm", IsBGM(c.ID))
	}
}
