package monitor

import (
	"sync"
	"time"

	"github.com/PixPMusic/gopher-midi/midi"
)

// Entry is one recorded message
type Entry struct {
	Seq     uint64    `json:"seq"`
	Time    time.Time `json:"time"`
	Port    string    `json:"port"`
	Kind    string    `json:"kind"`
	Channel int       `json:"channel"` // -1 for system messages
	Bytes   string    `json:"bytes"`
	Text    string    `json:"text"`
}

// History keeps the most recent messages in a ring
type History struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	seq     uint64
}

// NewHistory creates a history holding up to size entries
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{entries: make([]Entry, size)}
}

// Add records msg as received from port
func (h *History) Add(port string, msg midi.Message) {
	e := Entry{
		Time:    time.Now(),
		Port:    port,
		Kind:    msg.Kind().String(),
		Channel: -1,
		Text:    msg.String(),
	}
	if cm, ok := msg.(midi.ChannelMessage); ok {
		e.Channel = int(cm.Channel())
	}
	if b, err := msg.Encode(midi.NoChannel); err == nil {
		e.Bytes = midi.FormatHex(b)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	e.Seq = h.seq
	h.entries[h.next] = e
	h.next = (h.next + 1) % len(h.entries)
	if h.next == 0 {
		h.full = true
	}
}

// Last returns up to n of the newest entries, oldest first. n <= 0 returns all.
func (h *History) Last(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := h.next
	if h.full {
		count = len(h.entries)
	}
	if n <= 0 || n > count {
		n = count
	}

	out := make([]Entry, 0, n)
	for i := count - n; i < count; i++ {
		idx := i
		if h.full {
			idx = (h.next + i) % len(h.entries)
		}
		out = append(out, h.entries[idx])
	}
	return out
}
