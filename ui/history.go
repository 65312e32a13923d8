package ui

// History keeps the last N samples of a population series.
type History struct {
	samples []float32
	next    int
	full    bool
}

// NewHistory creates a history holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{samples: make([]float32, capacity)}
}

// Push appends a sample, dropping the oldest once full.
func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

// Values returns the samples oldest first.
func (h *History) Values() []float32 {
	if !h.full {
		return append([]float32(nil), h.samples[:h.next]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Max returns the largest stored sample, or 0 when empty.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.samples[:h.Len()] {
		m = max(m, v)
	}
	return m
}

// Reset drops every sample.
func (h *History) Reset() {
	h.next = 0
	h.full = false
}
