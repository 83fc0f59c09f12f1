package collector

// History is a fixed-capacity ring of samples, oldest first.
type History struct {
	buf   []float64
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]float64, capacity)}
}

// Push appends v, dropping the oldest sample when full.
func (h *History) Push(v float64) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = v
		h.size++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

func (h *History) Len() int { return h.size }

func (h *History) Cap() int { return len(h.buf) }

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns the newest sample.
func (h *History) Last() (float64, bool) {
	if h.size == 0 {
		return 0, false
	}
	return h.buf[(h.start+h.size-1)%len(h.buf)], true
}
