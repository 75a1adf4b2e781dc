// Package tui provides the full-screen Bubble Tea frontend: scrollback
// viewport, status bar, input line with history.
package tui

// History keeps the player's recent commands for up/down recall at the
// input line. The oldest entry is overwritten once the buffer fills.
type History struct {
	buf   []string
	head  int // next write position
	count int
	back  int // cursor distance from the newest entry; 0 = live input
}

// NewHistory creates a history buffer holding at most size commands.
func NewHistory(size int) *History {
	return &History{buf: make([]string, size)}
}

// Push records a command. Repeating the previous command adds nothing.
func (h *History) Push(cmd string) {
	if len(h.buf) == 0 {
		return
	}
	if h.count > 0 && h.at(1) == cmd {
		return
	}
	h.buf[h.head] = cmd
	h.head = (h.head + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// at returns the entry n steps back from the write position, n in 1..count.
func (h *History) at(n int) string {
	i := h.head - n
	if i < 0 {
		i += len(h.buf)
	}
	return h.buf[i]
}

// Prev steps toward older entries, sticking at the oldest. It reports
// false only when the history is empty.
func (h *History) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.back < h.count {
		h.back++
	}
	return h.at(h.back), true
}

// Next steps back toward newer entries. Past the newest it reports false
// so the caller can clear the input line.
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.at(h.back), true
}

// ResetCursor returns the cursor to the live input position.
func (h *History) ResetCursor() {
	h.back = 0
}
