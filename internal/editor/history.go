package editor

import "sync"

// History is the input recalled by prompts sharing an identifier.
type History struct {
	mu      sync.Mutex
	entries []string
}

// Add records committed input. Empty input and repeats of the newest entry
// are not recorded.
func (h *History) Add(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == s) {
		return
	}
	h.entries = append(h.entries, s)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Recall returns the entry n places back, counting from one for the
// newest.
func (h *History) Recall(n int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n < 1 || n > len(h.entries) {
		return "", false
	}
	return h.entries[len(h.entries)-n], true
}

// Histories stores prompt histories by identifier.
type Histories struct {
	mu   sync.Mutex
	byID map[string]*History
}

// NewHistories creates an empty store.
func NewHistories() *Histories {
	return &Histories{byID: make(map[string]*History)}
}

// Get returns the history for id, creating it on first use.
func (s *Histories) Get(id string) *History {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	if !ok {
		h = &History{}
		s.byID[id] = h
	}
	return h
}
