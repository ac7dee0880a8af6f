package scan

import "sync"

// DefaultHistoryLimit bounds how many appraisals History keeps.
const DefaultHistoryLimit = 50

// History keeps the most recent completed appraisals in memory, newest first.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []AppraisalData
}

// NewHistory returns a History holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Track subscribes h to store so each completed scan is recorded once.
func (h *History) Track(store *Store) (unsubscribe func()) {
	var last *AppraisalData
	return store.Subscribe(func(s Snapshot) {
		if s.State != Complete || s.Appraisal == nil || s.Appraisal == last {
			return
		}
		last = s.Appraisal
		h.Add(*s.Appraisal)
	})
}

// Add records a.
func (h *History) Add(a AppraisalData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]AppraisalData{a}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Entries returns a copy of the recorded appraisals, newest first.
func (h *History) Entries() []AppraisalData {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]AppraisalData(nil), h.entries...)
}

// Len reports the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
