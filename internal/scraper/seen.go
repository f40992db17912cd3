package scraper

import "sync"

// seenSet is a mutex-guarded URL set shared by discovery goroutines.
type seenSet struct {
	mu sync.Mutex
	v  map[string]bool
}

func newSeenSet() *seenSet {
	return &seenSet{v: make(map[string]bool)}
}

// Seen marks url and reports whether it had been marked before.
func (s *seenSet) Seen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v[url] {
		return true
	}
	s.v[url] = true
	return false
}
