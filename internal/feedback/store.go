// Package feedback keeps an in-process, bounded log of user corrections
// and exposes a time-decayed per-pane adjustment map. Nothing here
// survives a process restart.
package feedback

import (
	"sort"
	"sync"

	"paneswitch/internal/pane"
)

// Options bounds the store. TTLMillis controls both pruning and the
// linear decay horizon; MaxEntries caps retained records.
type Options struct {
	TTLMillis  int64
	MaxEntries int
}

// DefaultOptions matches a 30 minute decay horizon.
func DefaultOptions() Options {
	return Options{
		TTLMillis:  30 * 60 * 1000,
		MaxEntries: 200,
	}
}

// Store is the only shared mutable state in the engine. Reads prune as a
// side effect, so every entry point takes the lock.
type Store struct {
	mu      sync.Mutex
	opts    Options
	records []pane.FeedbackRecord
}

// NewStore creates an empty store. Non-positive options fall back to
// defaults.
func NewStore(opts Options) *Store {
	def := DefaultOptions()
	if opts.TTLMillis <= 0 {
		opts.TTLMillis = def.TTLMillis
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = def.MaxEntries
	}
	return &Store{opts: opts}
}

// Register appends a correction. Malformed records (empty pane id or
// unknown rating) are dropped without error; Register reports whether
// the record was accepted so callers can validate at their own boundary.
func (s *Store) Register(rec pane.FeedbackRecord) bool {
	if rec.PaneID == "" || !rec.Rating.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return true
}

// Adjustments prunes expired and surplus records, then returns the
// summed decayed contribution per pane id. A pane with no surviving
// records is absent from the map. now is unix millis.
func (s *Store) Adjustments(now int64) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	adjustments := make(map[string]float64, len(s.records))
	for _, rec := range s.records {
		age := now - rec.Timestamp
		decay := 1 - float64(age)/float64(s.opts.TTLMillis)
		if decay < 0 {
			decay = 0
		} else if decay > 1 {
			decay = 1
		}
		if rec.Rating == pane.RatingMatch {
			adjustments[rec.PaneID] += decay
		} else {
			adjustments[rec.PaneID] -= decay
		}
	}
	return adjustments
}

// Len reports the retained record count without pruning.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// pruneLocked drops records whose age reached the ttl, then evicts the
// oldest-by-timestamp surplus beyond MaxEntries. Caller holds the lock.
func (s *Store) pruneLocked(now int64) {
	kept := s.records[:0]
	for _, rec := range s.records {
		if now-rec.Timestamp < s.opts.TTLMillis {
			kept = append(kept, rec)
		}
	}
	s.records = kept

	if len(s.records) > s.opts.MaxEntries {
		sort.SliceStable(s.records, func(i, j int) bool {
			return s.records[i].Timestamp < s.records[j].Timestamp
		})
		surplus := len(s.records) - s.opts.MaxEntries
		s.records = append([]pane.FeedbackRecord(nil), s.records[surplus:]...)
	}
}
