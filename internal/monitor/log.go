package monitor

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the per-session event history.
const DefaultCapacity = 100

// Entry records exactly one vendor call attempt. Entries are immutable once
// appended.
type Entry struct {
	Operation string        `json:"operation"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// Log is a bounded append-only event history. When the capacity is reached
// the oldest entry is evicted first.
type Log struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// NewLog creates a log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{cap: capacity}
}

// Append records one attempt, evicting the oldest entry when full.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.cap {
		l.entries = append(l.entries[:0], l.entries[len(l.entries)-l.cap:]...)
	}
}

// Entries returns a copy of the history, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the current number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Summary aggregates the retained history for dashboard charts.
type Summary struct {
	Total       int           `json:"total"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	SuccessRate float64       `json:"success_rate"`
	AvgDuration time.Duration `json:"avg_duration"`
	MaxDuration time.Duration `json:"max_duration"`
	RollingAvg  time.Duration `json:"rolling_avg"`
}

// Summarize computes totals over the whole history plus a rolling mean
// duration over the most recent window entries.
func (l *Log) Summarize(window int) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Summary{Total: len(l.entries)}
	if s.Total == 0 {
		return s
	}
	var totalDur time.Duration
	for _, e := range l.entries {
		if e.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		totalDur += e.Duration
		if e.Duration > s.MaxDuration {
			s.MaxDuration = e.Duration
		}
	}
	s.SuccessRate = float64(s.Succeeded) / float64(s.Total)
	s.AvgDuration = totalDur / time.Duration(s.Total)

	if window <= 0 || window > len(l.entries) {
		window = len(l.entries)
	}
	var recentDur time.Duration
	recent := l.entries[len(l.entries)-window:]
	for _, e := range recent {
		recentDur += e.Duration
	}
	s.RollingAvg = recentDur / time.Duration(window)
	return s
}
