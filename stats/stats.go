package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event describes one handled query, as fed to counters and to live
// subscribers.
type Event struct {
	Domain   string    `json:"domain"`
	Type     uint16    `json:"type"`
	Outcome  string    `json:"outcome"`
	Duration string    `json:"duration"`
	At       time.Time `json:"at"`

	elapsed time.Duration
}

// NewEvent builds an event for one handled query.
func NewEvent(domain string, qtype uint16, outcome string, elapsed time.Duration) Event {
	return Event{
		Domain:   domain,
		Type:     qtype,
		Outcome:  outcome,
		Duration: elapsed.String(),
		At:       time.Now(),
		elapsed:  elapsed,
	}
}

// Stats holds DNS server statistics and fans events out to live
// subscribers.
type Stats struct {
	mu sync.RWMutex

	total int64

	byOutcome map[string]int64
	byDomain  map[string]int64

	// Response time tracking, most recent maxTimes samples
	responseTimes []time.Duration
	maxTimes      int

	subscribers map[chan Event]struct{}
}

// New creates a stats collector.
func New() *Stats {
	return &Stats{
		byOutcome:     make(map[string]int64),
		byDomain:      make(map[string]int64),
		responseTimes: make([]time.Duration, 0, 1000),
		maxTimes:      1000,
		subscribers:   make(map[chan Event]struct{}),
	}
}

// Record counts one handled query and forwards it to subscribers.
// Slow subscribers miss events rather than block the server.
func (s *Stats) Record(ev Event) {
	atomic.AddInt64(&s.total, 1)

	s.mu.Lock()
	s.byOutcome[ev.Outcome]++
	if ev.Domain != "" {
		s.byDomain[ev.Domain]++
	}

	s.responseTimes = append(s.responseTimes, ev.elapsed)
	if len(s.responseTimes) > s.maxTimes {
		s.responseTimes = s.responseTimes[len(s.responseTimes)-s.maxTimes:]
	}

	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe registers a live event feed. The returned cancel function
// unregisters and closes the channel.
func (s *Stats) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Snapshot is the dashboard's view of current statistics.
type Snapshot struct {
	TotalQueries int64             `json:"total_queries"`
	ByOutcome    map[string]int64  `json:"by_outcome"`
	TopDomains   map[string]int64  `json:"top_domains"`
	ResponseTime ResponseTimeStats `json:"response_time"`
}

// ResponseTimeStats holds response time statistics
type ResponseTimeStats struct {
	Min   string `json:"min"`
	Max   string `json:"max"`
	Avg   string `json:"avg"`
	Count int    `json:"count"`
}

// GetSnapshot returns a snapshot of current statistics.
func (s *Stats) GetSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		TotalQueries: atomic.LoadInt64(&s.total),
		ByOutcome:    make(map[string]int64, len(s.byOutcome)),
		TopDomains:   make(map[string]int64),
	}

	for outcome, count := range s.byOutcome {
		snapshot.ByOutcome[outcome] = count
	}

	// Top 10 domains by query count
	type domainCount struct {
		domain string
		count  int64
	}
	counts := make([]domainCount, 0, len(s.byDomain))
	for domain, count := range s.byDomain {
		counts = append(counts, domainCount{domain, count})
	}
	for i := 0; i < len(counts) && i < 10; i++ {
		maxIdx := i
		for j := i + 1; j < len(counts); j++ {
			if counts[j].count > counts[maxIdx].count {
				maxIdx = j
			}
		}
		counts[i], counts[maxIdx] = counts[maxIdx], counts[i]
		snapshot.TopDomains[counts[i].domain] = counts[i].count
	}

	if len(s.responseTimes) > 0 {
		var sum time.Duration
		minTime := s.responseTimes[0]
		maxTime := s.responseTimes[0]

		for _, rt := range s.responseTimes {
			sum += rt
			if rt < minTime {
				minTime = rt
			}
			if rt > maxTime {
				maxTime = rt
			}
		}

		snapshot.ResponseTime.Count = len(s.responseTimes)
		snapshot.ResponseTime.Min = minTime.String()
		snapshot.ResponseTime.Max = maxTime.String()
		snapshot.ResponseTime.Avg = (sum / time.Duration(len(s.responseTimes))).String()
	}

	return snapshot
}
