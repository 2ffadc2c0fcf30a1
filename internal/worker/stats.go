package worker

import (
	"encoding/json"
	"math"
	"sort"
	"sync"
	"time"
)

const latencySampleSize = 256

// ConsumerInfo describes one registered entity consumer for the ops
// endpoint.
type ConsumerInfo struct {
	Name       string         `json:"name"`
	EntityType string         `json:"entity_type"`
	Queue      string         `json:"queue"`
	Stats      *ConsumerStats `json:"stats"`
}

// ConsumerStats tracks per-consumer counters and latency. Counters are
// keyed by broker outcome so the ops endpoint shows how many messages were
// acked, dropped, dead-lettered, or sent back for redelivery.
type ConsumerStats struct {
	mu sync.Mutex

	MessagesProcessed   uint64    `json:"messages_processed"`
	Acked               uint64    `json:"acked"`
	Dropped             uint64    `json:"dropped"`
	DeadLettered        uint64    `json:"dead_lettered"`
	Retried             uint64    `json:"retried"`
	TotalProcessingTime int64     `json:"total_processing_time_ns"`
	LastProcessedAt     time.Time `json:"last_processed_at"`
	LastError           string    `json:"last_error,omitempty"`

	Latency LatencyMetrics `json:"latency"`

	latencyWindow *latencyWindow
}

// LatencyMetrics summarises the recent processing latency distribution.
type LatencyMetrics struct {
	AverageNs  int64 `json:"average_ns"`
	P50Ns      int64 `json:"p50_ns"`
	P95Ns      int64 `json:"p95_ns"`
	P99Ns      int64 `json:"p99_ns"`
	LastNs     int64 `json:"last_ns"`
	SampleSize int   `json:"sample_size"`
}

func newConsumerStats() *ConsumerStats {
	return &ConsumerStats{
		latencyWindow: newLatencyWindow(latencySampleSize),
	}
}

func (c *ConsumerStats) observe(outcome Outcome, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MessagesProcessed++
	switch outcome {
	case OutcomeAck:
		c.Acked++
	case OutcomeDrop:
		c.Dropped++
	case OutcomeDeadLetter:
		c.DeadLettered++
	default:
		c.Retried++
	}
	if err != nil {
		c.LastError = err.Error()
	}

	c.TotalProcessingTime += int64(duration)
	c.LastProcessedAt = time.Now().UTC()

	if c.latencyWindow != nil {
		c.latencyWindow.Add(duration)
		snapshot := c.latencyWindow.Snapshot()
		snapshot.LastNs = int64(duration)
		if c.MessagesProcessed > 0 {
			snapshot.AverageNs = c.TotalProcessingTime / int64(c.MessagesProcessed)
		}
		c.Latency = snapshot
	}
}

// Snapshot returns a copy of the counters for inspection in tests and the
// ops endpoint.
func (c *ConsumerStats) Snapshot() ConsumerStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ConsumerStats{
		MessagesProcessed:   c.MessagesProcessed,
		Acked:               c.Acked,
		Dropped:             c.Dropped,
		DeadLettered:        c.DeadLettered,
		Retried:             c.Retried,
		TotalProcessingTime: c.TotalProcessingTime,
		LastProcessedAt:     c.LastProcessedAt,
		LastError:           c.LastError,
		Latency:             c.Latency,
	}
}

func (c *ConsumerStats) MarshalJSON() ([]byte, error) {
	snapshot := c.Snapshot()

	type Alias ConsumerStats
	return json.Marshal((*Alias)(&snapshot))
}

type latencyWindow struct {
	samples []int64
	next    int
	filled  int
	last    int64
}

func newLatencyWindow(size int) *latencyWindow {
	if size <= 0 {
		size = latencySampleSize
	}
	return &latencyWindow{samples: make([]int64, size)}
}

func (lw *latencyWindow) Add(d time.Duration) {
	if lw == nil || len(lw.samples) == 0 {
		return
	}
	lw.samples[lw.next] = int64(d)
	lw.last = int64(d)
	lw.next = (lw.next + 1) % len(lw.samples)
	if lw.filled < len(lw.samples) {
		lw.filled++
	}
}

func (lw *latencyWindow) Snapshot() LatencyMetrics {
	var metrics LatencyMetrics
	if lw == nil {
		return metrics
	}
	if lw.filled == 0 {
		metrics.LastNs = lw.last
		return metrics
	}
	samples := make([]int64, lw.filled)
	for i := 0; i < lw.filled; i++ {
		idx := lw.next - lw.filled + i
		if idx < 0 {
			idx += len(lw.samples)
		}
		samples[i] = lw.samples[idx]
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	metrics.SampleSize = lw.filled
	metrics.P50Ns = percentile(samples, 0.50)
	metrics.P95Ns = percentile(samples, 0.95)
	metrics.P99Ns = percentile(samples, 0.99)
	var sum int64
	for _, v := range samples {
		sum += v
	}
	metrics.AverageNs = sum / int64(len(samples))
	metrics.LastNs = lw.last
	return metrics
}

func percentile(samples []int64, quantile float64) int64 {
	if len(samples) == 0 {
		return 0
	}
	if quantile <= 0 {
		return samples[0]
	}
	if quantile >= 1 {
		return samples[len(samples)-1]
	}
	pos := quantile * float64(len(samples)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return samples[lower]
	}
	frac := pos - float64(lower)
	return samples[lower] + int64(float64(samples[upper]-samples[lower])*frac)
}
