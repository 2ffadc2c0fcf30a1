package worker

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phoffmann/entitysync/internal/worker/fault"
	"github.com/phoffmann/entitysync/internal/worker/jsoncodec"
)

func TestDecideOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil acks", nil, OutcomeAck},
		{"malformed dead-letters", &fault.MalformedEnvelopeError{Reason: "missing payload"}, OutcomeDeadLetter},
		{"validation dead-letters", &fault.ValidationError{EntityType: "Customer"}, OutcomeDeadLetter},
		{"not found dead-letters", &fault.NotFoundError{EntityType: "Order", ID: 1}, OutcomeDeadLetter},
		{"unroutable drops", &fault.UnroutableError{EntityType: "Widget"}, OutcomeDrop},
		{"plain error retries", errors.New("connection refused"), OutcomeRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decideOutcome(tt.err); got != tt.want {
				t.Errorf("decideOutcome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeAck, "ack"},
		{OutcomeDrop, "drop"},
		{OutcomeDeadLetter, "dead_letter"},
		{OutcomeRetry, "retry"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestConsumerStatsCounters(t *testing.T) {
	stats := newConsumerStats()

	stats.observe(OutcomeAck, time.Millisecond, nil)
	stats.observe(OutcomeDrop, time.Millisecond, &fault.UnroutableError{EntityType: "Widget"})
	stats.observe(OutcomeDeadLetter, time.Millisecond, &fault.ValidationError{EntityType: "Customer"})
	stats.observe(OutcomeRetry, time.Millisecond, errors.New("io timeout"))
	stats.observe(OutcomeAck, 2*time.Millisecond, nil)

	snapshot := stats.Snapshot()
	if snapshot.MessagesProcessed != 5 {
		t.Errorf("MessagesProcessed = %d, want 5", snapshot.MessagesProcessed)
	}
	if snapshot.Acked != 2 || snapshot.Dropped != 1 || snapshot.DeadLettered != 1 || snapshot.Retried != 1 {
		t.Errorf("counters = %d/%d/%d/%d, want 2/1/1/1",
			snapshot.Acked, snapshot.Dropped, snapshot.DeadLettered, snapshot.Retried)
	}
	if snapshot.LastError != "io timeout" {
		t.Errorf("LastError = %q, want %q", snapshot.LastError, "io timeout")
	}
	if snapshot.Latency.SampleSize != 5 {
		t.Errorf("Latency.SampleSize = %d, want 5", snapshot.Latency.SampleSize)
	}
	if snapshot.Latency.LastNs != int64(2*time.Millisecond) {
		t.Errorf("Latency.LastNs = %d, want %d", snapshot.Latency.LastNs, int64(2*time.Millisecond))
	}
}

func TestConsumerStatsSnapshotJSON(t *testing.T) {
	stats := newConsumerStats()
	stats.observe(OutcomeAck, time.Millisecond, nil)

	raw, err := jsoncodec.Marshal(stats.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for _, key := range []string{`"messages_processed"`, `"acked"`, `"latency"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("snapshot JSON missing %s: %s", key, raw)
		}
	}
	if strings.Contains(string(raw), "latencyWindow") {
		t.Errorf("snapshot JSON leaks internal state: %s", raw)
	}
}

func TestLatencyWindowPercentiles(t *testing.T) {
	lw := newLatencyWindow(16)
	for i := 1; i <= 10; i++ {
		lw.Add(time.Duration(i) * time.Millisecond)
	}

	snapshot := lw.Snapshot()
	if snapshot.SampleSize != 10 {
		t.Fatalf("SampleSize = %d, want 10", snapshot.SampleSize)
	}
	if snapshot.P50Ns <= 0 || snapshot.P50Ns > snapshot.P95Ns || snapshot.P95Ns > snapshot.P99Ns {
		t.Errorf("percentiles out of order: p50=%d p95=%d p99=%d", snapshot.P50Ns, snapshot.P95Ns, snapshot.P99Ns)
	}
	if snapshot.AverageNs != int64(5500*time.Microsecond) {
		t.Errorf("AverageNs = %d, want %d", snapshot.AverageNs, int64(5500*time.Microsecond))
	}
}

func TestLatencyWindowWrapsAround(t *testing.T) {
	lw := newLatencyWindow(4)
	for i := 1; i <= 6; i++ {
		lw.Add(time.Duration(i) * time.Millisecond)
	}

	snapshot := lw.Snapshot()
	if snapshot.SampleSize != 4 {
		t.Errorf("SampleSize = %d, want 4", snapshot.SampleSize)
	}
	// Only the newest four samples (3..6ms) remain.
	if snapshot.AverageNs != int64(4500*time.Microsecond) {
		t.Errorf("AverageNs = %d, want %d", snapshot.AverageNs, int64(4500*time.Microsecond))
	}
}
