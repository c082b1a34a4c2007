package progress

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
)

// recordSink captures every published snapshot and the clear count.
type recordSink struct {
	mu     sync.Mutex
	values []Value
	clears int
}

func (s *recordSink) Publish(v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

func (s *recordSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *recordSink) snapshot() ([]Value, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Value(nil), s.values...), s.clears
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected int
	}{
		{"very short clamps to min", 50 * time.Millisecond, 5},
		{"exactly min", 500 * time.Millisecond, 5},
		{"one per 100ms", 2 * time.Second, 20},
		{"exactly max", 5 * time.Second, 50},
		{"very long clamps to max", time.Minute, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ticks(tt.duration); got != tt.expected {
				t.Errorf("Ticks(%v)=%d, want %d", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestReporter_Sleep(t *testing.T) {
	sink := &recordSink{}
	r := NewReporter(sink)
	token := cancel.NewToken()

	start := time.Now()
	if err := r.Sleep(300*time.Millisecond, token); err != nil {
		t.Fatalf("Sleep error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 300*time.Millisecond {
		t.Errorf("Sleep returned after %v, want >= 300ms", elapsed)
	}

	values, clears := sink.snapshot()
	if len(values) != 5 {
		t.Fatalf("published %d snapshots, want 5 (min ticks)", len(values))
	}
	for i, v := range values {
		if v.Current != i+1 || v.Total != 5 {
			t.Errorf("snapshot %d = %+v, want {%d 5 false}", i, v, i+1)
		}
		if v.InError {
			t.Errorf("snapshot %d has InError set", i)
		}
	}
	if clears != 1 {
		t.Errorf("sink cleared %d times, want 1", clears)
	}
}

func TestReporter_SleepInError(t *testing.T) {
	sink := &recordSink{}
	r := NewReporter(sink)

	if err := r.SleepInError(100*time.Millisecond, cancel.NewToken()); err != nil {
		t.Fatalf("SleepInError error: %v", err)
	}

	values, _ := sink.snapshot()
	if len(values) == 0 {
		t.Fatal("no snapshots published")
	}
	for _, v := range values {
		if !v.InError {
			t.Errorf("snapshot %+v should carry the error-context flag", v)
		}
	}
}

func TestReporter_SleepCancellation(t *testing.T) {
	sink := &recordSink{}
	r := NewReporter(sink)
	token := cancel.NewToken()

	go func() {
		time.Sleep(150 * time.Millisecond)
		token.Cancel()
	}()

	start := time.Now()
	err := r.Sleep(5*time.Second, token)
	elapsed := time.Since(start)

	if !errors.Is(err, core.ErrCancelled) {
		t.Fatalf("got %v, want Cancelled", err)
	}
	// Cancellation latency is bounded by one tick, not the full duration.
	if elapsed > time.Second {
		t.Errorf("cancellation observed after %v, want well under the 5s duration", elapsed)
	}

	_, clears := sink.snapshot()
	if clears != 1 {
		t.Errorf("sink cleared %d times, want 1 even on cancellation", clears)
	}
}

func TestNewReporter_NilSink(t *testing.T) {
	r := NewReporter(nil)
	if err := r.Sleep(50*time.Millisecond, cancel.NewToken()); err != nil {
		t.Errorf("Sleep with nop sink: %v", err)
	}
}
