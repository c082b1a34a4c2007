package locator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/core"
	"github.com/uipilot-dev/uipilot/pkg/driver/mock"
	"github.com/uipilot-dev/uipilot/pkg/progress"
)

func newLocator(drv core.Driver) *Locator {
	return New(drv, progress.NewReporter(progress.NopSink{}))
}

func TestWaitForImmediateMatch(t *testing.T) {
	drv := mock.New(mock.Config{
		Elements: []mock.ElementSpec{{ID: "login_button"}},
	})
	loc := newLocator(drv)

	el, err := loc.WaitFor("login_button", time.Second, cancel.NewToken())
	if err != nil {
		t.Fatalf("WaitFor failed: %v", err)
	}
	if el.ID != "login_button" {
		t.Errorf("located %q, want login_button", el.ID)
	}

	flashed := false
	for _, entry := range drv.Journal() {
		if entry == "flash:login_button" {
			flashed = true
		}
	}
	if !flashed {
		t.Error("located element was not flashed")
	}
}

func TestWaitForElementAppearsMidWait(t *testing.T) {
	drv := mock.New(mock.Config{
		Elements: []mock.ElementSpec{{ID: "toast", AppearAfter: 250 * time.Millisecond}},
	})
	loc := newLocator(drv)

	start := time.Now()
	el, err := loc.WaitFor("toast", 2*time.Second, cancel.NewToken())
	if err != nil {
		t.Fatalf("WaitFor failed: %v", err)
	}
	if el.ID != "toast" {
		t.Errorf("located %q, want toast", el.ID)
	}
	elapsed := time.Since(start)
	if elapsed < 200*time.Millisecond || elapsed > time.Second {
		t.Errorf("elapsed = %v, want roughly 250ms", elapsed)
	}
}

func TestWaitForTimeout(t *testing.T) {
	drv := mock.New(mock.Config{})
	loc := newLocator(drv)

	start := time.Now()
	_, err := loc.WaitFor("ghost", time.Second, cancel.NewToken())
	elapsed := time.Since(start)

	if !errors.Is(err, core.ErrTimeoutExceeded) {
		t.Fatalf("err = %v, want ErrTimeoutExceeded", err)
	}
	if elapsed < time.Second {
		t.Errorf("returned after %v, before the timeout elapsed", elapsed)
	}
	if elapsed > 1500*time.Millisecond {
		t.Errorf("returned after %v, well past the timeout", elapsed)
	}
}

func TestWaitForCancellation(t *testing.T) {
	drv := mock.New(mock.Config{})
	loc := newLocator(drv)
	token := cancel.NewToken()

	go func() {
		time.Sleep(150 * time.Millisecond)
		token.Cancel()
	}()

	start := time.Now()
	_, err := loc.WaitFor("ghost", 5*time.Second, token)
	elapsed := time.Since(start)

	if !errors.Is(err, core.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("abort took %v, want within about one poll tick of the cancel", elapsed)
	}
}

func TestWaitForAmbiguousTarget(t *testing.T) {
	drv := mock.New(mock.Config{
		Elements: []mock.ElementSpec{{ID: "row", Duplicates: 2}},
	})
	loc := newLocator(drv)

	start := time.Now()
	_, err := loc.WaitFor("row", 5*time.Second, cancel.NewToken())
	if !errors.Is(err, core.ErrAmbiguousTarget) {
		t.Fatalf("err = %v, want ErrAmbiguousTarget", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("ambiguity reported after %v, want immediately", elapsed)
	}
}

func TestWaitForPublishesProgress(t *testing.T) {
	drv := mock.New(mock.Config{
		Elements: []mock.ElementSpec{{ID: "late", AppearAfter: 400 * time.Millisecond}},
	})
	sink := &recordSink{}
	loc := New(drv, progress.NewReporter(sink))

	if _, err := loc.WaitFor("late", 2*time.Second, cancel.NewToken()); err != nil {
		t.Fatalf("WaitFor failed: %v", err)
	}

	values, clears := sink.snapshot()
	if len(values) == 0 {
		t.Fatal("no progress published during the wait")
	}
	for _, v := range values {
		if v.InError {
			t.Error("plain wait published InError progress")
		}
		if v.Current > v.Total {
			t.Errorf("progress %d/%d exceeds total", v.Current, v.Total)
		}
	}
	if clears != 1 {
		t.Errorf("progress cleared %d times, want 1", clears)
	}
}

func TestWaitForInErrorFlagsProgress(t *testing.T) {
	drv := mock.New(mock.Config{
		Elements: []mock.ElementSpec{{ID: "field", AppearAfter: 300 * time.Millisecond}},
	})
	sink := &recordSink{}
	loc := New(drv, progress.NewReporter(sink))

	if _, err := loc.WaitForInError("field", 2*time.Second, cancel.NewToken()); err != nil {
		t.Fatalf("WaitForInError failed: %v", err)
	}

	values, _ := sink.snapshot()
	if len(values) == 0 {
		t.Fatal("no progress published during the wait")
	}
	for _, v := range values {
		if !v.InError {
			t.Error("error-variant wait published progress without InError")
		}
	}
}

func TestWaitForAbsent(t *testing.T) {
	t.Run("already absent", func(t *testing.T) {
		loc := newLocator(mock.New(mock.Config{}))
		if err := loc.WaitForAbsent("gone", time.Second, cancel.NewToken()); err != nil {
			t.Fatalf("WaitForAbsent failed: %v", err)
		}
	})

	t.Run("still present", func(t *testing.T) {
		drv := mock.New(mock.Config{
			Elements: []mock.ElementSpec{{ID: "spinner"}},
		})
		loc := newLocator(drv)

		err := loc.WaitForAbsent("spinner", 500*time.Millisecond, cancel.NewToken())
		if !errors.Is(err, core.ErrTimeoutExceeded) {
			t.Fatalf("err = %v, want ErrTimeoutExceeded", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		drv := mock.New(mock.Config{
			Elements: []mock.ElementSpec{{ID: "spinner"}},
		})
		loc := newLocator(drv)
		token := cancel.NewToken()
		token.Cancel()

		err := loc.WaitForAbsent("spinner", 5*time.Second, token)
		if !errors.Is(err, core.ErrCancelled) {
			t.Fatalf("err = %v, want ErrCancelled", err)
		}
	})
}

type recordSink struct {
	mu     sync.Mutex
	values []progress.Value
	clears int
}

func (s *recordSink) Publish(v progress.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

func (s *recordSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *recordSink) snapshot() ([]progress.Value, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]progress.Value(nil), s.values...), s.clears
}
