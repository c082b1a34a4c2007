// Package report records per-step outcomes for one run.
//
// A Run is append-only while the engine executes: every attempted step
// gets exactly one Entry, opened before the step runs and closed with
// its outcome. Steps never attempted (after a stop-on-failure abort or a
// cancellation) get no entry at all.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uipilot-dev/uipilot/pkg/core"
)

// Entry is the recorded outcome of one attempted step.
type Entry struct {
	Index        int       `json:"index"`
	StepID       string    `json:"stepId"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	StartTime    time.Time `json:"startTime"`
	Duration     int64     `json:"duration"` // milliseconds
	ErrorKind    string    `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Image        []byte    `json:"image,omitempty"`
}

// Run aggregates the entries, log lines and outcome of one execution.
type Run struct {
	mu sync.Mutex

	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Entries   []Entry    `json:"steps"`
	Log       []string   `json:"log,omitempty"`
	Passed    bool       `json:"passed"`

	current   *Entry
	finalized bool
}

// NewRun starts an empty run report with a fresh UUID.
func NewRun(name string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: time.Now(),
	}
}

// Begin opens the entry for a step about to execute. Any previously open
// entry must have been closed first.
func (r *Run) Begin(index int, stepID, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &Entry{
		Index:       index,
		StepID:      stepID,
		Description: description,
		Status:      core.StatusRunning.String(),
		StartTime:   time.Now(),
	}
}

// Complete closes the open entry with the step's outcome. A nil error
// marks it passed; core.ErrCancelled marks it cancelled; any other error
// marks it failed with the error's kind and message.
func (r *Run) Complete(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	entry := r.current
	entry.Duration = time.Since(entry.StartTime).Milliseconds()

	switch {
	case err == nil:
		entry.Status = core.StatusPassed.String()
	case errors.Is(err, core.ErrCancelled):
		entry.Status = core.StatusCancelled.String()
		entry.ErrorKind = core.KindCancelled.String()
		entry.ErrorMessage = err.Error()
	default:
		entry.Status = core.StatusFailed.String()
		entry.ErrorKind = core.KindOf(err).String()
		entry.ErrorMessage = err.Error()
	}

	r.Entries = append(r.Entries, *entry)
	r.current = nil
}

// AttachImage stores a binary snapshot on the entry currently open. If no
// entry is open the image is dropped.
func (r *Run) AttachImage(img []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || len(img) == 0 {
		return
	}
	r.current.Image = append([]byte(nil), img...)
}

// Logf appends a line to the run log.
func (r *Run) Logf(format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Log = append(r.Log, fmt.Sprintf(format, v...))
}

// Finalize closes the run. Success means every recorded entry passed.
// Finalizing twice is a no-op.
func (r *Run) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return
	}
	r.finalized = true
	now := time.Now()
	r.EndTime = &now

	r.Passed = true
	for _, entry := range r.Entries {
		if entry.Status != core.StatusPassed.String() {
			r.Passed = false
			break
		}
	}
}

// Success reports whether the finalized run passed.
func (r *Run) Success() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized && r.Passed
}

// Len returns the number of closed entries.
func (r *Run) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Entries)
}

// Entry returns a copy of the closed entry at index i.
func (r *Run) Entry(i int) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.Entries) {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// WriteJSON writes the run as indented JSON.
func (r *Run) WriteJSON(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
