package server

import (
	"context"
	"sync"
	"time"

	"nanobanana-go/internal/credential"
	"nanobanana-go/internal/events"
	"nanobanana-go/internal/upstream/gemini"
)

// HealthWatch folds credential and dispatch events into the state served by
// /healthz. Payloads carry redacted keys only.
type HealthWatch struct {
	mu            sync.RWMutex
	removedKeys   []string
	lastRemovalAt time.Time
	failures      map[string]int
	lastFailure   string
	lastFailureAt time.Time
}

// HealthSnapshot is a point-in-time copy of HealthWatch.
type HealthSnapshot struct {
	RemovedKeys       []string       `json:"removed_keys"`
	LastRemovalAt     *time.Time     `json:"last_removal_at,omitempty"`
	DispatchFailures  map[string]int `json:"dispatch_failures"`
	LastFailureReason string         `json:"last_failure_reason,omitempty"`
	LastFailureAt     *time.Time     `json:"last_failure_at,omitempty"`
}

// NewHealthWatch returns an empty watch.
func NewHealthWatch() *HealthWatch {
	return &HealthWatch{failures: make(map[string]int)}
}

// Attach subscribes the watch to sub and returns a function that detaches it.
func (w *HealthWatch) Attach(sub events.Subscriber) func() {
	offRemoved := sub.Subscribe(events.TopicCredentialRemoved, w.onRemoved)
	offFailed := sub.Subscribe(events.TopicDispatchFailed, w.onFailed)
	return func() {
		offRemoved()
		offFailed()
	}
}

func (w *HealthWatch) onRemoved(_ context.Context, evt events.Event) {
	removal, ok := evt.Payload.(credential.RemovalEvent)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removedKeys = append(w.removedKeys, removal.Key)
	w.lastRemovalAt = evt.Timestamp
}

func (w *HealthWatch) onFailed(_ context.Context, evt events.Event) {
	failure, ok := evt.Payload.(gemini.FailureEvent)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures[failure.Reason]++
	w.lastFailure = failure.Reason
	w.lastFailureAt = evt.Timestamp
}

// Snapshot copies the current state.
func (w *HealthWatch) Snapshot() HealthSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := HealthSnapshot{
		RemovedKeys:       append([]string{}, w.removedKeys...),
		DispatchFailures:  make(map[string]int, len(w.failures)),
		LastFailureReason: w.lastFailure,
	}
	for reason, n := range w.failures {
		snap.DispatchFailures[reason] = n
	}
	if !w.lastRemovalAt.IsZero() {
		at := w.lastRemovalAt
		snap.LastRemovalAt = &at
	}
	if !w.lastFailureAt.IsZero() {
		at := w.lastFailureAt
		snap.LastFailureAt = &at
	}
	return snap
}
