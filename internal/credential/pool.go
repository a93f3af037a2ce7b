package credential

import (
	"sync"

	"nanobanana-go/internal/events"
	"nanobanana-go/internal/monitoring"
	"nanobanana-go/internal/redact"

	log "github.com/sirupsen/logrus"
)

// Mode describes how the dispatcher should reach the upstream.
type Mode int

const (
	// ModeUnconfigured means neither keys nor a fixed endpoint exist.
	ModeUnconfigured Mode = iota
	// ModePooled means at least one API key remains in the pool.
	ModePooled
	// ModeFixedEndpoint means the pool is empty but a fixed endpoint is set.
	ModeFixedEndpoint
)

func (m Mode) String() string {
	switch m {
	case ModePooled:
		return "pooled"
	case ModeFixedEndpoint:
		return "fixed_endpoint"
	default:
		return "unconfigured"
	}
}

// FixedEndpoint is the static upstream used when no API keys are available.
// Both fields are secrets and are immutable after start.
type FixedEndpoint struct {
	URL         string
	BearerToken string
}

// Pool holds API keys in insertion order and hands them out round-robin.
// A single mutex guards the key slice and the rotation cursor, so every
// Next and Remove is atomic with respect to the others.
type Pool struct {
	mu        sync.Mutex
	keys      []string
	cursor    int
	fixed     *FixedEndpoint
	publisher events.Publisher
}

// NewPool builds a pool from keys. Empty and duplicate keys are dropped.
// fixed may be nil or carry an empty URL when no fixed endpoint is configured.
func NewPool(keys []string, fixed *FixedEndpoint) *Pool {
	p := &Pool{keys: dedupe(keys)}
	if fixed != nil && fixed.URL != "" {
		cp := *fixed
		p.fixed = &cp
	}
	monitoring.CredentialPoolSize.Set(float64(len(p.keys)))
	return p
}

// SetEventPublisher wires an event publisher for credential removals.
func (p *Pool) SetEventPublisher(pub events.Publisher) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publisher = pub
}

// Mode reports the current operating mode.
func (p *Pool) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modeLocked()
}

func (p *Pool) modeLocked() Mode {
	switch {
	case len(p.keys) > 0:
		return ModePooled
	case p.fixed != nil:
		return ModeFixedEndpoint
	default:
		return ModeUnconfigured
	}
}

// Fixed returns a copy of the fixed endpoint configuration, if any.
func (p *Pool) Fixed() (FixedEndpoint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fixed == nil {
		return FixedEndpoint{}, false
	}
	return *p.fixed, true
}

// Size returns the number of keys currently in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// Keys returns a copy of the remaining keys in insertion order.
func (p *Pool) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Next returns the next key in cyclic order. ok is false when the pool is
// empty, which callers must treat as "not in pooled mode".
func (p *Pool) Next() (key string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) == 0 {
		return "", false
	}
	if p.cursor >= len(p.keys) {
		p.cursor = 0
	}
	key = p.keys[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.keys)
	return key, true
}

// Remove drops key permanently. It reports whether the key was present;
// removing an absent key is a no-op.
func (p *Pool) Remove(key string) bool {
	p.mu.Lock()

	idx := -1
	for i, k := range p.keys {
		if k == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.mu.Unlock()
		return false
	}

	p.keys = append(p.keys[:idx], p.keys[idx+1:]...)
	// Keep the cursor pointing at the same successor so rotation order over
	// the remaining keys is unchanged.
	if idx < p.cursor {
		p.cursor--
	}
	if p.cursor >= len(p.keys) {
		p.cursor = 0
	}
	remaining := len(p.keys)
	mode := p.modeLocked()
	publisher := p.publisher
	p.mu.Unlock()

	masked := redact.Key(key)
	monitoring.CredentialPoolSize.Set(float64(remaining))
	monitoring.CredentialRemovalsTotal.Inc()
	log.WithFields(log.Fields{
		"key":       masked,
		"remaining": remaining,
		"mode":      mode.String(),
	}).Warn("credential removed from pool")
	if remaining == 0 {
		log.WithField("mode", mode.String()).Warn("credential pool exhausted")
	}
	emitRemoval(publisher, masked, remaining, mode)
	return true
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			log.WithField("key", redact.Key(k)).Warn("duplicate API key ignored")
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
