package credential

import (
	"testing"

	"pgregory.net/rapid"
)

func distinctKeys(t *rapid.T) []string {
	return rapid.SliceOfNDistinct(
		rapid.StringMatching(`[A-Za-z0-9]{4,20}`), 1, 12, rapid.ID[string],
	).Draw(t, "keys")
}

// Calling Next N times on an unmodified pool of size N yields every key once,
// in insertion order.
func TestPropertyRoundRobinVisitsEachKeyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := distinctKeys(t)
		pool := NewPool(keys, nil)

		for i := range keys {
			k, ok := pool.Next()
			if !ok || k != keys[i] {
				t.Fatalf("step %d: got %q (ok=%v), want %q", i, k, ok, keys[i])
			}
		}
	})
}

// After Remove(c), c is never returned again and the size drops by exactly one.
func TestPropertyRemovedKeyNeverReturned(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := distinctKeys(t)
		pool := NewPool(keys, nil)

		advance := rapid.IntRange(0, 2*len(keys)).Draw(t, "advance")
		for i := 0; i < advance; i++ {
			pool.Next()
		}
		victim := rapid.SampledFrom(keys).Draw(t, "victim")

		before := pool.Size()
		if !pool.Remove(victim) {
			t.Fatalf("remove %q reported absent", victim)
		}
		if pool.Size() != before-1 {
			t.Fatalf("size %d after remove, want %d", pool.Size(), before-1)
		}
		if pool.Remove(victim) || pool.Size() != before-1 {
			t.Fatalf("second remove was not idempotent")
		}

		seen := make(map[string]int)
		for i := 0; i < 2*pool.Size(); i++ {
			k, ok := pool.Next()
			if !ok {
				break
			}
			if k == victim {
				t.Fatalf("removed key %q returned by Next", victim)
			}
			seen[k]++
		}
		for k, n := range seen {
			if n != 2 {
				t.Fatalf("key %q visited %d times in two full cycles", k, n)
			}
		}
	})
}
