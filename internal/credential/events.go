package credential

import (
	"context"
	"time"

	"nanobanana-go/internal/events"
)

// RemovalEvent is published when a key is dropped from the pool.
// Key holds the redacted form only.
type RemovalEvent struct {
	Key       string    `json:"key"`
	Remaining int       `json:"remaining"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
}

func emitRemoval(publisher events.Publisher, maskedKey string, remaining int, mode Mode) {
	if publisher == nil {
		return
	}
	publisher.Publish(
		context.Background(),
		events.TopicCredentialRemoved,
		RemovalEvent{
			Key:       maskedKey,
			Remaining: remaining,
			Mode:      mode.String(),
			Timestamp: time.Now().UTC(),
		},
		map[string]string{"key": maskedKey},
	)
}
