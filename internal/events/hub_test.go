package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	var got []Event
	unsubscribe := hub.Subscribe(TopicCredentialRemoved, func(_ context.Context, evt Event) {
		got = append(got, evt)
	})

	hub.Publish(context.Background(), TopicCredentialRemoved, "payload", map[string]string{"key": "AIza****7890"})
	hub.Publish(context.Background(), TopicDispatchFailed, "ignored", nil)

	require.Len(t, got, 1)
	require.Equal(t, TopicCredentialRemoved, got[0].Topic)
	require.Equal(t, "payload", got[0].Payload)
	require.Equal(t, "AIza****7890", got[0].Metadata["key"])
	require.False(t, got[0].Timestamp.IsZero())

	unsubscribe()
	hub.Publish(context.Background(), TopicCredentialRemoved, "again", nil)
	require.Len(t, got, 1)
}
