package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesOnlyRecipient(t *testing.T) {
	hub := NewHub()

	mine, cleanupMine := hub.Subscribe(1)
	defer cleanupMine()
	theirs, cleanupTheirs := hub.Subscribe(2)
	defer cleanupTheirs()

	hub.Publish(1, Event{Event: "notification", Data: "hello"})

	select {
	case ev := <-mine:
		assert.Equal(t, int64(1), ev.UserID)
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected an event for user 1")
	}

	select {
	case ev := <-theirs:
		t.Fatalf("user 2 received %v", ev)
	default:
	}
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(7)
	assert.Equal(t, 1, hub.SubscriberCount(7))

	cleanup()
	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	_, open := <-ch
	assert.False(t, open)

	// Publishing with no subscribers is a no-op
	hub.Publish(7, Event{Event: "notification"})
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(3)
	defer cleanup()

	for i := 0; i < hub.buffer+5; i++ {
		hub.Publish(3, Event{Event: "notification", Data: i})
	}
	assert.Len(t, ch, hub.buffer)
}
