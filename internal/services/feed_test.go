package services

import (
	"testing"
	"time"
)

func TestBroadcastEventDoesNotBlockOnSlowSubscriber(t *testing.T) {
	client := RegisterFeedClient("101", nil)
	defer UnregisterFeedClient(client)

	// Nobody drains client.send; overfilling the buffer must drop events
	// instead of stalling the caller.
	finished := make(chan struct{})
	go func() {
		for i := 0; i < feedSendBuffer*2; i++ {
			BroadcastEvent("101", i)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a subscriber that is not draining")
	}

	if got := len(client.send); got != feedSendBuffer {
		t.Errorf("got %d queued events, want the buffer size %d", got, feedSendBuffer)
	}
}

func TestUnregisteredSubscriberReceivesNothing(t *testing.T) {
	client := RegisterFeedClient("102", nil)
	UnregisterFeedClient(client)

	BroadcastEvent("102", "event")

	if got := len(client.send); got != 0 {
		t.Errorf("unregistered subscriber still received %d events", got)
	}
}

// The pump must terminate when the handler's cleanup closes done,
// otherwise every connection ever opened leaks a goroutine.
func TestWritePumpExitsOnDone(t *testing.T) {
	client := RegisterFeedClient("103", nil)
	defer UnregisterFeedClient(client)

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		client.WritePump(done)
		close(finished)
	}()

	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("WritePump did not exit after done was closed")
	}
}
