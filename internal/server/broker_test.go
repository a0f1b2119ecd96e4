package server

import (
	"encoding/json"
	"testing"
)

func receive(t *testing.T, ch chan []byte) Event {
	t.Helper()
	select {
	case data, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		return ev
	default:
		t.Fatal("no event queued")
	}
	return Event{}
}

func TestBrokerPublish(t *testing.T) {
	b := NewBroker()
	a1 := b.Subscribe("a")
	a2 := b.Subscribe("a")
	other := b.Subscribe("b")

	b.Publish("a", Event{Type: eventError, Error: "boom"})

	for _, ch := range []chan []byte{a1, a2} {
		if ev := receive(t, ch); ev.Type != eventError || ev.Error != "boom" {
			t.Errorf("event = %+v", ev)
		}
	}
	if len(other) != 0 {
		t.Error("event leaked to another session")
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("a")

	for range cap(ch) + 5 {
		b.Publish("a", Event{Type: eventState})
	}
	if len(ch) != cap(ch) {
		t.Errorf("queued = %d, want %d", len(ch), cap(ch))
	}
}

func TestBrokerUnsubscribeAndClose(t *testing.T) {
	b := NewBroker()
	ch1 := b.Subscribe("a")
	ch2 := b.Subscribe("a")

	b.Unsubscribe("a", ch1)
	if n := b.Subscribers("a"); n != 1 {
		t.Fatalf("subscribers = %d, want 1", n)
	}
	b.Publish("a", Event{Type: eventState})
	if len(ch1) != 0 {
		t.Error("unsubscribed channel received an event")
	}

	b.Close("a")
	receive(t, ch2)
	if _, ok := <-ch2; ok {
		t.Error("channel still open after close")
	}
	if n := b.Subscribers("a"); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}

	// Unsubscribing after close must not panic.
	b.Unsubscribe("a", ch2)
}
