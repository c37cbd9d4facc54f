package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestClient(runID uuid.UUID) *Client {
	return &Client{ID: uuid.New(), RunID: runID, Send: make(chan []byte, 8)}
}

func TestHub_RegisterAddsClientToCountsAndRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	runID := uuid.New()
	c := newTestClient(runID)
	h.Register(c)

	deadline := time.After(time.Second)
	for h.ClientCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for client registration")
		default:
		}
	}
	if h.RunClientCount(runID) != 1 {
		t.Errorf("expected 1 client in the run's room, got %d", h.RunClientCount(runID))
	}
}

func TestHub_UnregisterRemovesClientAndClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	runID := uuid.New()
	c := newTestClient(runID)
	h.Register(c)
	waitForCount(t, h, 1)

	h.Unregister(c)
	waitForCount(t, h, 0)

	if h.RunClientCount(runID) != 0 {
		t.Errorf("expected the run's room to be emptied, got %d", h.RunClientCount(runID))
	}
	if _, ok := <-c.Send; ok {
		t.Error("expected the client's Send channel to be closed on unregister")
	}
}

func TestHub_UnregisterTwiceIsSafe(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(uuid.New())
	h.Register(c)
	waitForCount(t, h, 1)

	h.Unregister(c)
	waitForCount(t, h, 0)
	h.Unregister(c) // must not panic on a second close of c.Send
	time.Sleep(10 * time.Millisecond)
}

func TestHub_BroadcastTickOnlyReachesThatRunsRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	runA, runB := uuid.New(), uuid.New()
	ca := newTestClient(runA)
	cb := newTestClient(runB)
	h.Register(ca)
	h.Register(cb)
	waitForCount(t, h, 2)

	h.BroadcastTick(runA, TickUpdate{Type: "tick", Tick: 7, RunID: runA, Stats: json.RawMessage(`{}`)})

	select {
	case msg := <-ca.Send:
		var u TickUpdate
		if err := json.Unmarshal(msg, &u); err != nil {
			t.Fatalf("failed to unmarshal broadcast payload: %v", err)
		}
		if u.Tick != 7 {
			t.Errorf("expected tick 7, got %d", u.Tick)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for run A's client to receive the broadcast")
	}

	select {
	case <-cb.Send:
		t.Error("expected run B's client to not receive run A's broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastToUnknownRunIsANoop(t *testing.T) {
	h := NewHub()
	go h.Run()
	h.BroadcastTick(uuid.New(), TickUpdate{Type: "tick", Tick: 1})
	time.Sleep(10 * time.Millisecond) // must not panic or hang
}

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.After(time.Second)
	for h.ClientCount() != want {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for ClientCount()==%d, last saw %d", want, h.ClientCount())
		default:
		}
	}
}
