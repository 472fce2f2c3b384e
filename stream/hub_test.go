package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ChristopherRabotin/orrery"
	"github.com/gorilla/websocket"
)

func dial(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	srv := httptest.NewServer(h)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %s", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn, func() {
		conn.Close()
		h.Close()
		srv.Close()
	}
}

func testFrame() orrery.Frame {
	sim := orrery.NewSimulation(orrery.SolarSystem())
	return sim.Tick(1)
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(0, nil)
	conn, done := dial(t, h)
	defer done()

	frame := testFrame()
	sent, err := h.Broadcast(frame)
	if err != nil {
		t.Fatalf("broadcast: %s", err)
	}
	if sent != 1 {
		t.Fatalf("sent to %d clients instead of 1", sent)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	var got orrery.Frame
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if got.Years != frame.Years || len(got.Bodies) != len(frame.Bodies) {
		t.Fatalf("got %f years and %d bodies, want %f and %d", got.Years, len(got.Bodies), frame.Years, len(frame.Bodies))
	}
	earth, ok := got.Body("Earth")
	if !ok {
		t.Fatal("no Earth in streamed frame")
	}
	if want, _ := frame.Body("Earth"); earth.Position != want.Position {
		t.Fatalf("Earth at %v instead of %v", earth.Position, want.Position)
	}
}

func TestHubRateLimit(t *testing.T) {
	h := NewHub(0.5, nil)
	_, done := dial(t, h)
	defer done()

	frame := testFrame()
	if sent, _ := h.Broadcast(frame); sent != 1 {
		t.Fatalf("first frame sent to %d clients", sent)
	}
	if sent, _ := h.Broadcast(frame); sent != 0 {
		t.Fatalf("second frame within the rate sent to %d clients", sent)
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub(0, nil)
	conn, done := dial(t, h)
	defer done()
	frames := make(chan orrery.Frame)
	go h.Run(frames)
	close(frames)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal closure, got %v", err)
	}
	if n := h.Clients(); n != 0 {
		t.Fatalf("%d clients after close", n)
	}
}
