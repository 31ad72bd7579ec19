package ws

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type fakeTokens struct{}

func (fakeTokens) ValidateToken(token, sessionID string) error {
	if token != "good" || (sessionID != "s1" && sessionID != `s"1`) {
		return errors.New("denied")
	}
	return nil
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/sessions/{id}", NewHandler(hub, fakeTokens{}).SessionWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) (*websocket.Conn, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestSessionSocketReceivesEvents(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, err := dial(t, srv, "/v1/ws/sessions/s1?token=good")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if msg := readMessage(t, conn); msg.Type != MsgConnected {
		t.Fatalf("expected connected message, got %s", msg.Type)
	}

	hub.BroadcastToSession("other", "evaluation_result", map[string]int{"n": 0})
	hub.BroadcastToSession("s1", "evaluation_pending", map[string]int{"levelNumber": 1})

	msg := readMessage(t, conn)
	if msg.Type != "evaluation_pending" || !strings.Contains(string(msg.Payload), `"levelNumber":1`) {
		t.Errorf("unexpected message %s %s", msg.Type, msg.Payload)
	}
}

func TestSessionSocketRejectsBadToken(t *testing.T) {
	_, srv := newTestServer(t)

	if _, err := dial(t, srv, "/v1/ws/sessions/s1?token=bad"); err == nil {
		t.Error("expected handshake to fail with a bad token")
	}
	if _, err := dial(t, srv, "/v1/ws/sessions/s1"); err == nil {
		t.Error("expected handshake to fail without a token")
	}
}

func TestDisconnectSession(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, err := dial(t, srv, "/v1/ws/sessions/s1?token=good")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	readMessage(t, conn)

	hub.DisconnectSession("s1")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the socket to be closed")
	}
	if hub.Count("s1") != 0 {
		t.Errorf("expected no sockets left, got %d", hub.Count("s1"))
	}
}

func TestHelloCarriesSessionID(t *testing.T) {
	_, srv := newTestServer(t)

	conn, err := dial(t, srv, "/v1/ws/sessions/s%221?token=good")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	msg := readMessage(t, conn)
	if msg.Type != MsgConnected {
		t.Fatalf("expected connected message, got %s", msg.Type)
	}
	var hello struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(msg.Payload, &hello); err != nil {
		t.Fatalf("hello payload is not JSON: %v", err)
	}
	if hello.SessionID != `s"1` {
		t.Errorf("expected session id s\"1, got %q", hello.SessionID)
	}
}

func TestConnectWhileDisconnecting(t *testing.T) {
	hub, srv := newTestServer(t)

	for i := 0; i < 20; i++ {
		conn, err := dial(t, srv, "/v1/ws/sessions/s1?token=good")
		if err != nil {
			t.Fatal(err)
		}
		// the hello is written only after the socket is registered
		readMessage(t, conn)
		hub.DisconnectSession("s1")

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		conn.Close()
	}
	if hub.Count("s1") != 0 {
		t.Errorf("expected no sockets left, got %d", hub.Count("s1"))
	}
}
