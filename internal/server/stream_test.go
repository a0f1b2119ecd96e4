package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/geoguess/internal/geoguess"
)

func TestEventStream(t *testing.T) {
	api := newTestAPI(t, testRules(), "")
	srv := httptest.NewServer(api.handler)
	t.Cleanup(srv.Close)
	id := api.create(t, CreateSessionRequest{}).SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/sessions/"+id+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content-type = %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	lines.Buffer(make([]byte, 0, 64*1024), 1<<20)
	next := func() Event {
		t.Helper()
		for lines.Scan() {
			data, ok := strings.CutPrefix(lines.Text(), "data: ")
			if !ok {
				continue
			}
			var ev Event
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				t.Fatalf("decoding event: %v", err)
			}
			return ev
		}
		t.Fatalf("stream ended: %v", lines.Err())
		return Event{}
	}

	if ev := next(); ev.Type != eventState || ev.State.Phase != geoguess.PhaseStart {
		t.Fatalf("initial event = %+v", ev)
	}

	api.do(t, http.MethodPost, "/api/sessions/"+id+"/rounds", nil)
	ev := next()
	if ev.Type != eventState || ev.State.Phase != geoguess.PhaseQuestion {
		t.Fatalf("round event = %+v", ev)
	}
	if ev.State.Question == nil || ev.State.Question.AnswerIndex != nil {
		t.Error("live question must hide its answer")
	}

	api.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	if ev := next(); ev.Type != eventEnded {
		t.Errorf("final event = %+v, want ended", ev)
	}
	for lines.Scan() {
	}
}

func TestWebSocket(t *testing.T) {
	api := newTestAPI(t, testRules(), "")
	srv := httptest.NewServer(api.handler)
	t.Cleanup(srv.Close)
	id := api.create(t, CreateSessionRequest{}).SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/sessions/" + id + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	read := func() Event {
		t.Helper()
		var ev Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		return ev
	}
	send := func(msg ClientMessage) {
		t.Helper()
		if err := wsjson.Write(ctx, conn, msg); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if ev := read(); ev.Type != eventState || ev.State.Phase != geoguess.PhaseStart {
		t.Fatalf("initial event = %+v", ev)
	}

	send(ClientMessage{Type: "startRound"})
	if ev := read(); ev.Type != eventState || ev.State.Phase != geoguess.PhaseQuestion {
		t.Fatalf("after startRound = %+v", ev)
	}

	outOfRange := geoguess.OptionCount
	tests := []struct {
		name string
		msg  ClientMessage
		want string
	}{
		{"missing option", ClientMessage{Type: "answer"}, "option is required"},
		{"option out of range", ClientMessage{Type: "answer", Option: &outOfRange}, "option must be between 0 and 3"},
		{"unknown type", ClientMessage{Type: "dance"}, `unknown message type "dance"`},
		{"wrong phase", ClientMessage{Type: "setup"}, "setup ignored during question"},
	}
	for _, tt := range tests {
		send(tt.msg)
		if ev := read(); ev.Type != eventError || ev.Error != tt.want {
			t.Errorf("%s: event = %+v, want error %q", tt.name, ev, tt.want)
		}
	}

	api.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	if ev := read(); ev.Type != eventEnded {
		t.Fatalf("event = %+v, want ended", ev)
	}
	_, _, err = conn.Read(ctx)
	if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure {
		t.Errorf("close status = %v (%v), want normal closure", status, err)
	}
}

func TestClientMessageCommand(t *testing.T) {
	on := true
	tooHigh, negative, valid := geoguess.OptionCount, -1, 2
	tests := []struct {
		msg     ClientMessage
		wantErr bool
	}{
		{ClientMessage{Type: "initialize", Difficulty: geoguess.DifficultyHard, QuestionCount: 5}, false},
		{ClientMessage{Type: "initialize", Difficulty: "extreme"}, true},
		{ClientMessage{Type: "initialize", QuestionCount: -1}, true},
		{ClientMessage{Type: "addPlayer", Name: "Ana"}, false},
		{ClientMessage{Type: "removePlayer", PlayerID: "p1"}, false},
		{ClientMessage{Type: "teamMode", Enabled: &on}, false},
		{ClientMessage{Type: "collaborative"}, true},
		{ClientMessage{Type: "reset"}, false},
		{ClientMessage{Type: "answer", Option: &valid}, false},
		{ClientMessage{Type: "answer", Option: &tooHigh}, true},
		{ClientMessage{Type: "answer", Option: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.msg.Type, func(t *testing.T) {
			cmd, err := tt.msg.Command()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cmd == nil {
				t.Error("nil command")
			}
		})
	}
}
