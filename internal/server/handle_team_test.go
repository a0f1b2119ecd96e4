package server

import (
	"net/http"
	"testing"

	"github.com/playperu/geoguess/internal/geoguess"
)

func TestTeamSetup(t *testing.T) {
	api := newTestAPI(t, testRules(), "")
	id := api.create(t, CreateSessionRequest{}).SessionID
	base := "/api/sessions/" + id

	// No players yet: the first round cannot start from setup.
	api.do(t, http.MethodPost, base+"/setup", nil)
	w := api.do(t, http.MethodPost, base+"/rounds", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 with empty roster, got %d", w.Code)
	}

	var ids []string
	for _, name := range []string{"Ana", " Luis "} {
		w := api.do(t, http.MethodPost, base+"/players", AddPlayerRequest{Name: name})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[AddPlayerResponse](t, w)
		if resp.Player.ID == "" || resp.Player.Avatar == "" {
			t.Errorf("player = %+v", resp.Player)
		}
		ids = append(ids, resp.Player.ID)
	}

	w = api.do(t, http.MethodPost, base+"/players", AddPlayerRequest{Name: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: expected 400, got %d", w.Code)
	}

	w = api.do(t, http.MethodPost, base+"/rounds", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	state := decode[StateResponse](t, w)
	if !state.TeamMode || state.CurrentPlayerID != ids[0] {
		t.Errorf("team mode %v, current %q, want true and %q", state.TeamMode, state.CurrentPlayerID, ids[0])
	}
	if len(state.Players) != 2 || state.Players[1].Name != "Luis" {
		t.Errorf("players = %+v", state.Players)
	}

	// Ana scores for the team, then the turn passes to Luis.
	correct := api.liveAnswer(t, id)
	api.do(t, http.MethodPost, base+"/answer", AnswerRequest{Option: &correct})
	state = api.waitForPhase(t, id, geoguess.PhaseWaiting)
	if state.CurrentPlayerID != ids[1] {
		t.Errorf("current = %q, want %q", state.CurrentPlayerID, ids[1])
	}
	if state.Team.TotalScore != 100 || state.Players[0].Score != 100 {
		t.Errorf("team %+v, Ana %+v", state.Team, state.Players[0])
	}

	// Modes are fixed once play has started.
	w = api.do(t, http.MethodPut, base+"/team-mode", map[string]bool{"enabled": false})
	if w.Code != http.StatusConflict {
		t.Errorf("team-mode mid-game: expected 409, got %d", w.Code)
	}

	// The roster is fixed once play has started.
	w = api.do(t, http.MethodDelete, base+"/players/"+ids[0], nil)
	if w.Code != http.StatusConflict {
		t.Errorf("remove mid-game: expected 409, got %d", w.Code)
	}
	w = api.do(t, http.MethodPost, base+"/players", AddPlayerRequest{Name: "Eva"})
	if w.Code != http.StatusConflict {
		t.Errorf("add mid-game: expected 409, got %d", w.Code)
	}
	if e := decode[ErrorResponse](t, w); e.Error != "cannot add players during waiting" {
		t.Errorf("error = %q", e.Error)
	}
	w = api.do(t, http.MethodDelete, base+"/players/nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown player: expected 404, got %d", w.Code)
	}
}

func TestRemovePlayerInSetup(t *testing.T) {
	api := newTestAPI(t, testRules(), "")
	id := api.create(t, CreateSessionRequest{}).SessionID
	base := "/api/sessions/" + id

	api.do(t, http.MethodPost, base+"/setup", nil)
	w := api.do(t, http.MethodPost, base+"/players", AddPlayerRequest{Name: "Ana"})
	player := decode[AddPlayerResponse](t, w).Player

	w = api.do(t, http.MethodDelete, base+"/players/"+player.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if state := decode[StateResponse](t, w); len(state.Players) != 0 {
		t.Errorf("players = %+v, want none", state.Players)
	}

	w = api.do(t, http.MethodDelete, base+"/players/"+player.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second removal: expected 404, got %d", w.Code)
	}
}

func TestCollaborativeToggle(t *testing.T) {
	api := newTestAPI(t, testRules(), "")
	id := api.create(t, CreateSessionRequest{}).SessionID
	path := "/api/sessions/" + id + "/collaborative"

	for range 2 {
		w := api.do(t, http.MethodPut, path, map[string]bool{"enabled": true})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if state := decode[StateResponse](t, w); !state.CollaborativeMode {
			t.Error("collaborative mode not enabled")
		}
	}

	w := api.do(t, http.MethodPut, path, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing enabled: expected 400, got %d", w.Code)
	}
}

func TestTeamFull(t *testing.T) {
	rules := testRules()
	rules.MaxTeamSize = 2
	api := newTestAPI(t, rules, "")
	id := api.create(t, CreateSessionRequest{}).SessionID
	path := "/api/sessions/" + id + "/players"

	for _, name := range []string{"A", "B"} {
		if w := api.do(t, http.MethodPost, path, AddPlayerRequest{Name: name}); w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	}
	w := api.do(t, http.MethodPost, path, AddPlayerRequest{Name: "C"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}
