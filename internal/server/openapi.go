package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/geoguess/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type playerPath struct {
	ID       string `path:"id"`
	PlayerID string `path:"playerID"`
}

type settingsBody struct {
	sessionPath
	SettingsRequest
}

type answerBody struct {
	sessionPath
	AnswerRequest
}

type addPlayerBody struct {
	sessionPath
	AddPlayerRequest
}

type toggleBody struct {
	sessionPath
	ToggleRequest
}

type operation struct {
	method      string
	path        string
	summary     string
	description string
	req         any
	resp        any
	status      int
	also        []int // statuses that reuse resp
	errors      []int
	contentType string
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Geo-Guess API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Timed photo-location quiz sessions with solo and team play.")

	command := func(path, summary, description string, req any) operation {
		if req == nil {
			req = sessionPath{}
		}
		return operation{
			method:      http.MethodPost,
			path:        path,
			summary:     summary,
			description: description,
			req:         req,
			resp:        StateResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		}
	}

	ops := []operation{
		{
			method:      http.MethodGet,
			path:        "/healthz",
			summary:     "Health check",
			description: "Returns the health of backend dependencies and the number of live sessions.",
			resp:        health.Response{},
			status:      http.StatusOK,
			also:        []int{http.StatusServiceUnavailable},
		},
		{
			method:      http.MethodGet,
			path:        "/api/questions/summary",
			summary:     "Question bank summary",
			description: "Counts the questions in the bank per difficulty.",
			resp:        QuestionSummaryResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusInternalServerError},
		},
		{
			method:      http.MethodPost,
			path:        "/api/sessions",
			summary:     "Create session",
			description: "Starts a new game. A seed phrase makes the question order reproducible.",
			req:         CreateSessionRequest{},
			resp:        CreateSessionResponse{},
			status:      http.StatusCreated,
			errors:      []int{http.StatusBadRequest},
		},
		{
			method:      http.MethodGet,
			path:        "/api/sessions/{id}",
			summary:     "Get session state",
			description: "Returns the current state. The answer is hidden while the question is live.",
			req:         sessionPath{},
			resp:        StateResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusNotFound},
		},
		{
			method:      http.MethodDelete,
			path:        "/api/sessions/{id}",
			summary:     "End session",
			description: "Stops the session's timers and disconnects live subscribers.",
			req:         sessionPath{},
			status:      http.StatusNoContent,
			errors:      []int{http.StatusNotFound},
		},
		command("/api/sessions/{id}/initialize", "Initialize game",
			"Filters the question pool by difficulty and count and resets the game.", settingsBody{}),
		command("/api/sessions/{id}/setup", "Open team setup", "Moves from start to team setup.", nil),
		command("/api/sessions/{id}/back", "Back to start", "Leaves team setup.", nil),
		command("/api/sessions/{id}/rounds", "Start round",
			"Draws the next question and starts the countdown. Finishes the game when the pool is empty.", nil),
		command("/api/sessions/{id}/answer", "Submit answer",
			"Locks the selected option for the live question and scores it.", answerBody{}),
		command("/api/sessions/{id}/reset", "Reset game",
			"Returns every counter, the pool and the roster to their initial state.", nil),
		{
			method:      http.MethodPost,
			path:        "/api/sessions/{id}/players",
			summary:     "Add player",
			description: "Adds a player to the roster with a random avatar.",
			req:         addPlayerBody{},
			resp:        AddPlayerResponse{},
			status:      http.StatusCreated,
			errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		},
		{
			method:      http.MethodDelete,
			path:        "/api/sessions/{id}/players/{playerID}",
			summary:     "Remove player",
			description: "Removes a player from the roster. Only allowed before play starts.",
			req:         playerPath{},
			resp:        StateResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusNotFound, http.StatusConflict},
		},
		{
			method:      http.MethodPut,
			path:        "/api/sessions/{id}/collaborative",
			summary:     "Set collaborative mode",
			description: "Collaborative teams answer together and share one streak. Only before play starts.",
			req:         toggleBody{},
			resp:        StateResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		},
		{
			method:      http.MethodPut,
			path:        "/api/sessions/{id}/team-mode",
			summary:     "Set team mode",
			description: "Switches between solo and team scoring. Only before play starts.",
			req:         toggleBody{},
			resp:        StateResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
		},
		{
			method:      http.MethodGet,
			path:        "/api/sessions/{id}/results",
			summary:     "Final results",
			description: "Score, performance tier, leaderboard and share text of a finished game.",
			req:         sessionPath{},
			resp:        ResultsResponse{},
			status:      http.StatusOK,
			errors:      []int{http.StatusNotFound, http.StatusConflict},
		},
		{
			method:      http.MethodGet,
			path:        "/api/sessions/{id}/events",
			summary:     "SSE event stream",
			description: "Server-Sent Events carrying every state change of the session.",
			req:         sessionPath{},
			status:      http.StatusOK,
			contentType: "text/event-stream",
		},
		{
			method:      http.MethodGet,
			path:        "/api/sessions/{id}/ws",
			summary:     "WebSocket",
			description: "Pushes state events and accepts commands as JSON messages.",
			req:         sessionPath{},
			status:      http.StatusSwitchingProtocols,
			contentType: "text/plain",
		},
	}

	for _, op := range ops {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		oc.SetDescription(op.description)
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		if op.contentType != "" {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(op.status), openapi.WithContentType(op.contentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status))
		}
		for _, status := range op.also {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status))
		}
		for _, status := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
