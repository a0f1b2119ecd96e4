package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

// ClientMessage is a command sent by a player over the socket.
type ClientMessage struct {
	Type          string              `json:"type"`
	Option        *int                `json:"option,omitempty"`
	Name          string              `json:"name,omitempty"`
	PlayerID      string              `json:"playerId,omitempty"`
	Enabled       *bool               `json:"enabled,omitempty"`
	Difficulty    geoguess.Difficulty `json:"difficulty,omitempty"`
	QuestionCount int                 `json:"questionCount,omitempty"`
}

// Command maps the message to an engine command.
func (m ClientMessage) Command() (engine.Command, error) {
	switch m.Type {
	case "initialize":
		s := geoguess.Settings{Difficulty: m.Difficulty, QuestionCount: m.QuestionCount}
		if err := validateSettings(s); err != nil {
			return nil, err
		}
		return engine.InitializeGame{Settings: s}, nil
	case "setup":
		return engine.OpenSetup{}, nil
	case "back":
		return engine.BackToStart{}, nil
	case "startRound":
		return engine.StartRound{}, nil
	case "answer":
		if m.Option == nil {
			return nil, errors.New("option is required")
		}
		if *m.Option < 0 || *m.Option >= geoguess.OptionCount {
			return nil, fmt.Errorf("option must be between 0 and %d", geoguess.OptionCount-1)
		}
		return engine.SelectAnswer{Option: *m.Option}, nil
	case "reset":
		return engine.Reset{}, nil
	case "addPlayer":
		return engine.AddPlayer{Name: m.Name}, nil
	case "removePlayer":
		return engine.RemovePlayer{ID: m.PlayerID}, nil
	case "collaborative", "teamMode":
		if m.Enabled == nil {
			return nil, errors.New("enabled is required")
		}
		if m.Type == "teamMode" {
			return engine.SetTeamMode{Enabled: *m.Enabled}, nil
		}
		return engine.SetCollaborativeMode{Enabled: *m.Enabled}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", m.Type)
}

// handleWS pushes session events to the client and applies the commands it
// sends. Rejected commands are answered with an error event on the same
// socket only.
func handleWS(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 4*time.Hour)
		defer cancel()

		ch := broker.Subscribe(sess.ID())
		defer broker.Unsubscribe(sess.ID(), ch)

		if err := wsjson.Write(ctx, conn, stateEvent(sess.ID(), sess.Snapshot())); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		go func() {
			defer cancel()
			for {
				var msg ClientMessage
				if err := wsjson.Read(ctx, conn, &msg); err != nil {
					logger.Debug("websocket read ended", "session_id", sess.ID(), "error", err)
					return
				}

				cmd, err := msg.Command()
				if err != nil {
					_ = wsjson.Write(ctx, conn, Event{Type: eventError, Error: err.Error()})
					continue
				}
				if snap, applied := sess.Do(cmd); !applied {
					_ = wsjson.Write(ctx, conn, Event{
						Type:  eventError,
						Error: fmt.Sprintf("%s ignored during %s", msg.Type, snap.Phase),
					})
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-ch:
				if !ok {
					conn.Close(websocket.StatusNormalClosure, "session ended")
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "session_id", sess.ID(), "error", err)
					return
				}
			}
		}
	}
}
