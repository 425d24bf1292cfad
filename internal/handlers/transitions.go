package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/models"
	"github.com/aaronzipp/snakesss/internal/sse"
)

type action func(r *http.Request, s *game.Session) error

type voteRequest struct {
	Vote string `json:"vote"`
}

// transition wraps an action with the room lookup and responds with the
// session view after the call
func (ctx *Context) transition(do action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, room, err := ctx.room(r)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := do(r, room.Session); err != nil {
			if errors.Is(err, game.ErrNoQuestions) {
				room.Hub.BroadcastJSON(sse.EventErrorMessage, errorBody{Error: err.Error()})
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ctx.view(code, room))
	}
}

func pathIndex(r *http.Request) (int, error) {
	i, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, fmt.Errorf("%w: bad index", errBadRequest)
	}
	return i, nil
}

func revealNextRole(r *http.Request, s *game.Session) error {
	i, err := pathIndex(r)
	if err != nil {
		return err
	}
	return s.RevealNextRole(i)
}

func showQuestion(_ *http.Request, s *game.Session) error {
	return s.ShowQuestion()
}

func startSnakeReveal(_ *http.Request, s *game.Session) error {
	return s.StartSnakeReveal()
}

func revealNextSnake(r *http.Request, s *game.Session) error {
	i, err := pathIndex(r)
	if err != nil {
		return err
	}
	return s.RevealNextSnake(i)
}

func skipDiscussion(_ *http.Request, s *game.Session) error {
	return s.SkipDiscussion()
}

func submitVote(r *http.Request, s *game.Session) error {
	i, err := pathIndex(r)
	if err != nil {
		return err
	}
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	vote, ok := models.ParseVote(req.Vote)
	if !ok {
		return fmt.Errorf("%w: unknown vote %q", errBadRequest, req.Vote)
	}
	return s.SubmitVote(vote, i)
}

// nextRound treats a failure to record the finished game as logged, not
// fatal: the session has ended either way
func nextRound(r *http.Request, s *game.Session) error {
	err := s.NextRound(r.Context())
	if err != nil && s.Phase().Kind == models.PhaseGameEnd && !errors.Is(err, game.ErrWrongPhase) {
		log.Warn().Err(err).Msg("game ended without a history entry")
		return nil
	}
	return err
}
