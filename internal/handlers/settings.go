package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/models"
	"github.com/aaronzipp/snakesss/internal/store"
)

// DefaultHistoryLimit caps GET /history when no limit is given
const DefaultHistoryLimit = 20

type questionCounts struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// HistoryEntry is a stored game as served over HTTP
type HistoryEntry struct {
	ID uint `json:"id"`
	models.GameRecord
}

// HandleGetSettings returns the live settings
func (ctx *Context) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ctx.Settings.Settings())
}

// HandleUpdateSettings merges the body over the live settings. Values
// outside their option sets are rejected. Running sessions keep the
// round count and timer they started with.
func (ctx *Context) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	next := ctx.Settings.Settings()
	if err := decodeJSON(r, &next); err != nil {
		writeError(w, err)
		return
	}
	if err := next.Validate(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	saved, err := ctx.Settings.Update(func(s *config.Settings) { *s = next })
	if err != nil {
		writeError(w, fmt.Errorf("saving settings: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleResetSettings restores the factory settings
func (ctx *Context) HandleResetSettings(w http.ResponseWriter, r *http.Request) {
	saved, err := ctx.Settings.Reset()
	if err != nil {
		writeError(w, fmt.Errorf("saving settings: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleQuestionsRemaining reports how many unused questions match the settings
func (ctx *Context) HandleQuestionsRemaining(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ctx.questionCounts())
}

// HandleQuestionsReset forgets which questions were asked
func (ctx *Context) HandleQuestionsReset(w http.ResponseWriter, r *http.Request) {
	ctx.Questions.ResetPool()
	writeJSON(w, http.StatusOK, ctx.questionCounts())
}

func (ctx *Context) questionCounts() questionCounts {
	return questionCounts{
		Remaining: ctx.Questions.RemainingCount(),
		Total:     ctx.Questions.Size(),
	}
}

// HandleHistory lists finished games, newest first
func (ctx *Context) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, fmt.Errorf("%w: limit must be a positive number", errBadRequest))
			return
		}
		limit = n
	}

	entries := []HistoryEntry{}
	if ctx.History != nil {
		records, err := ctx.History.Recent(r.Context(), limit)
		if err != nil {
			writeError(w, fmt.Errorf("loading history: %w", err))
			return
		}
		for _, rec := range records {
			entries = append(entries, historyEntry(rec))
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleHistoryEntry returns one finished game
func (ctx *Context) HandleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, fmt.Errorf("%w: bad id", errBadRequest))
		return
	}
	rec, err := ctx.historyGet(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyEntry(rec))
}

func (ctx *Context) historyGet(c context.Context, id uint) (store.GameRecord, error) {
	if ctx.History == nil {
		return store.GameRecord{}, errHistoryNotFound
	}
	rec, err := ctx.History.Get(c, id)
	if errors.Is(err, store.ErrNotFound) {
		return rec, errHistoryNotFound
	}
	return rec, err
}

func historyEntry(rec store.GameRecord) HistoryEntry {
	return HistoryEntry{ID: rec.ID, GameRecord: rec.Model()}
}
