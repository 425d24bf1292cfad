package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/sse"
	"github.com/aaronzipp/snakesss/internal/store"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// Room is one live session and the event hub its devices listen on
type Room struct {
	Session *game.Session
	Hub     *sse.Hub
}

// Close stops the countdown and disconnects every stream
func (r *Room) Close() {
	r.Session.Close()
	r.Hub.Close()
}

// HistoryStore records finished games and lists them back
type HistoryStore interface {
	game.Recorder
	Recent(ctx context.Context, limit int) ([]store.GameRecord, error)
	Get(ctx context.Context, id uint) (store.GameRecord, error)
}

// Context holds dependencies for HTTP handlers
type Context struct {
	Rooms     *store.Registry[*Room]
	Questions *game.QuestionPool
	Settings  *config.Manager
	History   HistoryStore

	// PublicURL prefixes the link encoded in session QR codes. When empty
	// the request's host is used.
	PublicURL string

	// Roles and TimeUnit are handed to every new session; zero values
	// mean shuffled roles and real seconds.
	Roles    game.RoleAssigner
	TimeUnit time.Duration
}

// Routes builds the router for every endpoint
func (ctx *Context) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/sessions", ctx.HandleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions", ctx.HandleListSessions).Methods(http.MethodGet)

	s := r.PathPrefix("/sessions/{code}").Subrouter()
	s.HandleFunc("", ctx.HandleGetSession).Methods(http.MethodGet)
	s.HandleFunc("", ctx.HandleDeleteSession).Methods(http.MethodDelete)
	s.HandleFunc("/events", ctx.HandleSSE).Methods(http.MethodGet)
	s.HandleFunc("/qr", ctx.HandleQRCode).Methods(http.MethodGet)
	s.HandleFunc("/roles/{index:[0-9]+}/next", ctx.transition(revealNextRole)).Methods(http.MethodPost)
	s.HandleFunc("/question", ctx.transition(showQuestion)).Methods(http.MethodPost)
	s.HandleFunc("/snakes/start", ctx.transition(startSnakeReveal)).Methods(http.MethodPost)
	s.HandleFunc("/snakes/{index:[0-9]+}/next", ctx.transition(revealNextSnake)).Methods(http.MethodPost)
	s.HandleFunc("/discussion/skip", ctx.transition(skipDiscussion)).Methods(http.MethodPost)
	s.HandleFunc("/votes/{index:[0-9]+}", ctx.transition(submitVote)).Methods(http.MethodPost)
	s.HandleFunc("/next-round", ctx.transition(nextRound)).Methods(http.MethodPost)

	r.HandleFunc("/settings", ctx.HandleGetSettings).Methods(http.MethodGet)
	r.HandleFunc("/settings", ctx.HandleUpdateSettings).Methods(http.MethodPut)
	r.HandleFunc("/settings/reset", ctx.HandleResetSettings).Methods(http.MethodPost)

	r.HandleFunc("/questions/remaining", ctx.HandleQuestionsRemaining).Methods(http.MethodGet)
	r.HandleFunc("/questions/reset", ctx.HandleQuestionsReset).Methods(http.MethodPost)

	r.HandleFunc("/history", ctx.HandleHistory).Methods(http.MethodGet)
	r.HandleFunc("/history/{id:[0-9]+}", ctx.HandleHistoryEntry).Methods(http.MethodGet)

	return r
}

// CloseAll ends every live session, used on shutdown
func (ctx *Context) CloseAll() {
	for _, code := range ctx.Rooms.Codes() {
		if room, ok := ctx.Rooms.Delete(code); ok {
			room.Close()
		}
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if debug {
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("took", time.Since(start)).
				Msg("request")
		}
	})
}
