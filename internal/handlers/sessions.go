package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/render"
	"github.com/aaronzipp/snakesss/internal/sse"
)

// QRCodeSize is the edge length of session QR codes in pixels
const QRCodeSize = 256

type createSessionRequest struct {
	Players []string `json:"players"`
}

type sessionList struct {
	Codes []string `json:"codes"`
}

// HandleCreateSession seats the players, starts the first round and
// returns the new session's view
func (ctx *Context) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	players, err := game.NewPlayers(req.Players)
	if err != nil {
		writeError(w, err)
		return
	}

	hub := sse.NewHub()
	var recorder game.Recorder
	if ctx.History != nil {
		recorder = ctx.History
	}
	session, err := game.New(players, ctx.Settings.Settings(), game.Options{
		Roles:     ctx.Roles,
		Questions: ctx.Questions,
		Notifier:  sse.Notifier{Hub: hub},
		Recorder:  recorder,
		TimeUnit:  ctx.TimeUnit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	room := &Room{Session: session, Hub: hub}
	code := ctx.Rooms.Add(room)

	if err := session.StartRound(); err != nil {
		ctx.Rooms.Delete(code)
		room.Close()
		writeError(w, err)
		return
	}

	log.Info().Str("code", code).Int("players", len(players)).Msg("session created")
	writeJSON(w, http.StatusCreated, ctx.view(code, room))
}

// HandleListSessions lists the codes of every live session
func (ctx *Context) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionList{Codes: ctx.Rooms.Codes()})
}

// HandleGetSession returns the current view of a session
func (ctx *Context) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	code, room, err := ctx.room(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctx.view(code, room))
}

// HandleDeleteSession ends a session and disconnects its streams
func (ctx *Context) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	code := roomCode(r)
	room, ok := ctx.Rooms.Delete(code)
	if !ok {
		writeError(w, errSessionNotFound)
		return
	}
	room.Close()

	log.Info().Str("code", code).Msg("session closed")
	w.WriteHeader(http.StatusNoContent)
}

// HandleQRCode serves a PNG linking to the session so a second screen can follow along
func (ctx *Context) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	code, _, err := ctx.room(r)
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := qrcode.Encode(ctx.sessionURL(r, code), qrcode.Medium, QRCodeSize)
	if err != nil {
		writeError(w, fmt.Errorf("encoding qr code: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to write qr code")
	}
}

func (ctx *Context) sessionURL(r *http.Request, code string) string {
	base := strings.TrimRight(ctx.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/sessions/" + code
}

func roomCode(r *http.Request) string {
	return strings.ToUpper(mux.Vars(r)["code"])
}

func (ctx *Context) room(r *http.Request) (string, *Room, error) {
	code := roomCode(r)
	room, ok := ctx.Rooms.Get(code)
	if !ok {
		return code, nil, fmt.Errorf("%w: %s", errSessionNotFound, code)
	}
	return code, room, nil
}

func (ctx *Context) view(code string, room *Room) render.SessionView {
	return render.Session(code, room.Session.Snapshot(), ctx.Settings.Settings())
}
