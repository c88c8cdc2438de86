package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	"pineapple-server/internal/jwt"
	"pineapple-server/pkg/history"
	"pineapple-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
	ctxDealerKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	recaptcha recaptcha
	lobby     *room.Lobby
	recorder  history.Recorder

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, lobby *room.Lobby, recorder history.Recorder) *Mux {
	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		recaptcha: newRecaptcha(),
		lobby:     lobby,
		recorder:  recorder,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodGet).Path("/player/auth/{jwt:.*}").Handler(this.getPlayerAuthJWT())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
		r.Methods(http.MethodGet).Path("/leaderboard").Handler(this.getLeaderboard())

		rr := r.PathPrefix("/room/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		rr.Use(this.roomMiddleware)

		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomUUID())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomUUIDWS())
		rr.Methods(http.MethodGet).Path("/player").Handler(this.getRoomUUIDPlayer())
		rr.Methods(http.MethodGet).Path("/history").Handler(this.getRoomUUIDHistory())
		rr.Methods(http.MethodPost).Path("/join").Handler(this.postRoomUUIDJoin())
		rr.Methods(http.MethodPost).Path("/leave").Handler(this.postRoomUUIDLeave())
		rr.Methods(http.MethodPost).Path("/start").Handler(this.postRoomUUIDStart())
		rr.Methods(http.MethodPost).Path("/submit").Handler(this.postRoomUUIDSubmit())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, playerID)
		w.Header().Set("Pineapple-PlayerID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.lobby.Dealer(gmux.Vars(r)["uuid"])
		if err != nil {
			writeGameError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
