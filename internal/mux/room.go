package mux

import (
	"errors"
	"net/http"
	"regexp"

	"pineapple-server/internal/util"
	"pineapple-server/pkg/pineapple"
	"pineapple-server/pkg/room"
)

type postRoomPayload struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postRoomPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		rm, err := m.lobby.CreateRoom(pp.Name, pp.Passcode)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, rm.State())
	}
}

func (m *Mux) getRoomUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		writeJSON(w, http.StatusOK, dealer.Room().State())
	})
}

type postJoinPayload struct {
	DisplayName string `json:"displayName"`
	Passcode    string `json:"passcode"`
}

func (m *Mux) postRoomUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(string)
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		var pp postJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		displayName := pp.DisplayName
		if displayName == "" {
			displayName = util.RandomDisplayName()
		} else if !validDisplayNameRx.MatchString(displayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		if err := dealer.Join(playerID, displayName, pp.Passcode); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, dealer.Room().State())
	})
}

func (m *Mux) postRoomUUIDLeave() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(string)
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		if err := dealer.Leave(playerID); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	})
}

func (m *Mux) postRoomUUIDStart() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(string)
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		if err := dealer.StartRound(playerID); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dealer.Room().State())
	})
}

func (m *Mux) postRoomUUIDSubmit() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(string)
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		var batch pineapple.Batch
		if !decodeRequest(w, r, &batch) {
			return
		}

		if err := dealer.Submit(playerID, &batch); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	})
}

func (m *Mux) getRoomUUIDPlayer() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(string)
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		state, err := dealer.Room().PlayerState(playerID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	})
}

func (m *Mux) getRoomUUIDHistory() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		rows, err := parseRows(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		hands, err := m.recorder.RecentHands(r.Context(), dealer.Room().ID, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, hands)
	})
}

func (m *Mux) getLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := parseRows(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		entries, err := m.recorder.Leaderboard(r.Context(), rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
