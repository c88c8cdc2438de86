package mux

import (
	"errors"
	"net/http"
	"regexp"

	gmux "github.com/gorilla/mux"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pineapple-server/internal/jwt"
	"pineapple-server/internal/util"
)

type playerPayload struct {
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}

type postPlayerResponse struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	JWT         string `json:"jwt"`
}

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{0,40}\z`)
var statusOK = map[string]string{
	"status": "OK",
}

// postPlayer hands out a player identity. There's no account behind
// it, the signed player ID is the whole identity.
func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp playerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if err := m.recaptcha.Verify(pp.Token); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if !validDisplayNameRx.MatchString(pp.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		displayName := pp.DisplayName
		if displayName == "" {
			displayName = util.RandomDisplayName()
		}

		playerID := uuid.New().String()
		signedToken, err := jwt.Sign(playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"playerId":   playerID,
			"remoteAddr": remoteAddr(r),
		}).Info("player identity issued")

		writeJSON(w, http.StatusCreated, postPlayerResponse{
			PlayerID:    playerID,
			DisplayName: displayName,
			JWT:         signedToken,
		})
	}
}

type playerAuthResponse struct {
	PlayerID string `json:"playerId"`
}

// getPlayerAuthJWT lets a client check whether a stored token is
// still good
func (m *Mux) getPlayerAuthJWT() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signedToken := gmux.Vars(r)["jwt"]
		playerID, err := jwt.ValidPlayerID(signedToken)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, err)
			return
		}

		writeJSON(w, http.StatusOK, playerAuthResponse{PlayerID: playerID})
	}
}
