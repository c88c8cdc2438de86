package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"pineapple-server/pkg/pineapple"
	"pineapple-server/pkg/room"
)

const maxRows = 100
const defaultRows = 20

func parseRows(r *http.Request) (int, error) {
	rows := defaultRows

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return 0, err
		}

		if val <= 0 {
			return 0, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return rows, nil
}

func remoteAddr(r *http.Request) string {
	parts := strings.Split(r.RemoteAddr, ":")
	if len(parts) == 1 {
		return parts[0]
	}

	return strings.Join(parts[0:len(parts)-1], ":")
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeGameError maps the room and game errors onto HTTP statuses
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrNoActiveHand):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.Is(err, room.ErrIncorrectPasscode),
		errors.Is(err, room.ErrNotInRoom),
		errors.Is(err, pineapple.ErrPlayerNotFound):
		writeJSONError(w, http.StatusForbidden, err)
	case errors.Is(err, room.ErrRoomFull), errors.Is(err, room.ErrHandInProgress):
		writeJSONError(w, http.StatusConflict, err)
	default:
		writeJSONError(w, http.StatusBadRequest, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
