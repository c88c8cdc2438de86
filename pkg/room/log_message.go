package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is a line in the room activity feed
type LogMessage struct {
	UUID     string    `json:"uuid"`
	PlayerID string    `json:"playerId,omitempty"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

func newLogMessage(playerID, format string, args ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:     uuid.New().String(),
		PlayerID: playerID,
		Message:  fmt.Sprintf(format, args...),
		Time:     time.Now(),
	}
}

// addLogMessage appends to the activity feed, keeping only the most
// recent messages
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessage(message *LogMessage) {
	m := append(d.logMessages, message)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
