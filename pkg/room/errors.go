package room

import "errors"

// ErrRoomNotFound happens when the room does not exist
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomFull happens when a player tries to join a room at capacity
var ErrRoomFull = errors.New("room is full")

// ErrIncorrectPasscode happens when the supplied passcode does not match
var ErrIncorrectPasscode = errors.New("incorrect passcode")

// ErrNotInRoom happens when the player is not a member of the room
var ErrNotInRoom = errors.New("you are not in this room")

// ErrHandInProgress happens when a hand is started while one is being played
var ErrHandInProgress = errors.New("a hand is already in progress")

// ErrNoActiveHand happens when a game action arrives while the room is waiting
var ErrNoActiveHand = errors.New("no active hand")
