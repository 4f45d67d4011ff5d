package game

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrUnknownPlayer = errors.New("player is not in this room")
	ErrInvalidState  = errors.New("operation is not valid for current room status")
	ErrNoQuestions   = errors.New("no questions available for this game type")
	ErrNoFreeCodes   = errors.New("no free room codes available")
)
