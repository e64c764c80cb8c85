package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room already exists")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidName     = errors.New("invalid room name")
	ErrWrongPassword   = errors.New("wrong password")
	ErrNotAuthor       = errors.New("not the message author")
	ErrNotPlayer       = errors.New("not a player in this game")
	ErrGameOver        = errors.New("game already over")
	ErrNotInRoom       = errors.New("connection is not in a room")
	ErrInvalidInput    = errors.New("invalid input")
)
