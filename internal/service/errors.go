package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbiddenRole      = errors.New("unauthorized user role")

	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("game state not found")
	ErrPuzzleNotFound  = errors.New("puzzle not found")
	ErrLevelNotFound   = errors.New("invalid level number")
	ErrGenresNotFound  = errors.New("no genres found")

	ErrGameInactive        = errors.New("game has already ended")
	ErrWrongTurn           = errors.New("not your turn")
	ErrHostNotAllowed      = errors.New("host cannot submit answers")
	ErrNotHost             = errors.New("only the host may do this")
	ErrInsufficientPlayers = errors.New("at least 2 players are required")
	ErrTurnExpired         = errors.New("time is up, your turn has been skipped")
)
