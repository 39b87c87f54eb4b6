package domain

import "errors"

// Domain errors
var (
	ErrGameInProgress   = errors.New("game already in progress")
	ErrGameFull         = errors.New("game is full")
	ErrNotInLobby       = errors.New("game can only be started from the lobby")
	ErrNoPlayers        = errors.New("no players in the lobby")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRoundNotActive   = errors.New("round is not accepting submissions")
	ErrAlreadySubmitted = errors.New("already submitted this turn")
	ErrEmptyWord        = errors.New("word cannot be empty")
)
