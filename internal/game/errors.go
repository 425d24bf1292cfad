package game

import "errors"

var (
	// ErrInvalidPlayerCount means the role distribution has no entry for the table size
	ErrInvalidPlayerCount = errors.New("player count must be between 4 and 8")

	// ErrInvalidPlayers means the player names failed setup validation
	ErrInvalidPlayers = errors.New("invalid players")

	// ErrNoQuestions means the question corpus is empty
	ErrNoQuestions = errors.New("no questions available")

	// ErrWrongPhase means a transition was requested from a phase that does not allow it
	ErrWrongPhase = errors.New("transition not allowed in current phase")

	// ErrGameOver means the session already reached its final phase
	ErrGameOver = errors.New("game is over")
)
