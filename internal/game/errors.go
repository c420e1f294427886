package game

import "errors"

// Domain rule violations. These are expected outcomes of player input and
// are returned, never panicked; the gateway forwards their text to the
// offending client only.
var (
	ErrNotEnoughPlayers = errors.New("at least 2 players are required to start the game")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrPlayersNotReady  = errors.New("every player must be ready to start the game")
	ErrGameNotFound     = errors.New("you are not in an active game")
	ErrCardNotOwned     = errors.New("you do not have that card")
	ErrNotYourTurn      = errors.New("it is not your turn to play")
	ErrInvalidPlay      = errors.New("this play is not valid")
)
