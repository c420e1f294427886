package game

import "github.com/cartada/cartada-backend/internal/deck"

// DealtCard is one card instance in a player's hand. ID is unique per deal
// and unrelated to the catalog; DeckID points back at the catalog card.
type DealtCard struct {
	ID          string    `json:"id"`
	DeckID      int       `json:"deckId"`
	Suit        deck.Suit `json:"suit"`
	DisplayRank string    `json:"displayRank"`
	RateValue   int       `json:"rateValue"`
}

// PlayedCard is a catalog card as it landed on the table. SubstituteValue
// is set only for jokers and records the catalog id the joker stood in for.
type PlayedCard struct {
	deck.Card
	SubstituteValue *int `json:"substituteValue,omitempty"`
}

// Play is one turn's outcome. Cards == nil encodes a pass.
type Play struct {
	UserID string       `json:"userId"`
	Cards  []PlayedCard `json:"cards"`
}

// PlayerHand pairs a player with the cards still in their hand. Cards is
// nil before dealing.
type PlayerHand struct {
	ID    string      `json:"id"`
	Cards []DealtCard `json:"cards"`
}

// Game is the full turn state of one room's match. LastPlays is the play
// history of the current round; it resets when a round closes.
type Game struct {
	ID              string       `json:"id"`
	Players         []PlayerHand `json:"players"`
	LastPlays       []Play       `json:"lastPlays"`
	IsStarted       bool         `json:"isStarted"`
	WhoIsPlaying    string       `json:"whoIsPlaying,omitempty"`
	PlayersSequence []string     `json:"playersSequence,omitempty"`
}

// CardToPlay is the inbound shape of one requested card: a hand instance id
// plus, for jokers, the catalog id the joker should count as.
type CardToPlay struct {
	ID              string `json:"id"`
	SubstituteValue *int   `json:"substituteValue,omitempty"`
}

// DrawnCard is one entry of the turn-order draw ranking.
type DrawnCard struct {
	ID   string    `json:"id"`
	Card deck.Card `json:"card"`
}
