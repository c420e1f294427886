package game

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cartada/cartada-backend/internal/deck"
	"github.com/cartada/cartada-backend/internal/rooms"
)

// MinPlayers is the minimum room size required to start a game.
const MinPlayers = 2

// Engine owns every active game and drives the turn state machine. It
// consumes the room registry for membership and host checks; games are
// keyed by their room's id and live for the whole process.
type Engine struct {
	mu       sync.Mutex
	registry *rooms.Registry
	games    map[string]*Game
}

func NewEngine(registry *rooms.Registry) *Engine {
	return &Engine{
		registry: registry,
		games:    make(map[string]*Game),
	}
}

// StartGame creates the game for a room. Preconditions are checked in
// order: enough players, caller is host, every member ready. Dealing and
// the turn-order draw are separate steps triggered by the caller.
func (e *Engine) StartGame(room rooms.Room, callerID string) (Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(room.Users) < MinPlayers {
		return Game{}, ErrNotEnoughPlayers
	}

	var caller *rooms.User
	for i := range room.Users {
		if room.Users[i].ID == callerID {
			caller = &room.Users[i]
		}
	}
	if caller == nil || !caller.IsHost {
		return Game{}, ErrNotHost
	}

	for _, u := range room.Users {
		if !u.IsReady {
			return Game{}, ErrPlayersNotReady
		}
	}

	g := &Game{
		ID:        room.ID,
		Players:   make([]PlayerHand, 0, len(room.Users)),
		LastPlays: []Play{},
	}
	for _, u := range room.Users {
		g.Players = append(g.Players, PlayerHand{ID: u.ID})
	}
	e.games[room.ID] = g

	playing := true
	if _, err := e.registry.UpdateRoomProperties(room.ID, rooms.RoomUpdate{IsPlaying: &playing}); err != nil {
		return Game{}, err
	}

	return snapshotGame(g), nil
}

// DrawSequenceOfPlayers draws one card per member from a fresh copy of the
// deck (without replacement within this draw) and ranks players by
// descending rate value. The sort is stable, so equal draws keep join
// order. The highest draw opens play.
func (e *Engine) DrawSequenceOfPlayers(room rooms.Room) ([]DrawnCard, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[room.ID]
	if !ok {
		return nil, ErrGameNotFound
	}

	remaining := deck.Catalog()
	drawn := make([]DrawnCard, 0, len(room.Users))
	for _, u := range room.Users {
		i := rand.Intn(len(remaining))
		drawn = append(drawn, DrawnCard{ID: u.ID, Card: remaining[i]})
		remaining = append(remaining[:i], remaining[i+1:]...)
	}

	sort.SliceStable(drawn, func(i, j int) bool {
		return drawn[i].Card.RateValue > drawn[j].Card.RateValue
	})

	sequence := make([]string, len(drawn))
	for i, d := range drawn {
		sequence[i] = d.ID
	}
	g.PlayersSequence = sequence
	g.WhoIsPlaying = sequence[0]

	return drawn, nil
}

// DealHands shuffles a fresh deck and deals it round-robin, one card per
// cycle, to members in join order until the deck is exhausted. Every dealt
// card gets a fresh instance id.
func (e *Engine) DealHands(room rooms.Room) (Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[room.ID]
	if !ok {
		return Game{}, ErrGameNotFound
	}

	shuffled := deck.Catalog()
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	hands := make(map[string][]DealtCard, len(room.Users))
	for i, c := range shuffled {
		owner := room.Users[i%len(room.Users)].ID
		hands[owner] = append(hands[owner], DealtCard{
			ID:          uuid.NewString(),
			DeckID:      c.ID,
			Suit:        c.Suit,
			DisplayRank: c.DisplayRank,
			RateValue:   c.RateValue,
		})
	}

	for i := range g.Players {
		g.Players[i].Cards = hands[g.Players[i].ID]
	}
	g.IsStarted = true

	return snapshotGame(g), nil
}

// PlayCard applies one turn: a non-empty card list plays those cards, an
// empty list passes. It returns the updated game and whether the play
// closed the round. On any rule violation the game is left untouched.
func (e *Engine) PlayCard(playerID string, requested []CardToPlay) (Game, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.gameByPlayerID(playerID)
	if g == nil {
		return Game{}, false, ErrGameNotFound
	}
	hand := g.hand(playerID)

	played := make([]PlayedCard, 0, len(requested))
	for _, req := range requested {
		dealt, ok := findDealt(hand.Cards, req.ID)
		if !ok {
			return Game{}, false, ErrCardNotOwned
		}
		card, _ := deck.ByID(dealt.DeckID)
		pc := PlayedCard{Card: card}
		if deck.IsJoker(card.ID) {
			pc.SubstituteValue = req.SubstituteValue
		}
		played = append(played, pc)
	}

	if g.WhoIsPlaying != playerID {
		return Game{}, false, ErrNotYourTurn
	}

	passed := len(played) == 0
	last, hasLast := lastNonEmptyPlay(g.LastPlays)

	if !passed {
		if hasLast && len(played) != len(last.Cards) {
			return Game{}, false, ErrInvalidPlay
		}
		if len(played) == 1 {
			if hasLast && !beatsSingle(last, played[0]) {
				return Game{}, false, ErrInvalidPlay
			}
		} else if !isPlayableSequence(last, hasLast, played) {
			return Game{}, false, ErrInvalidPlay
		}
	}

	if passed {
		g.LastPlays = append(g.LastPlays, Play{UserID: playerID})
	} else {
		removeFromHand(hand, requested)
		g.LastPlays = append(g.LastPlays, Play{UserID: playerID, Cards: played})
	}
	g.WhoIsPlaying = nextPlayer(g.PlayersSequence, playerID)

	isNewRound := false
	if passed {
		isNewRound = closeRoundIfOver(g)
	}

	return snapshotGame(g), isNewRound, nil
}

// FindGameByID returns the game keyed to a room id.
func (e *Engine) FindGameByID(id string) (Game, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[id]
	if !ok {
		return Game{}, false
	}
	return snapshotGame(g), true
}

// FindGameByPlayerID returns the game holding a hand for the given player.
func (e *Engine) FindGameByPlayerID(playerID string) (Game, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.gameByPlayerID(playerID)
	if g == nil {
		return Game{}, false
	}
	return snapshotGame(g), true
}

// RemoveUser drops a user from their room on disconnect and reflects the
// room's playing flag from the remaining member count. The player's dealt
// hand stays in the game state.
func (e *Engine) RemoveUser(userID string) (rooms.Room, bool) {
	room, ok := e.registry.FindRoomByUserID(userID)
	if !ok {
		return rooms.Room{}, false
	}

	updated, err := e.registry.RemoveUserFromRoom(room.ID, userID)
	if err != nil {
		return rooms.Room{}, false
	}

	playing := len(updated.Users) > 0
	final, err := e.registry.UpdateRoomProperties(room.ID, rooms.RoomUpdate{IsPlaying: &playing})
	if err != nil {
		return rooms.Room{}, false
	}
	return final, true
}

// Callers must hold e.mu.
func (e *Engine) gameByPlayerID(playerID string) *Game {
	for _, g := range e.games {
		for _, p := range g.Players {
			if p.ID == playerID {
				return g
			}
		}
	}
	return nil
}

func (g *Game) hand(playerID string) *PlayerHand {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

func findDealt(cards []DealtCard, instanceID string) (DealtCard, bool) {
	for _, c := range cards {
		if c.ID == instanceID {
			return c, true
		}
	}
	return DealtCard{}, false
}

func removeFromHand(hand *PlayerHand, requested []CardToPlay) {
	playedIDs := make(map[string]bool, len(requested))
	for _, req := range requested {
		playedIDs[req.ID] = true
	}
	kept := hand.Cards[:0]
	for _, c := range hand.Cards {
		if !playedIDs[c.ID] {
			kept = append(kept, c)
		}
	}
	hand.Cards = kept
}

func snapshotGame(g *Game) Game {
	out := *g
	out.Players = make([]PlayerHand, len(g.Players))
	for i, p := range g.Players {
		out.Players[i] = p
		if p.Cards != nil {
			out.Players[i].Cards = append([]DealtCard(nil), p.Cards...)
		}
	}
	out.LastPlays = make([]Play, len(g.LastPlays))
	for i, p := range g.LastPlays {
		out.LastPlays[i] = p
		if p.Cards != nil {
			out.LastPlays[i].Cards = append([]PlayedCard(nil), p.Cards...)
		}
	}
	out.PlayersSequence = append([]string(nil), g.PlayersSequence...)
	return out
}
