package game

import (
	"sort"

	"github.com/cartada/cartada-backend/internal/deck"
)

// lastNonEmptyPlay returns the most recent play of the round that actually
// put cards on the table.
func lastNonEmptyPlay(plays []Play) (Play, bool) {
	for i := len(plays) - 1; i >= 0; i-- {
		if plays[i].Cards != nil {
			return plays[i], true
		}
	}
	return Play{}, false
}

// effectiveCard resolves a played card to the catalog card it counts as: a
// joker counts as its declared substitute, everything else as itself. A
// joker played without a substitute keeps its zero rate and beats nothing.
func effectiveCard(pc PlayedCard) deck.Card {
	if deck.IsJoker(pc.Card.ID) && pc.SubstituteValue != nil {
		if c, ok := deck.ByID(*pc.SubstituteValue); ok {
			return c
		}
	}
	return pc.Card
}

// beatsSingle reports whether a one-card play strictly outranks the
// previous non-empty play's card.
func beatsSingle(last Play, pc PlayedCard) bool {
	return effectiveCard(pc).RateValue > effectiveCard(last.Cards[0]).RateValue
}

// isPlayableSequence validates a multi-card play: an equal-rank pair or a
// same-suit run of rank-consecutive cards, jokers resolved to their
// declared substitutes, measured against the previous play's two lowest
// cards when one exists.
func isPlayableSequence(last Play, hasLast bool, played []PlayedCard) bool {
	cards := make([]deck.Card, len(played))
	for i, pc := range played {
		cards[i] = effectiveCard(pc)
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].RateValue < cards[j].RateValue })

	if hasLast && !clearsFloor(last, cards) {
		return false
	}

	for i := 1; i < len(cards); i++ {
		prev := cards[i-1]
		c := cards[i]
		if c.RateValue == prev.RateValue {
			continue
		}
		expected := c.RateValue - 1
		// The King of clubs wraps past the Ace: unless it extends another
		// King, it sits one extra rank step above its predecessor. Game
		// rule quirk, kept exactly as played.
		if c.Suit == deck.SuitClubs && c.DisplayRank == "K" && prev.DisplayRank != "K" {
			expected--
		}
		if expected != prev.RateValue || c.Suit != prev.Suit {
			return false
		}
	}
	return true
}

// clearsFloor checks the new play's lowest cards against the previous
// play's two lowest: an equal-rank floor must be beaten strictly, a
// non-equal floor only matched.
func clearsFloor(last Play, cards []deck.Card) bool {
	floor := make([]deck.Card, len(last.Cards))
	for i, pc := range last.Cards {
		floor[i] = effectiveCard(pc)
	}
	sort.SliceStable(floor, func(i, j int) bool { return floor[i].RateValue < floor[j].RateValue })

	lower, second := floor[0], floor[1]
	floorIsPair := lower.RateValue == second.RateValue

	if floorIsPair {
		return cards[0].RateValue > second.RateValue
	}
	return cards[0].RateValue >= second.RateValue
}

// nextPlayer advances the fixed turn order, wrapping past the end.
func nextPlayer(sequence []string, current string) string {
	for i, id := range sequence {
		if id == current {
			return sequence[(i+1)%len(sequence)]
		}
	}
	return current
}

// closeRoundIfOver runs after a pass. The round is over once everyone has
// played at least once and all but the most recent real play among the
// newest playerCount-1 entries are passes; the round winner opens the next
// round with a cleared history.
func closeRoundIfOver(g *Game) bool {
	n := len(g.Players)
	if len(g.LastPlays) < n {
		return false
	}
	for _, p := range g.LastPlays[len(g.LastPlays)-(n-1):] {
		if p.Cards != nil {
			return false
		}
	}

	for i := len(g.LastPlays) - 1; i >= 0; i-- {
		if g.LastPlays[i].Cards != nil {
			g.WhoIsPlaying = g.LastPlays[i].UserID
			break
		}
	}
	g.LastPlays = nil
	return true
}
