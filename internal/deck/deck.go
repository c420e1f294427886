package deck

// Suit identifies one of the four card suits, or the joker pseudo-suit.
type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
	SuitDiamonds Suit = "diamonds"
	SuitJoker    Suit = "joker"
)

// Card is one entry of the static 54-card catalog. RateValue is the total
// order used for comparisons: strictly increasing by rank, equal across the
// four suits of one rank. Jokers carry no rate of their own; their effective
// card is declared at play time.
type Card struct {
	ID          int    `json:"id"`
	Suit        Suit   `json:"suit"`
	DisplayRank string `json:"displayRank"`
	RateValue   int    `json:"rateValue"`
}

// Size is the number of cards in the full deck, jokers included.
const Size = 54

// Catalog ids of the two jokers.
const (
	JokerA = 53
	JokerB = 54
)

var ranks = [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var suits = [...]Suit{SuitClubs, SuitHearts, SuitSpades, SuitDiamonds}

var catalog = buildCatalog()

func buildCatalog() [Size]Card {
	var deck [Size]Card
	i := 0
	for r, rank := range ranks {
		for _, suit := range suits {
			deck[i] = Card{
				ID:          i + 1,
				Suit:        suit,
				DisplayRank: rank,
				RateValue:   r + 1,
			}
			i++
		}
	}
	deck[JokerA-1] = Card{ID: JokerA, Suit: SuitJoker, DisplayRank: "Joker"}
	deck[JokerB-1] = Card{ID: JokerB, Suit: SuitJoker, DisplayRank: "Joker"}
	return deck
}

// Catalog returns a fresh copy of the full deck.
func Catalog() []Card {
	out := make([]Card, Size)
	copy(out, catalog[:])
	return out
}

// ByID looks up a catalog card by its id (1-54).
func ByID(id int) (Card, bool) {
	if id < 1 || id > Size {
		return Card{}, false
	}
	return catalog[id-1], true
}

// IsJoker reports whether the catalog id belongs to one of the two jokers.
func IsJoker(id int) bool {
	return id == JokerA || id == JokerB
}
