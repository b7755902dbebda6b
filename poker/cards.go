package poker

import (
	"errors"
	"fmt"
)

// ErrInvalidCardID is returned when a card id is not a canonical rank+suit pair.
var ErrInvalidCardID = errors.New("invalid card id")

// Rank is a card rank ordered by strength, Two lowest and Ace highest.
type Rank uint8

// Rank constants (0-12 for 2-A)
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit is one of the four card suits.
type Suit uint8

// Suit constants, in canonical deck order.
const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	rankSymbols = "23456789TJQKA"
	suitSymbols = "shdc"
)

// String returns the single character symbol of the rank ("A", "T", "2").
func (r Rank) String() string {
	if r > Ace {
		return "?"
	}
	return string(rankSymbols[r])
}

// MarshalText encodes the rank as its symbol.
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// String returns the single character symbol of the suit ("s", "h", "d", "c").
func (s Suit) String() string {
	if s > Clubs {
		return "?"
	}
	return string(suitSymbols[s])
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is an immutable playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the canonical card id (e.g., "As", "Td").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// MarshalText encodes the card as its canonical id.
func (c Card) MarshalText() ([]byte, error) {
	if c.Rank > Ace || c.Suit > Clubs {
		return nil, fmt.Errorf("%w: rank=%d suit=%d", ErrInvalidCardID, c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a canonical card id.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseRank parses a single rank symbol.
func ParseRank(b byte) (Rank, bool) {
	for i := 0; i < len(rankSymbols); i++ {
		if rankSymbols[i] == b {
			return Rank(i), true
		}
	}
	return 0, false
}

// ParseCard parses a string like "As" into a Card. Only the canonical
// upper-case rank and lower-case suit symbols are accepted, so that
// ParseCard(c.String()) == c for every card and nothing else parses.
func ParseCard(id string) (Card, error) {
	if len(id) != 2 {
		return Card{}, fmt.Errorf("%w: %q (expected 2 characters like \"As\")", ErrInvalidCardID, id)
	}

	rank, ok := ParseRank(id[0])
	if !ok {
		return Card{}, fmt.Errorf("%w: %q has unknown rank %q", ErrInvalidCardID, id, id[0])
	}

	for i := 0; i < len(suitSymbols); i++ {
		if suitSymbols[i] == id[1] {
			return Card{Rank: rank, Suit: Suit(i)}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %q has unknown suit %q", ErrInvalidCardID, id, id[1])
}

// MustParseCard is like ParseCard but panics on error. Intended for fixtures.
func MustParseCard(id string) Card {
	c, err := ParseCard(id)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a list of card ids, failing on the first invalid one.
func ParseCards(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, err := ParseCard(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses a run of concatenated ids such as "AsKhQd".
func MustParseCards(s string) []Card {
	if len(s)%2 != 0 {
		panic(fmt.Sprintf("odd length card string %q", s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		cards = append(cards, MustParseCard(s[i:i+2]))
	}
	return cards
}

// CardIDs converts cards to their canonical ids.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.String()
	}
	return ids
}

// NewDeck returns the 52 cards in fixed rank-major, suit-minor order:
// As Ah Ad Ac Ks ... 2c. Callers that need a deterministic scan rely on it.
func NewDeck() []Card {
	cards := make([]Card, 0, 52)
	for rank := Ace; ; rank-- {
		for suit := Spades; suit <= Clubs; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
		if rank == Two {
			break
		}
	}
	return cards
}
