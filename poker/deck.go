package poker

import (
	"github.com/lox/holdem-engine/internal/randutil"
)

// Deck is a shuffled 52-card deck dealt from the top.
type Deck struct {
	cards [52]Card // Fixed size array
	next  int
	rng   randutil.Source
}

// NewShuffledDeck creates a full deck and shuffles it with the given source.
func NewShuffledDeck(rng randutil.Source) *Deck {
	d := &Deck{rng: rng}
	copy(d.cards[:], NewDeck())
	d.Shuffle()
	return d
}

// Shuffle restores all cards and shuffles them using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	Shuffle(d.rng, d.cards[:])
}

// Deal deals n cards from the deck, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Shuffle permutes cards in place with an unbiased Fisher-Yates pass.
func Shuffle(rng randutil.Source, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
