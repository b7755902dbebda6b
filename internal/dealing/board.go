package dealing

import (
	"fmt"

	"github.com/lox/holdem-engine/poker"
)

// BoardReserveSize is five board cards plus five burn cards.
const BoardReserveSize = 10

// BoardPolicy controls how the reserved block is assembled.
type BoardPolicy int

const (
	// PresetFirst takes caller supplied ids first, then fills in fixed deck order.
	PresetFirst BoardPolicy = iota
	// Shuffled ignores any preset, shuffles the deck, then fills in fixed deck order.
	Shuffled
)

func (p BoardPolicy) String() string {
	switch p {
	case PresetFirst:
		return "preset-first"
	case Shuffled:
		return "shuffled"
	default:
		return fmt.Sprintf("BoardPolicy(%d)", int(p))
	}
}

// BoardOptions describes a reservation request.
type BoardOptions struct {
	Preset []string
	Avoid  []string
	Policy BoardPolicy
}

// ReserveBoard assembles BoardReserveSize unique card ids that avoid every
// id in opts.Avoid. Preset and avoid ids must be canonical card ids.
func (d *Dealer) ReserveBoard(opts BoardOptions) ([]string, error) {
	used := make(map[poker.Card]bool, len(opts.Avoid)+BoardReserveSize)
	for _, id := range opts.Avoid {
		c, err := poker.ParseCard(id)
		if err != nil {
			return nil, err
		}
		used[c] = true
	}

	reserved := make([]poker.Card, 0, BoardReserveSize)
	take := func(c poker.Card) {
		if len(reserved) < BoardReserveSize && !used[c] {
			used[c] = true
			reserved = append(reserved, c)
		}
	}

	switch opts.Policy {
	case Shuffled:
		deck := poker.NewDeck()
		poker.Shuffle(d.rng, deck)
		for _, c := range deck {
			take(c)
		}
	default:
		for _, id := range opts.Preset {
			c, err := poker.ParseCard(id)
			if err != nil {
				return nil, err
			}
			take(c)
		}
	}

	for _, c := range poker.NewDeck() {
		take(c)
	}

	if len(reserved) < BoardReserveSize {
		return nil, fmt.Errorf("%w: only %d of %d cards available", ErrInsufficientCards, len(reserved), BoardReserveSize)
	}
	return poker.CardIDs(reserved), nil
}
