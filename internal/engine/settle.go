package engine

import (
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Settlement summarizes how a finished hand's pot was paid out.
type Settlement struct {
	Winners []int          `json:"winners"`
	Shares  []int          `json:"shares"`
	Pot     int            `json:"pot"`
	AutoWin bool           `json:"autoWin"`
	Hands   []ShowdownHand `json:"hands,omitempty"`
}

// ShowdownHand is an evaluated hand at showdown.
type ShowdownHand struct {
	Seat  int             `json:"seat"`
	Value poker.HandValue `json:"value"`
}

// settleTable works out the winners of a terminal table. Winners are the
// auto-win seat, or every unfolded seat tied for the best hand, in seat
// order.
func settleTable(t *game.Table) Settlement {
	s := Settlement{Pot: t.Pot}

	if t.AutoWin != game.NoSeat {
		s.AutoWin = true
		s.Winners = []int{t.AutoWin}
		s.Shares = game.SplitPot(t.Pot, s.Winners)
		return s
	}

	var best poker.HandValue
	for _, seat := range t.Unfolded() {
		value := poker.Evaluate(t.Players[seat].Hole, t.Board)
		s.Hands = append(s.Hands, ShowdownHand{Seat: seat, Value: value})

		switch cmp := poker.CompareHandValues(value, best); {
		case len(s.Winners) == 0 || cmp > 0:
			best = value
			s.Winners = []int{seat}
		case cmp == 0:
			s.Winners = append(s.Winners, seat)
		}
	}

	s.Shares = game.SplitPot(t.Pot, s.Winners)
	return s
}
