package game

import (
	"errors"
	"fmt"
)

// ErrIllegalAction is returned for out-of-turn actions, actions outside the
// legal set and badly sized bets or raises. The table is left untouched.
var ErrIllegalAction = errors.New("illegal action")

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return fmt.Sprintf("Street(%d)", int(s))
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// cardsFor is the number of community cards revealed when a street opens.
func (s Street) cardsFor() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// ActionKind represents a player action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise"}

func (a ActionKind) String() string {
	if a < Fold || a > Raise {
		return fmt.Sprintf("ActionKind(%d)", int(a))
	}
	return actionNames[a]
}

func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*a = kind
	return nil
}

// ParseActionKind converts "fold", "check", "call", "bet" or "raise".
func ParseActionKind(s string) (ActionKind, error) {
	for i, name := range actionNames {
		if name == s {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// sized reports whether the action carries an amount.
func (a ActionKind) sized() bool {
	return a == Bet || a == Raise
}

// PendingAction is a request by the player in Seat to act. Amount is the
// player's total bet for the street after a bet or raise.
type PendingAction struct {
	Seat   int        `json:"seat"`
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
}

func (a PendingAction) String() string {
	if a.Kind.sized() {
		return fmt.Sprintf("seat %d %s to %d", a.Seat, a.Kind, a.Amount)
	}
	return fmt.Sprintf("seat %d %s", a.Seat, a.Kind)
}

// LegalActions returns the actions open to the player in seat. Folded and
// all-in players have none.
func (t *Table) LegalActions(seat int) []ActionKind {
	p := t.player(seat)
	if p == nil || !p.Live() || t.Terminal() {
		return nil
	}

	actions := []ActionKind{Fold}
	owed := t.CurrentBet - p.Bet
	if owed <= 0 {
		actions = append(actions, Check)
		if p.Stack > 0 {
			actions = append(actions, Bet)
		}
		return actions
	}

	actions = append(actions, Call)
	if p.Stack > owed {
		actions = append(actions, Raise)
	}
	return actions
}

// IsLegal reports whether kind is in the legal set for seat.
func (t *Table) IsLegal(seat int, kind ActionKind) bool {
	for _, a := range t.LegalActions(seat) {
		if a == kind {
			return true
		}
	}
	return false
}

// MinRaiseTo is the smallest total street bet a bet or raise may reach.
func (t *Table) MinRaiseTo() int {
	if t.CurrentBet == 0 {
		return MinBet
	}
	return t.CurrentBet + max(t.LastRaiseSize, MinBet)
}

// ValidateBetOrRaise checks that amount, the player's total bet for the
// street, is affordable and meets the minimum.
func (t *Table) ValidateBetOrRaise(seat, amount int) error {
	p := t.player(seat)
	if p == nil {
		return fmt.Errorf("%w: no player in seat %d", ErrIllegalAction, seat)
	}
	if ceiling := p.Bet + p.Stack; amount > ceiling {
		return fmt.Errorf("%w: %d exceeds available %d", ErrIllegalAction, amount, ceiling)
	}
	if floor := t.MinRaiseTo(); amount < floor {
		return fmt.Errorf("%w: %d is below the minimum of %d", ErrIllegalAction, amount, floor)
	}
	return nil
}

// PickPassiveAction returns the least aggressive legal action for seat:
// check, else call, else the first legal action.
func (t *Table) PickPassiveAction(seat int) (ActionKind, bool) {
	legal := t.LegalActions(seat)
	if len(legal) == 0 {
		return 0, false
	}
	for _, preferred := range []ActionKind{Check, Call} {
		for _, a := range legal {
			if a == preferred {
				return a, true
			}
		}
	}
	return legal[0], true
}

// streetClosed reports whether betting on the current street is finished:
// every live player has acted and matched the current bet. With one live
// player left only the match is needed.
func (t *Table) streetClosed() bool {
	live := 0
	for i := range t.Players {
		p := &t.Players[i]
		if !p.Live() {
			continue
		}
		live++
		if p.Bet != t.CurrentBet {
			return false
		}
	}
	if live <= 1 {
		return true
	}

	for i := range t.Players {
		p := &t.Players[i]
		if p.Live() && !p.Acted {
			return false
		}
	}
	return true
}
