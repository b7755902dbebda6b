package game

import "fmt"

// Apply validates and applies an action, then advances the turn and, when
// betting on the street is finished, the street. Rejected actions leave the
// table unchanged and return an error wrapping ErrIllegalAction.
func (t *Table) Apply(a PendingAction) error {
	if err := t.validate(a); err != nil {
		return err
	}
	t.applyAction(a)
	t.advanceAfterAction(a.Seat)
	return nil
}

func (t *Table) validate(a PendingAction) error {
	if t.Terminal() {
		return fmt.Errorf("%w: hand is over", ErrIllegalAction)
	}
	if a.Seat != t.CurrentPlayer {
		return fmt.Errorf("%w: seat %d acted out of turn (seat %d to act)", ErrIllegalAction, a.Seat, t.CurrentPlayer)
	}
	if !t.IsLegal(a.Seat, a.Kind) {
		return fmt.Errorf("%w: %s not allowed for seat %d", ErrIllegalAction, a.Kind, a.Seat)
	}
	if a.Kind.sized() {
		return t.ValidateBetOrRaise(a.Seat, a.Amount)
	}
	return nil
}

func (t *Table) applyAction(a PendingAction) {
	p := &t.Players[a.Seat]
	start := p.Bet

	switch a.Kind {
	case Fold:
		p.Folded = true
	case Check:
	case Call:
		owed := min(t.CurrentBet-p.Bet, p.Stack)
		p.commit(owed)
	case Bet, Raise:
		p.commit(a.Amount - p.Bet)
		t.LastRaiseSize = a.Amount - t.CurrentBet
		t.CurrentBet = a.Amount
	}

	t.Pot += p.Bet - start
	p.Acted = true
	t.History = append(t.History, ActionRecord{Street: t.Street, PendingAction: a})
}

// advanceAfterAction passes the turn on, closing streets as needed. Streets
// with nobody left to act are run out to showdown.
func (t *Table) advanceAfterAction(seat int) {
	if unfolded := t.Unfolded(); len(unfolded) == 1 {
		t.AutoWin = unfolded[0]
		t.CurrentPlayer = NoSeat
		return
	}

	if !t.streetClosed() {
		t.CurrentPlayer = t.nextLive(seat)
		return
	}

	for {
		t.nextStreet()
		if t.Street == Showdown {
			t.CurrentPlayer = NoSeat
			return
		}
		if !t.streetClosed() {
			t.CurrentPlayer = t.firstToAct()
			return
		}
	}
}

// nextStreet returns any uncalled chips, resets street bookkeeping and
// reveals the next community cards.
func (t *Table) nextStreet() {
	t.refundUncalled()
	for i := range t.Players {
		t.Players[i].Bet = 0
		t.Players[i].Acted = false
	}
	t.CurrentBet = 0
	t.LastRaiseSize = 0

	t.Street++
	n := t.Street.cardsFor()
	t.Board = append(t.Board, t.upcoming[:n]...)
	t.upcoming = t.upcoming[n:]
}

// refundUncalled gives the top bettor back whatever nobody else matched.
func (t *Table) refundUncalled() {
	top, second := NoSeat, 0
	for i := range t.Players {
		bet := t.Players[i].Bet
		switch {
		case top == NoSeat || bet > t.Players[top].Bet:
			if top != NoSeat {
				second = max(second, t.Players[top].Bet)
			}
			top = i
		default:
			second = max(second, bet)
		}
	}
	if top == NoSeat {
		return
	}

	p := &t.Players[top]
	excess := p.Bet - second
	if excess <= 0 {
		return
	}
	p.Bet -= excess
	p.Committed -= excess
	p.Stack += excess
	p.AllIn = false
	t.Pot -= excess
}
