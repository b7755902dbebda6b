// Package game implements the betting state machine for a single hand of
// no-blind Texas Hold'em.
//
// The main type is Table, which tracks players, the pot, the current bet and
// the community cards revealed so far. It moves through the streets
// Preflop, Flop, Turn, River and Showdown; a hand can also end early when
// every player but one has folded, in which case AutoWin names the winner.
//
// # Basic Usage
//
//	t, err := game.NewTable(game.TableConfig{
//	    Seats:     seats,
//	    Button:    0,
//	    Community: board,
//	})
//	// The player in t.CurrentPlayer acts
//	err = t.Apply(game.PendingAction{Seat: t.CurrentPlayer, Kind: game.Bet, Amount: 20})
//	if errors.Is(err, game.ErrIllegalAction) {
//	    // nothing changed
//	}
//	if t.Terminal() {
//	    // settle
//	}
//
// # Acting order
//
// Positions are derived from the button: the big blind sits at button+1,
// UTG at button+2 and the cutoff at button+3, wrapping on short tables.
// Preflop action starts at UTG and ends with the big blind; every later
// street starts with the big blind. Bet and raise amounts are the player's
// total for the street.
//
// Table is not safe for concurrent use. Callers that publish state should
// hand out Clone()s.
package game
