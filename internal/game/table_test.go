package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/poker"
)

var testHoles = []string{"AsAh", "KsKh", "QsQh", "JsJh", "TsTh", "9s9h", "8s8h", "7s7h"}

// newTestTable opens a hand with one seat per stack and the button on seat 0.
func newTestTable(t *testing.T, stacks ...int) *Table {
	t.Helper()
	return newTestTableWithButton(t, 0, stacks...)
}

func newTestTableWithButton(t *testing.T, button int, stacks ...int) *Table {
	t.Helper()
	seats := make([]SeatConfig, len(stacks))
	for i, s := range stacks {
		seats[i] = SeatConfig{UserID: testHoles[i][:2], Stack: s, Hole: poker.MustParseCards(testHoles[i])}
	}
	table, err := NewTable(TableConfig{
		Seats:     seats,
		Button:    button,
		Community: poker.MustParseCards("2c3d4c5d6c"),
	})
	require.NoError(t, err)
	return table
}

func act(t *testing.T, table *Table, kind ActionKind, amount ...int) {
	t.Helper()
	a := PendingAction{Seat: table.CurrentPlayer, Kind: kind}
	if len(amount) > 0 {
		a.Amount = amount[0]
	}
	require.NoError(t, table.Apply(a), "applying %s", a)
}

func TestFreshTableLegalActions(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	assert.Equal(t, Preflop, table.Street)
	assert.Equal(t, 0, table.CurrentBet)
	assert.Equal(t, 2, table.CurrentPlayer, "UTG opens preflop")
	assert.Equal(t, []ActionKind{Fold, Check, Bet}, table.LegalActions(table.CurrentPlayer))
}

func TestAllInPlayerHasNoActions(t *testing.T) {
	table := newTestTable(t, 100, 100)
	require.Equal(t, 0, table.CurrentPlayer)

	act(t, table, Bet, 100)

	p, _ := table.Player(0)
	assert.True(t, p.AllIn)
	assert.Equal(t, 0, p.Stack)
	assert.Empty(t, table.LegalActions(0))

	// Calling the whole stack leaves no room to raise.
	assert.Equal(t, []ActionKind{Fold, Call}, table.LegalActions(1))
}

func TestAllInRunsOutToShowdown(t *testing.T) {
	table := newTestTable(t, 100, 100)
	act(t, table, Bet, 100)
	act(t, table, Call)

	assert.Equal(t, Showdown, table.Street)
	assert.True(t, table.Terminal())
	assert.Equal(t, NoSeat, table.CurrentPlayer)
	assert.Equal(t, NoSeat, table.AutoWin)
	assert.Len(t, table.Board, 5)
	assert.Equal(t, 200, table.Pot)
}

func TestBetAndRaiseSizing(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	err := table.Apply(PendingAction{Seat: 2, Kind: Bet, Amount: 0})
	require.ErrorIs(t, err, ErrIllegalAction, "fresh bet below one chip")

	act(t, table, Bet, 20)
	assert.Equal(t, 20, table.CurrentBet)
	assert.Equal(t, 20, table.LastRaiseSize)
	assert.Equal(t, 40, table.MinRaiseTo())

	tests := []struct {
		name   string
		action PendingAction
	}{
		{"raise below minimum", PendingAction{Seat: 0, Kind: Raise, Amount: 30}},
		{"raise beyond stack", PendingAction{Seat: 0, Kind: Raise, Amount: 1001}},
		{"check facing a bet", PendingAction{Seat: 0, Kind: Check}},
		{"bet facing a bet", PendingAction{Seat: 0, Kind: Bet, Amount: 60}},
		{"out of turn", PendingAction{Seat: 1, Kind: Call}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := table.Clone()
			err := table.Apply(tt.action)
			require.ErrorIs(t, err, ErrIllegalAction)
			assert.Equal(t, before, table, "rejected action must not mutate the table")
		})
	}

	act(t, table, Raise, 40)
	assert.Equal(t, 40, table.CurrentBet)
	assert.Equal(t, 20, table.LastRaiseSize)
	assert.Equal(t, 60, table.Pot)

	// An all-in for exactly the stack is accepted as a raise.
	act(t, table, Raise, 1000)
	assert.Equal(t, 960, table.LastRaiseSize)
	p, _ := table.Player(1)
	assert.True(t, p.AllIn)
}

func TestStreetAdvance(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	act(t, table, Check)
	act(t, table, Check)
	assert.Equal(t, Preflop, table.Street)
	act(t, table, Check)

	assert.Equal(t, Flop, table.Street)
	assert.Equal(t, poker.MustParseCards("2c3d4c"), table.Board)
	assert.Equal(t, 1, table.CurrentPlayer, "big blind opens postflop")

	act(t, table, Bet, 50)
	act(t, table, Call)
	act(t, table, Call)

	assert.Equal(t, Turn, table.Street)
	assert.Len(t, table.Board, 4)
	assert.Equal(t, 150, table.Pot)
	assert.Equal(t, 0, table.CurrentBet)
	assert.Equal(t, 0, table.LastRaiseSize)
	for _, p := range table.Players {
		assert.Equal(t, 0, p.Bet)
		assert.False(t, p.Acted)
		assert.Equal(t, 50, p.Committed)
	}

	for table.Street == Turn || table.Street == River {
		act(t, table, Check)
	}
	assert.Equal(t, Showdown, table.Street)
	assert.Len(t, table.Board, 5)
	assert.Len(t, table.History, 3+3+3+3)
}

func TestReraiseReopensAction(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	act(t, table, Bet, 10)   // seat 2
	act(t, table, Call)      // seat 0
	act(t, table, Raise, 30) // seat 1
	assert.Equal(t, Preflop, table.Street)
	assert.Equal(t, 2, table.CurrentPlayer)

	act(t, table, Call)
	assert.Equal(t, 0, table.CurrentPlayer)
	act(t, table, Call)
	assert.Equal(t, Flop, table.Street)
	assert.Equal(t, 90, table.Pot)
}

func TestAutoWin(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	act(t, table, Bet, 10)
	act(t, table, Fold)
	assert.Equal(t, NoSeat, table.AutoWin)
	act(t, table, Fold)

	assert.Equal(t, 2, table.AutoWin)
	assert.True(t, table.Terminal())
	assert.Equal(t, NoSeat, table.CurrentPlayer)
	assert.Equal(t, 10, table.Pot)
	assert.Equal(t, Preflop, table.Street)

	err := table.Apply(PendingAction{Seat: 2, Kind: Check})
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.Empty(t, table.LegalActions(2))
}

func TestUncalledBetReturned(t *testing.T) {
	table := newTestTable(t, 500, 200)

	act(t, table, Bet, 500)
	act(t, table, Call)

	assert.Equal(t, Showdown, table.Street)
	assert.Equal(t, 400, table.Pot)
	p, _ := table.Player(0)
	assert.Equal(t, 300, p.Stack)
	assert.Equal(t, 200, p.Committed)
	assert.False(t, p.AllIn)
}

func TestShortAllInCallKeepsOthersBetting(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 50)

	act(t, table, Check)    // seat 2
	act(t, table, Bet, 100) // seat 0
	act(t, table, Call)     // seat 1
	act(t, table, Call)     // seat 2, all-in for 50

	p, _ := table.Player(2)
	assert.True(t, p.AllIn)
	assert.Equal(t, Flop, table.Street)
	assert.Equal(t, 250, table.Pot)
	assert.Equal(t, 1, table.CurrentPlayer)

	act(t, table, Check)
	assert.Equal(t, 0, table.CurrentPlayer, "all-in seat is skipped")
}

func TestEmptyStackIsDealtOut(t *testing.T) {
	table := newTestTable(t, 100, 0, 100)

	p, _ := table.Player(1)
	assert.True(t, p.Folded)
	assert.Empty(t, p.Hole)
	assert.Empty(t, table.LegalActions(1))
	assert.Equal(t, 2, table.CurrentPlayer)

	act(t, table, Check)
	act(t, table, Check)
	assert.Equal(t, Flop, table.Street)
	assert.Equal(t, 2, table.CurrentPlayer, "dealt-out big blind is skipped")
}

func TestNewTableValidation(t *testing.T) {
	board := poker.MustParseCards("2c3d4c5d6c")
	hole := poker.MustParseCards("AsAh")

	tests := []struct {
		name string
		cfg  TableConfig
	}{
		{"one seat", TableConfig{Seats: []SeatConfig{{Stack: 10, Hole: hole}}, Community: board}},
		{"one funded seat", TableConfig{Seats: []SeatConfig{{Stack: 10, Hole: hole}, {Stack: 0}}, Community: board}},
		{"button out of range", TableConfig{Seats: []SeatConfig{{Stack: 10, Hole: hole}, {Stack: 10, Hole: hole}}, Button: 2, Community: board}},
		{"short board", TableConfig{Seats: []SeatConfig{{Stack: 10, Hole: hole}, {Stack: 10, Hole: hole}}, Community: board[:3]}},
		{"missing hole cards", TableConfig{Seats: []SeatConfig{{Stack: 10, Hole: hole}, {Stack: 10}}, Community: board}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestActingOrder(t *testing.T) {
	tests := []struct {
		button, n         int
		preflop, postflop []int
	}{
		{0, 2, []int{0, 1}, []int{1, 0}},
		{1, 2, []int{1, 0}, []int{0, 1}},
		{0, 3, []int{2, 0, 1}, []int{1, 2, 0}},
		{0, 4, []int{2, 3, 0, 1}, []int{1, 2, 3, 0}},
		{4, 6, []int{0, 1, 2, 3, 4, 5}, []int{5, 0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.preflop, PreflopOrder(tt.button, tt.n), "preflop btn=%d n=%d", tt.button, tt.n)
		assert.Equal(t, tt.postflop, PostflopOrder(tt.button, tt.n), "postflop btn=%d n=%d", tt.button, tt.n)
	}

	pos := PositionsFor(5, 6)
	assert.Equal(t, Positions{Button: 5, BigBlind: 0, UTG: 1, Cutoff: 2}, pos)
}

func TestPickPassiveAction(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)

	kind, ok := table.PickPassiveAction(table.CurrentPlayer)
	require.True(t, ok)
	assert.Equal(t, Check, kind)

	act(t, table, Bet, 10)
	kind, ok = table.PickPassiveAction(table.CurrentPlayer)
	require.True(t, ok)
	assert.Equal(t, Call, kind)

	_, ok = table.PickPassiveAction(99)
	assert.False(t, ok)
}

func TestSplitPot(t *testing.T) {
	assert.Equal(t, []int{51, 50}, SplitPot(101, []int{2, 5}))
	assert.Equal(t, []int{34, 33, 33}, SplitPot(100, []int{0, 1, 2}))
	assert.Equal(t, []int{7}, SplitPot(7, []int{3}))
	assert.Nil(t, SplitPot(10, nil))
}

func TestCloneIsDeep(t *testing.T) {
	table := newTestTable(t, 1000, 1000)
	act(t, table, Bet, 10)

	c := table.Clone()
	c.Players[0].Stack = 1
	c.Players[0].Hole[0] = poker.MustParseCard("2d")
	c.History[0].Amount = 999

	assert.Equal(t, 990, table.Players[0].Stack)
	assert.Equal(t, "As", table.Players[0].Hole[0].String())
	assert.Equal(t, 10, table.History[0].Amount)

	act(t, c, Call)
	assert.Equal(t, Flop, c.Street)
	assert.Equal(t, Preflop, table.Street)
	assert.Empty(t, table.Board)
}

func TestParseActionKind(t *testing.T) {
	for _, kind := range []ActionKind{Fold, Check, Call, Bet, Raise} {
		got, err := ParseActionKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	_, err := ParseActionKind("allin")
	assert.Error(t, err)
}
