package game

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/poker"
)

// NoSeat marks an unset seat index.
const NoSeat = -1

// MinBet is the smallest fresh bet and the smallest raise increment.
const MinBet = 1

// CommunityCards is the number of board cards reserved at hand start.
const CommunityCards = 5

var ErrInvalidTable = errors.New("invalid table")

// SeatConfig describes one seat at hand start.
type SeatConfig struct {
	UserID string
	Stack  int
	Hole   []poker.Card
}

// TableConfig holds everything needed to open a hand.
type TableConfig struct {
	Seats     []SeatConfig
	Button    int
	Community []poker.Card // the five board cards, revealed street by street
}

// Table is the betting state of one hand. It is not safe for concurrent
// use; the owner serializes access.
type Table struct {
	Players       []Player       `json:"players"`
	Button        int            `json:"button"`
	Street        Street         `json:"street"`
	Pot           int            `json:"pot"`
	CurrentBet    int            `json:"currentBet"`
	LastRaiseSize int            `json:"lastRaiseSize"`
	CurrentPlayer int            `json:"currentPlayer"`
	Board         []poker.Card   `json:"board"`
	AutoWin       int            `json:"autoWin"`
	History       []ActionRecord `json:"history"`

	upcoming []poker.Card
}

// ActionRecord is an applied action and the street it was taken on.
type ActionRecord struct {
	Street Street `json:"street"`
	PendingAction
}

// NewTable builds the opening state of a hand. Seats without chips are dealt
// out. At least two funded seats are required.
func NewTable(cfg TableConfig) (*Table, error) {
	n := len(cfg.Seats)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d seats", ErrInvalidTable, n)
	}
	if cfg.Button < 0 || cfg.Button >= n {
		return nil, fmt.Errorf("%w: button %d out of range", ErrInvalidTable, cfg.Button)
	}
	if len(cfg.Community) != CommunityCards {
		return nil, fmt.Errorf("%w: %d community cards", ErrInvalidTable, len(cfg.Community))
	}

	t := &Table{
		Players:       make([]Player, n),
		Button:        cfg.Button,
		Street:        Preflop,
		CurrentPlayer: NoSeat,
		AutoWin:       NoSeat,
		upcoming:      append([]poker.Card(nil), cfg.Community...),
	}

	funded := 0
	for i, s := range cfg.Seats {
		p := Player{Seat: i, UserID: s.UserID, Stack: s.Stack}
		if s.Stack > 0 {
			if len(s.Hole) != 2 {
				return nil, fmt.Errorf("%w: seat %d has %d hole cards", ErrInvalidTable, i, len(s.Hole))
			}
			p.Hole = append([]poker.Card(nil), s.Hole...)
			funded++
		} else {
			p.Folded = true
		}
		t.Players[i] = p
	}
	if funded < 2 {
		return nil, fmt.Errorf("%w: %d funded seats", ErrInvalidTable, funded)
	}

	t.CurrentPlayer = t.firstToAct()
	return t, nil
}

// Positions names the seats relative to the button.
type Positions struct {
	Button   int `json:"button"`
	BigBlind int `json:"bigBlind"`
	UTG      int `json:"utg"`
	Cutoff   int `json:"cutoff"`
}

// PositionsFor computes positions for a table of n seats. With fewer than
// four seats the positions wrap onto each other.
func PositionsFor(button, n int) Positions {
	return Positions{
		Button:   button,
		BigBlind: (button + 1) % n,
		UTG:      (button + 2) % n,
		Cutoff:   (button + 3) % n,
	}
}

// PreflopOrder lists every seat in preflop acting order: UTG first, the big
// blind last.
func PreflopOrder(button, n int) []int {
	return seatsFrom(PositionsFor(button, n).UTG, n)
}

// PostflopOrder lists every seat in postflop acting order, big blind first.
func PostflopOrder(button, n int) []int {
	return seatsFrom(PositionsFor(button, n).BigBlind, n)
}

func seatsFrom(start, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = (start + i) % n
	}
	return order
}

// Order returns the acting order for the current street.
func (t *Table) Order() []int {
	if t.Street == Preflop {
		return PreflopOrder(t.Button, len(t.Players))
	}
	return PostflopOrder(t.Button, len(t.Players))
}

// Terminal reports whether no further betting can happen.
func (t *Table) Terminal() bool {
	return t.AutoWin != NoSeat || t.Street == Showdown
}

// Unfolded returns the seats still contesting the pot.
func (t *Table) Unfolded() []int {
	var seats []int
	for i := range t.Players {
		if !t.Players[i].Folded {
			seats = append(seats, i)
		}
	}
	return seats
}

// Player returns a copy of the player in seat.
func (t *Table) Player(seat int) (Player, bool) {
	p := t.player(seat)
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

func (t *Table) player(seat int) *Player {
	if seat < 0 || seat >= len(t.Players) {
		return nil
	}
	return &t.Players[seat]
}

// firstToAct finds the first live seat in the street's order.
func (t *Table) firstToAct() int {
	for _, seat := range t.Order() {
		if t.Players[seat].Live() {
			return seat
		}
	}
	return NoSeat
}

// nextLive finds the next live seat after seat, wrapping around the table.
func (t *Table) nextLive(seat int) int {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		next := (seat + i) % n
		if t.Players[next].Live() {
			return next
		}
	}
	return NoSeat
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := *t
	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		p.Hole = append([]poker.Card(nil), p.Hole...)
		c.Players[i] = p
	}
	c.Board = append([]poker.Card(nil), t.Board...)
	c.History = append([]ActionRecord(nil), t.History...)
	c.upcoming = append([]poker.Card(nil), t.upcoming...)
	return &c
}
