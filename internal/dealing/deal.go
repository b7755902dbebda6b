// Package dealing deals weighted starting hands around a reserved board.
//
// A Dealer owns a weight table, a per-mode cache of combo preparation data
// and a randomness source. Hands are drawn by sampling a hand class in
// proportion to its effective weight, then a uniform combo within it; any
// collision with the reserved board or an earlier seat restarts the whole
// attempt so the weighting is not skewed.
package dealing

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

var (
	ErrInsufficientCards = errors.New("insufficient cards")
	ErrNoWeightedClasses = errors.New("no weighted hand classes")
	ErrDealExhausted     = errors.New("deal attempts exhausted")
	ErrInvalidRequest    = errors.New("invalid deal request")
	ErrUnknownMode       = errors.New("unknown dealing mode")
)

// MaxDealAttempts bounds full-attempt rejection sampling.
const MaxDealAttempts = 128

const (
	MinSeats = 2
	MaxSeats = 8
)

// DealInput is a validated request for one set of hands.
type DealInput struct {
	SeatCount     int
	PlayerOrder   []int
	BoardReserved []string
	Mode          Mode
}

// DealResult holds one hand per seat, indexed by seat.
type DealResult struct {
	HandID      string      `json:"handId"`
	Mode        Mode        `json:"mode"`
	SeatCount   int         `json:"seatCount"`
	PlayerOrder []int       `json:"playerOrder"`
	Hands       [][2]string `json:"hands"`
	Attempts    int         `json:"-"`
}

// Dealer deals weighted hands. It is safe for concurrent use.
type Dealer struct {
	prep   *PrepCache
	rng    randutil.Source
	ids    *handid.Generator
	logger *log.Logger
}

// NewDealer creates a dealer over weights. A nil rng is seeded from the
// clock and a nil logger discards output.
func NewDealer(weights WeightSource, rng randutil.Source, logger *log.Logger) *Dealer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rng == nil {
		seeded, _ := randutil.NewTimeSeeded()
		rng = seeded
	}
	rng = randutil.Locked(rng)
	d := &Dealer{
		prep:   NewPrepCache(weights),
		rng:    rng,
		ids:    handid.NewGenerator(rng),
		logger: logger.WithPrefix("dealer"),
	}
	if table, ok := weights.(WeightTable); ok {
		if unknown := table.UnknownKeys(); len(unknown) > 0 {
			d.logger.Warn("Weight table has unknown class keys", "keys", unknown)
		}
	}
	return d
}

// Prep exposes the cached preparation data for mode.
func (d *Dealer) Prep(mode Mode) (*ComboPrep, error) {
	return d.prep.Get(mode)
}

// DealHands deals one combo per seat in PlayerOrder, avoiding BoardReserved.
func (d *Dealer) DealHands(in DealInput) (*DealResult, error) {
	if err := validateOrder(in.SeatCount, in.PlayerOrder); err != nil {
		return nil, err
	}
	if _, err := ParseMode(string(in.Mode)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	reserved, err := poker.ParseCards(in.BoardReserved)
	if err != nil {
		return nil, err
	}
	prep, err := d.prep.Get(in.Mode)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= MaxDealAttempts; attempt++ {
		hands, ok := d.tryDeal(prep, in, reserved)
		if !ok {
			continue
		}

		result := &DealResult{
			HandID:      d.ids.Generate(),
			Mode:        in.Mode,
			SeatCount:   in.SeatCount,
			PlayerOrder: append([]int(nil), in.PlayerOrder...),
			Hands:       hands,
			Attempts:    attempt,
		}
		d.logger.Debug("Dealt hands", "hand_id", result.HandID, "mode", in.Mode, "seats", in.SeatCount, "attempts", attempt)
		return result, nil
	}

	d.logger.Warn("Deal exhausted", "mode", in.Mode, "seats", in.SeatCount, "reserved", len(reserved))
	return nil, fmt.Errorf("%w after %d attempts", ErrDealExhausted, MaxDealAttempts)
}

// tryDeal makes one full attempt. Any collision abandons the attempt.
func (d *Dealer) tryDeal(prep *ComboPrep, in DealInput, reserved []poker.Card) ([][2]string, bool) {
	used := make(map[poker.Card]bool, len(reserved)+2*in.SeatCount)
	for _, c := range reserved {
		used[c] = true
	}

	hands := make([][2]string, in.SeatCount)
	for _, seat := range in.PlayerOrder {
		key := DrawWeightedKey(d.rng, prep.WeightedKeys, prep.TotalWeight)
		combos := prep.CombosByClass[key]
		combo := combos[d.rng.IntN(len(combos))]
		if combo.Overlaps(used) {
			return nil, false
		}
		used[combo[0]] = true
		used[combo[1]] = true
		hands[seat] = [2]string{combo[0].String(), combo[1].String()}
	}
	return hands, true
}

func validateOrder(seatCount int, order []int) error {
	if seatCount < MinSeats || seatCount > MaxSeats {
		return fmt.Errorf("%w: seat count %d outside [%d,%d]", ErrInvalidRequest, seatCount, MinSeats, MaxSeats)
	}
	if len(order) != seatCount {
		return fmt.Errorf("%w: player order has %d entries for %d seats", ErrInvalidRequest, len(order), seatCount)
	}
	seen := make([]bool, seatCount)
	for _, seat := range order {
		if seat < 0 || seat >= seatCount {
			return fmt.Errorf("%w: seat %d out of range", ErrInvalidRequest, seat)
		}
		if seen[seat] {
			return fmt.Errorf("%w: seat %d repeated", ErrInvalidRequest, seat)
		}
		seen[seat] = true
	}
	return nil
}
