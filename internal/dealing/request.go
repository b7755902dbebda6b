package dealing

import "fmt"

// DealRequest is the externally supplied shape of a deal.
type DealRequest struct {
	SeatCount     int         `json:"seatCount"`
	PlayerOrder   []int       `json:"playerOrder,omitempty"`
	BoardReserved []string    `json:"boardReserved,omitempty"`
	Mode          Mode        `json:"mode,omitempty"`
	Policy        BoardPolicy `json:"-"`
}

// DealResponse adds the finalized reserved block to a DealResult.
type DealResponse struct {
	*DealResult
	BoardReserved []string `json:"boardReserved"`
}

// Normalize clamps the seat count, fills in the default order and mode, and
// rejects anything else that is malformed. It does not mutate req.
func (req DealRequest) Normalize() (DealRequest, error) {
	out := req
	if out.SeatCount < MinSeats {
		out.SeatCount = MinSeats
	}
	if out.SeatCount > MaxSeats {
		out.SeatCount = MaxSeats
	}

	if len(out.PlayerOrder) == 0 {
		out.PlayerOrder = make([]int, out.SeatCount)
		for i := range out.PlayerOrder {
			out.PlayerOrder[i] = i
		}
	} else {
		out.PlayerOrder = append([]int(nil), out.PlayerOrder...)
	}
	if err := validateOrder(out.SeatCount, out.PlayerOrder); err != nil {
		return DealRequest{}, err
	}

	if out.Mode == "" {
		out.Mode = ModeDense
	}
	if _, err := ParseMode(string(out.Mode)); err != nil {
		return DealRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if len(out.BoardReserved) > BoardReserveSize {
		return DealRequest{}, fmt.Errorf("%w: %d preset board cards, at most %d", ErrInvalidRequest, len(out.BoardReserved), BoardReserveSize)
	}
	return out, nil
}

// Deal validates req, reserves the board and deals every seat.
func (d *Dealer) Deal(req DealRequest) (*DealResponse, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	board, err := d.ReserveBoard(BoardOptions{Preset: req.BoardReserved, Policy: req.Policy})
	if err != nil {
		return nil, err
	}

	result, err := d.DealHands(DealInput{
		SeatCount:     req.SeatCount,
		PlayerOrder:   req.PlayerOrder,
		BoardReserved: board,
		Mode:          req.Mode,
	})
	if err != nil {
		return nil, err
	}
	return &DealResponse{DealResult: result, BoardReserved: board}, nil
}
