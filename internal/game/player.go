package game

import (
	"github.com/lox/holdem-engine/poker"
)

// Player represents a seat in a hand
type Player struct {
	Seat      int          `json:"seat"`
	UserID    string       `json:"userId,omitempty"`
	Hole      []poker.Card `json:"hole"`
	Stack     int          `json:"stack"`
	Bet       int          `json:"bet"`       // Committed on the current street
	Committed int          `json:"committed"` // Committed over the whole hand
	Folded    bool         `json:"folded"`
	AllIn     bool         `json:"allIn"`
	Acted     bool         `json:"acted"`
}

// Live returns true if the player can still act
func (p *Player) Live() bool {
	return !p.Folded && !p.AllIn
}

func (p *Player) commit(amount int) {
	p.Stack -= amount
	p.Bet += amount
	p.Committed += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
}
