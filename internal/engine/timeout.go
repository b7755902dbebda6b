package engine

import (
	"time"

	"github.com/lox/holdem-engine/internal/game"
)

// TimeoutReason says why an action was forced.
type TimeoutReason string

const (
	// ReasonDisconnect means the player had been silent for longer than the
	// reconnect grace when the deadline passed.
	ReasonDisconnect TimeoutReason = "disconnect"
	// ReasonClock is an ordinary expiry of the action clock.
	ReasonClock TimeoutReason = "clock"
)

// AutoAction describes an action the engine took on a player's behalf.
type AutoAction struct {
	Seat   int             `json:"seat"`
	Kind   game.ActionKind `json:"kind"`
	Reason TimeoutReason   `json:"reason"`
}

// DecideTimeout picks the forced action for seat when its deadline passes.
// Both branches check when checking is legal and fold otherwise; the reason
// only records whether the player counts as disconnected.
func DecideTimeout(t *game.Table, seat int, lastSeen, now time.Time, grace time.Duration) (game.ActionKind, TimeoutReason) {
	reason := ReasonClock
	if now.Sub(lastSeen) > grace {
		reason = ReasonDisconnect
	}
	if t.IsLegal(seat, game.Check) {
		return game.Check, reason
	}
	return game.Fold, reason
}
