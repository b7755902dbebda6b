// Package engine orchestrates hands of Hold'em for a set of rooms.
//
// Each room has at most one live hand. All changes to a room, including
// player actions, deadline timeouts and settlement, run under that room's
// lock, so a timer firing and a player acting on the same turn are applied
// one after the other. Notifications are queued under the lock and delivered
// in order once it is released. Rooms are independent of each other.
package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

var (
	ErrNoHand           = errors.New("no hand in progress")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrHandInProgress   = errors.New("hand already in progress")
	ErrHandNotFinished  = errors.New("hand not finished")
	ErrUnknownRoom      = errors.New("unknown room")
)

// HandState is the orchestrator's view of one hand.
type HandState struct {
	HandID     string      `json:"handId"`
	Table      *game.Table `json:"table"`
	Deadline   time.Time   `json:"deadline"`
	LastSeen   []time.Time `json:"lastSeen"`
	Ended      bool        `json:"ended"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

// Clone returns a deep copy safe to hand to other goroutines.
func (h *HandState) Clone() *HandState {
	c := *h
	c.Table = h.Table.Clone()
	c.LastSeen = append([]time.Time(nil), h.LastSeen...)
	if h.Settlement != nil {
		s := *h.Settlement
		s.Winners = append([]int(nil), s.Winners...)
		s.Shares = append([]int(nil), s.Shares...)
		s.Hands = append([]ShowdownHand(nil), s.Hands...)
		c.Settlement = &s
	}
	return &c
}

// Options configures an Engine. Zero values pick real implementations.
type Options struct {
	Clock  quartz.Clock
	Rand   randutil.Source
	Logger *log.Logger
	// AutoSettle settles a hand as soon as it becomes terminal.
	AutoSettle bool
}

// Engine owns the live hand of every room it has seen.
type Engine struct {
	clock      quartz.Clock
	rng        randutil.Source
	ids        *handid.Generator
	logger     *log.Logger
	hub        *Hub
	autoSettle bool

	mu    sync.Mutex
	rooms map[string]*roomState
}

type roomState struct {
	mu       sync.Mutex
	room     *Room
	hand     *HandState
	lastSeen []time.Time
	started  int

	timer *quartz.Timer
	gen   uint64

	closed bool
	logger *log.Logger

	outbox   []Update
	draining bool
}

// New creates an engine.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Rand == nil {
		rng, _ := randutil.NewTimeSeeded()
		opts.Rand = rng
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rng := randutil.Locked(opts.Rand)

	return &Engine{
		clock:      opts.Clock,
		rng:        rng,
		ids:        handid.NewGenerator(rng),
		logger:     opts.Logger.WithPrefix("engine"),
		hub:        NewHub(),
		autoSettle: opts.AutoSettle,
		rooms:      make(map[string]*roomState),
	}
}

// Subscribe registers h for updates about roomID.
func (e *Engine) Subscribe(roomID string, h Handler) func() {
	return e.hub.Subscribe(roomID, h)
}

func (e *Engine) roomFor(room *Room) *roomState {
	e.mu.Lock()
	defer e.mu.Unlock()

	rs, ok := e.rooms[room.ID]
	if !ok {
		rs = &roomState{
			room:   room,
			logger: e.logger.With("room", room.ID),
		}
		e.rooms[room.ID] = rs
	}
	return rs
}

func (e *Engine) lookup(roomID string) (*roomState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rs, ok := e.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	return rs, nil
}

// StartHand shuffles a fresh deck, deals two cards to every seat with chips,
// reserves five board cards and opens the betting. The button moves one seat
// on from the previous hand.
func (e *Engine) StartHand(room *Room) (*HandState, error) {
	rs := e.roomFor(room)
	rs.mu.Lock()
	defer e.unlock(rs)

	if rs.closed {
		return nil, fmt.Errorf("%w: %s is closed", ErrUnknownRoom, room.ID)
	}
	rs.room = room
	if rs.hand != nil && !rs.hand.Ended {
		return nil, ErrHandInProgress
	}

	n := len(room.Seats)
	limit := room.Config.MaxSeats
	if limit <= 0 || limit > maxSeats {
		limit = maxSeats
	}
	if n > limit {
		return nil, fmt.Errorf("room %s has %d seats, at most %d are allowed", room.ID, n, limit)
	}
	if room.funded() < 2 {
		return nil, fmt.Errorf("%w: %d of %d seats have chips", ErrNotEnoughPlayers, room.funded(), n)
	}

	button := room.Button % n
	if rs.started > 0 {
		button = (room.Button + 1) % n
	}
	room.Button = button

	deck := poker.NewShuffledDeck(e.rng)
	seats := make([]game.SeatConfig, n)
	for i, s := range room.Seats {
		seats[i] = game.SeatConfig{UserID: s.UserID, Stack: s.Stack}
		if s.Stack > 0 {
			seats[i].Hole = deck.Deal(2)
		}
	}
	table, err := game.NewTable(game.TableConfig{
		Seats:     seats,
		Button:    button,
		Community: deck.Deal(game.CommunityCards),
	})
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if len(rs.lastSeen) != n {
		rs.lastSeen = make([]time.Time, n)
	}
	for i := range rs.lastSeen {
		rs.lastSeen[i] = now
	}

	rs.started++
	rs.hand = &HandState{
		HandID:   e.ids.Generate(),
		Table:    table,
		LastSeen: rs.lastSeen,
	}
	rs.logger.Info("Hand started", "hand_id", rs.hand.HandID, "button", button, "players", room.funded())

	e.afterChange(rs, nil)
	return rs.hand.Clone(), nil
}

// ApplyPlayerAction applies a player's action. It reports false, with the
// unchanged state, when the action had no effect: the hand is over, it is
// not the player's turn, or the action is not allowed.
func (e *Engine) ApplyPlayerAction(roomID string, a game.PendingAction) (*HandState, bool) {
	rs, err := e.lookup(roomID)
	if err != nil {
		return nil, false
	}
	rs.mu.Lock()
	defer e.unlock(rs)

	if rs.hand == nil {
		return nil, false
	}
	if rs.hand.Ended {
		return rs.hand.Clone(), false
	}

	if err := rs.hand.Table.Apply(a); err != nil {
		rs.logger.Debug("Rejected action", "action", a, "error", err)
		return rs.hand.Clone(), false
	}
	rs.lastSeen[a.Seat] = e.clock.Now()
	rs.logger.Debug("Applied action", "action", a, "street", rs.hand.Table.Street, "pot", rs.hand.Table.Pot)

	e.afterChange(rs, nil)
	return rs.hand.Clone(), true
}

// MarkSeen records activity from the player in seat.
func (e *Engine) MarkSeen(roomID string, seat int) error {
	rs, err := e.lookup(roomID)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if seat < 0 || seat >= len(rs.lastSeen) {
		return fmt.Errorf("seat %d out of range", seat)
	}
	rs.lastSeen[seat] = e.clock.Now()
	return nil
}

// SetConnected updates a seat's connection flag. Reconnecting counts as
// activity; disconnecting leaves the last-seen time alone.
func (e *Engine) SetConnected(roomID string, seat int, connected bool) error {
	rs, err := e.lookup(roomID)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if seat < 0 || seat >= len(rs.room.Seats) {
		return fmt.Errorf("seat %d out of range", seat)
	}
	rs.room.Seats[seat].Connected = connected
	if connected && seat < len(rs.lastSeen) {
		rs.lastSeen[seat] = e.clock.Now()
	}
	rs.logger.Debug("Connection changed", "seat", seat, "connected", connected)
	return nil
}

// Settle pays out a terminal hand, writes the stacks back to the room and
// marks the hand ended. Settling an ended hand returns its settlement again.
func (e *Engine) Settle(roomID string) (*Settlement, error) {
	rs, err := e.lookup(roomID)
	if err != nil {
		return nil, err
	}
	rs.mu.Lock()
	defer e.unlock(rs)

	if rs.hand == nil {
		return nil, ErrNoHand
	}
	if rs.hand.Ended {
		return rs.hand.Clone().Settlement, nil
	}
	if !rs.hand.Table.Terminal() {
		return nil, fmt.Errorf("%w: %s with seat %d to act", ErrHandNotFinished, rs.hand.Table.Street, rs.hand.Table.CurrentPlayer)
	}

	e.settleLocked(rs)
	return rs.hand.Clone().Settlement, nil
}

// ClearHand tears down the room's hand. A hand cleared before settlement
// leaves the room's stacks as they were when it started.
func (e *Engine) ClearHand(roomID string) error {
	rs, err := e.lookup(roomID)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	defer e.unlock(rs)

	if rs.hand == nil {
		return ErrNoHand
	}
	e.clearLocked(rs)
	return nil
}

// CloseRoom cancels the room's timer, clears its hand and drops every
// subscriber.
func (e *Engine) CloseRoom(roomID string) {
	e.mu.Lock()
	rs, ok := e.rooms[roomID]
	delete(e.rooms, roomID)
	e.mu.Unlock()

	if ok {
		rs.mu.Lock()
		if rs.hand != nil {
			e.clearLocked(rs)
		}
		e.cancelTimer(rs)
		rs.closed = true
		rs.logger.Info("Room closed")
		e.unlock(rs)
	}
	e.hub.Close(roomID)
}

// State returns a copy of the room's current hand.
func (e *Engine) State(roomID string) (*HandState, bool) {
	rs, err := e.lookup(roomID)
	if err != nil {
		return nil, false
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.hand == nil {
		return nil, false
	}
	return rs.hand.Clone(), true
}

// unlock releases the room lock and delivers any queued updates. Only one
// goroutine delivers for a room at a time; an update queued by a handler
// reacting to an earlier one is delivered after that handler returns.
func (e *Engine) unlock(rs *roomState) {
	if rs.draining {
		rs.mu.Unlock()
		return
	}
	rs.draining = true
	for len(rs.outbox) > 0 {
		batch := rs.outbox
		rs.outbox = nil
		rs.mu.Unlock()
		for _, u := range batch {
			e.hub.Publish(u)
		}
		rs.mu.Lock()
	}
	rs.draining = false
	rs.mu.Unlock()
}

// afterChange reschedules the deadline and queues the new state. It must be
// called with rs.mu held after every mutation of the hand.
func (e *Engine) afterChange(rs *roomState, auto *AutoAction) {
	e.schedule(rs)
	rs.outbox = append(rs.outbox, Update{Type: UpdateGame, RoomID: rs.room.ID, State: rs.hand.Clone(), Auto: auto})

	if e.autoSettle && rs.hand.Table.Terminal() {
		e.settleLocked(rs)
	}
}

// schedule replaces the room's deadline timer. No timer is set once nobody
// is left to act.
func (e *Engine) schedule(rs *roomState) {
	e.cancelTimer(rs)

	h := rs.hand
	if h.Ended || h.Table.Terminal() || h.Table.CurrentPlayer == game.NoSeat {
		h.Deadline = time.Time{}
		return
	}

	d := rs.room.Config.ActionTimeout()
	if d <= 0 {
		d = defaultActionSeconds * time.Second
	}
	h.Deadline = e.clock.Now().Add(d)
	gen := rs.gen
	rs.timer = e.clock.AfterFunc(d, func() {
		e.onDeadline(rs, gen)
	}, "engine", "deadline")
}

// cancelTimer stops any pending timer and invalidates callbacks already in
// flight.
func (e *Engine) cancelTimer(rs *roomState) {
	rs.gen++
	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}
}

// onDeadline forces an action for the player to act, unless the deadline it
// was scheduled for has been superseded.
func (e *Engine) onDeadline(rs *roomState, gen uint64) {
	rs.mu.Lock()
	defer e.unlock(rs)

	if gen != rs.gen || rs.closed || rs.hand == nil || rs.hand.Ended {
		rs.logger.Debug("Ignoring stale deadline", "generation", gen, "current", rs.gen)
		return
	}
	rs.timer = nil

	t := rs.hand.Table
	seat := t.CurrentPlayer
	if seat == game.NoSeat {
		return
	}

	now := e.clock.Now()
	idle := now.Sub(rs.lastSeen[seat])
	kind, reason := DecideTimeout(t, seat, rs.lastSeen[seat], now, rs.room.Config.ReconnectGrace())
	if err := t.Apply(game.PendingAction{Seat: seat, Kind: kind}); err != nil {
		rs.logger.Error("Forced action rejected", "seat", seat, "action", kind, "error", err)
		return
	}
	rs.lastSeen[seat] = now
	rs.logger.Info("Forced action", "seat", seat, "action", kind, "reason", reason, "idle", idle)

	e.afterChange(rs, &AutoAction{Seat: seat, Kind: kind, Reason: reason})
}

func (e *Engine) settleLocked(rs *roomState) {
	e.cancelTimer(rs)

	h := rs.hand
	t := h.Table
	s := settleTable(t)

	seats := rs.room.Seats
	for i := range t.Players {
		if i < len(seats) {
			seats[i].Stack = t.Players[i].Stack
		}
	}
	for i, seat := range s.Winners {
		if seat < len(seats) {
			seats[seat].Stack += s.Shares[i]
		}
	}

	h.Ended = true
	h.Deadline = time.Time{}
	h.Settlement = &s
	rs.logger.Info("Hand settled", "hand_id", h.HandID, "winners", s.Winners, "shares", s.Shares, "pot", s.Pot)

	rs.outbox = append(rs.outbox, Update{Type: UpdateSettled, RoomID: rs.room.ID, State: h.Clone()})
}

func (e *Engine) clearLocked(rs *roomState) {
	e.cancelTimer(rs)
	if !rs.hand.Ended {
		rs.logger.Warn("Clearing unfinished hand", "hand_id", rs.hand.HandID)
	}
	rs.hand = nil
	rs.outbox = append(rs.outbox, Update{Type: UpdateClear, RoomID: rs.room.ID})
}
