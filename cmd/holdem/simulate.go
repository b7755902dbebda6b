package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/engine"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

type SimulateCmd struct {
	Rooms      int     `short:"r" default:"4" help:"Number of rooms to play in parallel"`
	Players    int     `short:"p" default:"6" help:"Players per room (2-8)"`
	Hands      int     `short:"n" default:"10" help:"Hands to play per room"`
	Room       string  `default:"main" help:"Room config block to use for stacks and timers"`
	Aggression float64 `default:"0.15" help:"Chance a bot bets or min-raises instead of checking or calling"`
	Quiet      bool    `short:"q" help:"Only print the final stacks"`
}

// roomResult is what one room goroutine reports back.
type roomResult struct {
	room        *engine.Room
	settlements []engine.Update
	played      int
}

func (c *SimulateCmd) Run(g *Globals) error {
	rt, err := g.setup()
	if err != nil {
		return err
	}
	if c.Players < 2 || c.Players > 8 {
		return fmt.Errorf("players must be between 2 and 8, got %d", c.Players)
	}
	roomCfg := rt.cfg.Room(c.Room)
	if err := roomCfg.Validate(); err != nil {
		return err
	}
	if c.Players > roomCfg.MaxSeats {
		return fmt.Errorf("room %q seats at most %d players", c.Room, roomCfg.MaxSeats)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.Options{
		Rand:       rt.rng,
		Logger:     rt.logger,
		AutoSettle: true,
	})

	rt.logger.Info("Starting simulation",
		"rooms", c.Rooms,
		"players", c.Players,
		"hands", c.Hands,
		"seed", rt.seed)

	results := make([]*roomResult, c.Rooms)
	grp, ctx := errgroup.WithContext(ctx)
	for i := range c.Rooms {
		users := make([]string, c.Players)
		for j := range users {
			users[j] = fmt.Sprintf("bot-%d-%d", i+1, j+1)
		}
		room := engine.NewRoom(fmt.Sprintf("%s-%d", c.Room, i+1), roomCfg, users...)
		bots := randutil.New(rt.seed + int64(i) + 1)

		grp.Go(func() error {
			res, err := c.playRoom(ctx, eng, room, bots, rt.logger)
			results[i] = res
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	c.report(results)
	return nil
}

func (c *SimulateCmd) playRoom(ctx context.Context, eng *engine.Engine, room *engine.Room, bots randutil.Source, logger *log.Logger) (*roomResult, error) {
	res := &roomResult{room: room}

	// Handlers run on whichever goroutine moved the hand, including timer
	// callbacks, so the slice needs its own lock.
	var mu sync.Mutex
	unsubscribe := eng.Subscribe(room.ID, func(u engine.Update) {
		if u.Type != engine.UpdateSettled {
			return
		}
		mu.Lock()
		res.settlements = append(res.settlements, u)
		mu.Unlock()
	})
	defer unsubscribe()
	defer eng.CloseRoom(room.ID)

	for range c.Hands {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		state, err := eng.StartHand(room)
		if errors.Is(err, engine.ErrNotEnoughPlayers) {
			logger.Info("Room finished early", "room", room.ID, "hands", res.played)
			break
		}
		if err != nil {
			return res, err
		}

		for !state.Ended {
			a := chooseAction(state.Table, bots, c.Aggression)
			next, ok := eng.ApplyPlayerAction(room.ID, a)
			if !ok {
				return res, fmt.Errorf("room %s rejected %s", room.ID, a)
			}
			state = next
		}
		res.played++
	}
	return res, nil
}

// chooseAction plays passively, occasionally opening or min-raising when the
// stack allows it.
func chooseAction(t *game.Table, rng randutil.Source, aggression float64) game.PendingAction {
	seat := t.CurrentPlayer
	kind, _ := t.PickPassiveAction(seat)
	a := game.PendingAction{Seat: seat, Kind: kind}

	if rng.Float64() >= aggression {
		return a
	}
	sized := game.Bet
	if t.CurrentBet > 0 {
		sized = game.Raise
	}
	amount := t.MinRaiseTo()
	if t.IsLegal(seat, sized) && t.ValidateBetOrRaise(seat, amount) == nil {
		return game.PendingAction{Seat: seat, Kind: sized, Amount: amount}
	}
	return a
}

func (c *SimulateCmd) report(results []*roomResult) {
	fmt.Println(titleStyle.Render(" Simulation "))
	fmt.Println()

	for _, res := range results {
		if res == nil {
			continue
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%s  %d hands", res.room.ID, res.played)))

		if !c.Quiet {
			for _, u := range res.settlements {
				s := u.State.Settlement
				line := fmt.Sprintf("  %s  pot %d  board %s", u.State.HandID, s.Pot, renderCards(u.State.Table.Board))
				for i, seat := range s.Winners {
					line += winStyle.Render(fmt.Sprintf("  seat %d +%d", seat, s.Shares[i]))
				}
				if s.AutoWin {
					line += dimStyle.Render("  (uncontested)")
				}
				fmt.Println(line)
			}
		}

		for i, seat := range res.room.Seats {
			fmt.Printf("  %s %d\n", labelStyle.Render(fmt.Sprintf("Seat %d", i)), seat.Stack)
		}
		fmt.Println()
	}
}
