package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/holdem-engine/internal/dealing"
	"github.com/lox/holdem-engine/poker"
)

type DealCmd struct {
	Seats    int      `short:"s" default:"6" help:"Number of seats to deal (2-8)"`
	Order    []int    `help:"Seat order to deal in, comma separated"`
	Board    []string `short:"b" help:"Preset board cards to reserve first, comma separated"`
	Mode     string   `short:"m" help:"Weight mode (dense|superDense), defaults to config"`
	Shuffled bool     `help:"Fill the reserved board block from a shuffled deck"`
	JSON     bool     `help:"Print the deal as JSON"`
}

func (c *DealCmd) Run(g *Globals) error {
	rt, err := g.setup()
	if err != nil {
		return err
	}
	mode, err := rt.mode(c.Mode)
	if err != nil {
		return err
	}

	dealer := dealing.NewDealer(rt.weights, rt.rng, rt.logger)
	req := dealing.DealRequest{
		SeatCount:     c.Seats,
		PlayerOrder:   c.Order,
		BoardReserved: c.Board,
		Mode:          mode,
	}
	if c.Shuffled {
		req.Policy = dealing.Shuffled
	}

	resp, err := dealer.Deal(req)
	if err != nil {
		return err
	}
	rt.logger.Debug("Dealt hands", "hand_id", resp.HandID, "attempts", resp.Attempts)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" Deal %s ", resp.HandID)))
	fmt.Println()
	for seat, hand := range resp.Hands {
		c1, err := poker.ParseCard(hand[0])
		if err != nil {
			return err
		}
		c2, err := poker.ParseCard(hand[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s  %s\n",
			labelStyle.Render(fmt.Sprintf("Seat %d", seat)),
			renderCards([]poker.Card{c1, c2}),
			dimStyle.Render(poker.ClassKey(c1, c2)))
	}
	fmt.Println()
	fmt.Printf("%s %s\n", labelStyle.Render("Board"), renderIDs(resp.BoardReserved[:5]))
	fmt.Printf("%s %s\n", labelStyle.Render("Reserve"), renderIDs(resp.BoardReserved[5:]))
	fmt.Printf("%s %s\n", labelStyle.Render("Mode"), dimStyle.Render(string(resp.Mode)))
	return nil
}
