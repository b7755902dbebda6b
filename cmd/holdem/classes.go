package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/holdem-engine/internal/dealing"
	"github.com/lox/holdem-engine/poker"
)

type ClassesCmd struct {
	Mode     string `short:"m" help:"Weight mode (dense|superDense), defaults to config"`
	Weighted bool   `short:"w" help:"Only list classes with a positive weight"`
}

func (c *ClassesCmd) Run(g *Globals) error {
	rt, err := g.setup()
	if err != nil {
		return err
	}
	mode, err := rt.mode(c.Mode)
	if err != nil {
		return err
	}

	// Built only for the total; an empty table still lists its zeros.
	var total float64
	if prep, err := dealing.BuildPrep(rt.weights, mode); err == nil {
		total = prep.TotalWeight
	} else if c.Weighted {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Hand classes (%s)", mode)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tCOMBOS\tWEIGHT\tEFFECTIVE\tSHARE")

	listed := 0
	for _, key := range poker.ClassKeys() {
		weight := rt.weights.Weight(key, mode)
		if c.Weighted && weight <= 0 {
			continue
		}
		combos := poker.ComboCount(key)
		effective := max(weight, 0) * float64(combos)
		share := 0.0
		if total > 0 {
			share = effective / total * 100
		}
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.2f%%\n", key, combos, weight, effective, share)
		listed++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d classes, total effective weight %.4g", listed, total)))
	return nil
}
