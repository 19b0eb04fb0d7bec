package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/rawvec/cmd/vecctl/logger"
	"github.com/joshuapare/rawvec/vector"
	"github.com/joshuapare/rawvec/vector/elem/elemtest"
)

var growthN int

func init() {
	rootCmd.AddCommand(newGrowthCmd())
}

func newGrowthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Show the capacity schedule of sequential appends",
		Long: `The growth command appends N elements to an empty vector and prints
every reallocation: the append that triggered it, the old and new capacity and
how many elements were relocated.

Example:
  vecctl growth --n 1000
  vecctl growth --n 1000000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(growthN)
		},
	}
	cmd.Flags().IntVarP(&growthN, "n", "n", 20, "Number of appends")
	return cmd
}

// GrowthStep is one reallocation.
type GrowthStep struct {
	Append    int `json:"append"`
	OldCap    int `json:"old_cap"`
	NewCap    int `json:"new_cap"`
	Relocated int `json:"relocated"`
}

// GrowthReport summarizes N appends.
type GrowthReport struct {
	Appends     int          `json:"appends"`
	FinalCap    int          `json:"final_cap"`
	Relocations int          `json:"relocations"`
	Steps       []GrowthStep `json:"steps"`
}

// measureGrowth appends n elements and records every capacity change.
func measureGrowth(n int) (*GrowthReport, error) {
	if n < 0 {
		return nil, vector.ErrNegativeLength
	}
	tr := elemtest.NewTracker()
	tr.NoFailMove = true
	v := vector.New(&vector.Options[elemtest.Probe]{Lifecycle: tr, Logger: logger.L})
	defer v.Release()

	rep := &GrowthReport{Appends: n}
	for i := range n {
		oldCap, before := v.Cap(), tr.Relocations()
		p := tr.Make(i)
		err := v.PushBackMove(&p)
		tr.Drop(&p)
		if err != nil {
			return nil, err
		}
		if v.Cap() != oldCap {
			rep.Steps = append(rep.Steps, GrowthStep{
				Append:    i + 1,
				OldCap:    oldCap,
				NewCap:    v.Cap(),
				Relocated: tr.Relocations() - before - 1, // minus the appended element
			})
		}
	}
	rep.FinalCap = v.Cap()
	for _, s := range rep.Steps {
		rep.Relocations += s.Relocated
	}
	return rep, nil
}

func runGrowth(n int) error {
	rep, err := measureGrowth(n)
	if err != nil {
		return fmt.Errorf("failed to measure growth: %w", err)
	}

	if jsonOut {
		return printJSON(rep)
	}

	p := message.NewPrinter(language.English)
	printInfo("\nGrowth schedule for %s appends:\n\n", p.Sprintf("%d", rep.Appends))
	printInfo("  %12s %12s %12s %12s\n", "append", "old cap", "new cap", "relocated")
	for _, s := range rep.Steps {
		printInfo("  %12s %12s %12s %12s\n",
			p.Sprintf("%d", s.Append),
			p.Sprintf("%d", s.OldCap),
			p.Sprintf("%d", s.NewCap),
			p.Sprintf("%d", s.Relocated),
		)
	}
	printInfo("\n  Final capacity: %s\n", p.Sprintf("%d", rep.FinalCap))
	printInfo("  Total relocations: %s (%.2f per append)\n",
		p.Sprintf("%d", rep.Relocations), perAppend(rep.Relocations, rep.Appends))
	return nil
}

func perAppend(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
