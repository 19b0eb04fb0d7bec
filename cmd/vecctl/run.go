package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/rawvec/cmd/vecctl/logger"
)

var errScenarioUnclean = errors.New("scenario leaked elements or broke the element lifecycle")

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario of vector operations",
		Long: `The run command loads a YAML scenario, applies each step to a vector of
instrumented elements and prints the length, capacity and contents after every
step. Steps may inject a failure into the nth call of a lifecycle hook
(construct, copy, move, copy-assign, move-assign) to observe rollback.

Example:
  vecctl run testdata/growth_failure.yaml
  vecctl run testdata/growth_failure.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args)
		},
	}
	return cmd
}

func runScenario(args []string) error {
	path := args[0]
	printVerbose("Loading scenario: %s\n", path)

	sc, err := LoadScenario(path)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	rep := NewRunner(sc.Element, logger.L).Run(sc)

	if jsonOut {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		printReport(rep)
	}

	if rep.Leaked != 0 || len(rep.Violations) != 0 {
		return errScenarioUnclean
	}
	return nil
}

func printReport(rep *Report) {
	printInfo("\nScenario: %s (relocation: %s)\n\n", rep.Name, rep.Policy)
	printInfo("  %-4s %-8s %5s %5s %6s  %s\n", "#", "op", "len", "cap", "reloc", "values")
	for _, s := range rep.Steps {
		line := fmt.Sprintf("  %-4d %-8s %5d %5d %6d  %s", s.Step, s.Op, s.Len, s.Cap, s.Relocations, formatValues(s.Values))
		if s.Error != "" {
			line += "  ! " + s.Error
		}
		printInfo("%s\n", line)
	}

	printInfo("\nLifecycle:\n")
	if rep.Leaked == 0 && len(rep.Violations) == 0 {
		printInfo("  ✓ No leaked elements\n")
		printInfo("  ✓ No lifecycle violations\n")
		return
	}
	printInfo("  ✗ Leaked elements: %d\n", rep.Leaked)
	for _, v := range rep.Violations {
		printInfo("  ✗ %s\n", v)
	}
}

func formatValues(vals []int) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
