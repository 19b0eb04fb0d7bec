package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/rawvec/cmd/vecctl/logger"
	"github.com/joshuapare/rawvec/vector"
)

var (
	benchN       int
	benchReserve bool
)

func init() {
	rootCmd.AddCommand(newBenchCmd())
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time sequential appends of ints",
		Long: `The bench command appends N ints to an empty vector and reports the
elapsed time, the number of reallocations and the peak resident set size of
the process (where the platform reports it).

Example:
  vecctl bench --n 10000000
  vecctl bench --n 10000000 --reserve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(benchN, benchReserve)
		},
	}
	cmd.Flags().IntVarP(&benchN, "n", "n", 1_000_000, "Number of appends")
	cmd.Flags().BoolVar(&benchReserve, "reserve", false, "Reserve N slots before appending")
	return cmd
}

// BenchResult is the outcome of one bench run.
type BenchResult struct {
	Appends       int           `json:"appends"`
	Reserved      bool          `json:"reserved"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	NsPerAppend   float64       `json:"ns_per_append"`
	Reallocations int           `json:"reallocations"`
	FinalCap      int           `json:"final_cap"`
	MaxRSSBytes   int64         `json:"max_rss_bytes,omitempty"`
}

func benchAppends(n int, reserve bool) (*BenchResult, error) {
	v := vector.New(&vector.Options[int]{Logger: logger.L})
	defer v.Release()

	res := &BenchResult{Appends: n, Reserved: reserve}
	start := time.Now()
	if reserve {
		if err := v.Reserve(n); err != nil {
			return nil, err
		}
		res.Reallocations++
	}
	for i := range n {
		c := v.Cap()
		if err := v.PushBack(i); err != nil {
			return nil, err
		}
		if v.Cap() != c {
			res.Reallocations++
		}
	}
	res.Elapsed = time.Since(start)
	res.FinalCap = v.Cap()
	if n > 0 {
		res.NsPerAppend = float64(res.Elapsed.Nanoseconds()) / float64(n)
	}
	if rss, ok := maxRSS(); ok {
		res.MaxRSSBytes = rss
	}
	return res, nil
}

func runBench(n int, reserve bool) error {
	if n < 0 {
		return fmt.Errorf("--n must not be negative")
	}
	res, err := benchAppends(n, reserve)
	if err != nil {
		return fmt.Errorf("bench failed: %w", err)
	}

	if jsonOut {
		return printJSON(res)
	}

	p := message.NewPrinter(language.English)
	printInfo("\nAppended %s ints in %s\n", p.Sprintf("%d", res.Appends), res.Elapsed)
	printInfo("  ns/append:      %.2f\n", res.NsPerAppend)
	printInfo("  reallocations:  %s\n", p.Sprintf("%d", res.Reallocations))
	printInfo("  final capacity: %s\n", p.Sprintf("%d", res.FinalCap))
	if res.MaxRSSBytes > 0 {
		printInfo("  max RSS:        %s KB\n", p.Sprintf("%d", res.MaxRSSBytes/1024))
	}
	return nil
}
