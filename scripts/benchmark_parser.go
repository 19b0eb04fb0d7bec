//go:build ignore

// benchmark_parser turns `go test -bench` output for the vector package into
// a markdown report comparing rawvec against the builtin slice.
//
//	go test ./vector -run '^$' -bench . -benchmem | go run scripts/benchmark_parser.go
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        string
	Impl        string // "rawvec" or "slice"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult pairs the rawvec and slice results of one operation and size.
type ComparisonResult struct {
	Operation    string
	Size         string
	RawvecNs     float64
	SliceNs      float64
	Ratio        float64 // rawvec time / slice time
	RawvecMem    int64
	SliceMem     int64
	RawvecAllocs int64
	SliceAllocs  int64
	RawvecOnly   bool
}

var (
	inputFile  = flag.String("input", "", "Input file with benchmark output (stdin if not specified)")
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// benchmarkRegex matches lines such as
// BenchmarkPushBack/rawvec/small-8    10000    12450 ns/op    4096 B/op    8 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)
	report := generateMarkdownReport(comparisons)

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Accept `go test -json` events as well as plain output.
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		// Format: Benchmark<Operation>/<impl>/<size>-<procs>
		parts := strings.Split(matches[1], "/")
		if len(parts) < 3 {
			continue
		}

		r := BenchmarkResult{
			Name:      matches[1],
			Operation: strings.TrimPrefix(parts[0], "Benchmark"),
			Impl:      parts[1],
			Size:      trimProcs(parts[len(parts)-1]),
		}
		r.Iterations, _ = strconv.Atoi(matches[2])
		r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
		if matches[4] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}
		results = append(results, r)
	}

	return results
}

// trimProcs removes the -N GOMAXPROCS suffix.
func trimProcs(s string) string {
	if i := strings.LastIndex(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	type key struct {
		operation string
		size      string
	}

	grouped := make(map[key]map[string]BenchmarkResult)
	for _, r := range results {
		k := key{r.Operation, r.Size}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][r.Impl] = r
	}

	var comparisons []ComparisonResult
	for k, impls := range grouped {
		rv, hasRawvec := impls["rawvec"]
		sl, hasSlice := impls["slice"]

		switch {
		case hasRawvec && hasSlice:
			comparisons = append(comparisons, ComparisonResult{
				Operation:    k.operation,
				Size:         k.size,
				RawvecNs:     rv.NsPerOp,
				SliceNs:      sl.NsPerOp,
				Ratio:        rv.NsPerOp / sl.NsPerOp,
				RawvecMem:    rv.BytesPerOp,
				SliceMem:     sl.BytesPerOp,
				RawvecAllocs: rv.AllocsPerOp,
				SliceAllocs:  sl.AllocsPerOp,
			})
		case hasRawvec:
			comparisons = append(comparisons, ComparisonResult{
				Operation:    k.operation,
				Size:         k.size,
				RawvecNs:     rv.NsPerOp,
				RawvecMem:    rv.BytesPerOp,
				RawvecAllocs: rv.AllocsPerOp,
				RawvecOnly:   true,
			})
		}
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Size < comparisons[j].Size
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("| Operation | Size | rawvec (ns/op) | slice (ns/op) | Ratio | Memory (B/op) | Allocs |\n")
	sb.WriteString("|-----------|------|----------------|---------------|-------|---------------|--------|\n")

	for _, c := range comparisons {
		if c.RawvecOnly {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | *N/A* | *rawvec only* | %s | %s |\n",
				c.Operation,
				c.Size,
				formatNumber(c.RawvecNs),
				formatBytes(c.RawvecMem),
				formatNumber(float64(c.RawvecAllocs)),
			))
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %.2fx | %s vs %s | %s vs %s |\n",
			c.Operation,
			c.Size,
			formatNumber(c.RawvecNs),
			formatNumber(c.SliceNs),
			c.Ratio,
			formatBytes(c.RawvecMem),
			formatBytes(c.SliceMem),
			formatNumber(float64(c.RawvecAllocs)),
			formatNumber(float64(c.SliceAllocs)),
		))
	}

	sb.WriteString("\n## Notes\n\n")
	sb.WriteString("- **Ratio**: rawvec time divided by builtin slice time; lower is better\n")
	sb.WriteString("- rawvec pays for explicit lifecycle hooks on every construction and relocation\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
