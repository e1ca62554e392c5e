package suite

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/perft"
	"github.com/cricklet/perftdiff/internal/provider"
)

// Case is one position to compare the providers on: a base position and the
// perft depth to count at.
type Case struct {
	Fen   string
	Depth int
}

// LoadCases reads a suite file: one `<fen>;<depth>` per line, blank lines
// and `#` comments skipped.
func LoadCases(path string) ([]Case, Error) {
	file, err := WrapReturn(os.Open(path))
	if err.HasError() {
		return nil, err
	}
	defer file.Close()

	cases := []Case{}

	fscanner := bufio.NewScanner(file)
	lineNumber := 0
	for fscanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(fscanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		fen, depthStr, found := strings.Cut(line, ";")
		if !found {
			return nil, Errorf("suite line %v %q: expected `<fen>;<depth>`", lineNumber, line)
		}

		fen = strings.TrimSpace(fen)
		if fenErr := notation.ValidateFen(fen); fenErr.HasError() {
			return nil, Errorf("suite line %v: %v", lineNumber, fenErr.Message())
		}

		depth, atoiErr := strconv.Atoi(strings.TrimSpace(depthStr))
		if atoiErr != nil || depth < 0 {
			return nil, Errorf("suite line %v %q: bad depth", lineNumber, line)
		}

		cases = append(cases, Case{Fen: fen, Depth: depth})
	}

	return cases, NilError
}

type CaseResult struct {
	Fen   string `json:"fen"`
	Depth int    `json:"depth"`

	Match      bool   `json:"match"`
	LeftTotal  uint64 `json:"left_total"`
	RightTotal uint64 `json:"right_total"`

	MismatchedMoves []string `json:"mismatched_moves,omitempty"`
	Failure         string   `json:"failure,omitempty"`
}

func runCase(left provider.Provider, right provider.Provider, c Case) CaseResult {
	result := CaseResult{Fen: c.Fen, Depth: c.Depth}

	leftResult, err := left.Perft(c.Depth, c.Fen, nil)
	if err.HasError() {
		result.Failure = fmt.Sprintf("%v failed: %v", left.Name(), err.Message())
		return result
	}

	rightResult, err := right.Perft(c.Depth, c.Fen, nil)
	if err.HasError() {
		result.Failure = fmt.Sprintf("%v failed: %v", right.Name(), err.Message())
		return result
	}

	diff := perft.DiffResults(leftResult, rightResult)
	result.Match = !diff.HasDiscrepancy()
	result.LeftTotal = leftResult.Total
	result.RightTotal = rightResult.Total

	for _, row := range diff.Rows {
		if !row.Matches() {
			result.MismatchedMoves = append(result.MismatchedMoves, row.Move)
		}
	}

	return result
}

// Run compares the two providers across every case, worst ones first in the
// returned summary. Already-cached results are skipped so an interrupted run
// can pick up where it left off.
func Run(
	left provider.Provider,
	right provider.Provider,
	cases []Case,
	cached []CaseResult,
	logger Logger,
	onResult func(CaseResult),
) []CaseResult {
	priorMatch := map[Pair[string, int]]bool{}
	for _, prior := range cached {
		priorMatch[Pair[string, int]{First: prior.Fen, Second: prior.Depth}] = prior.Match
	}

	bar := progressbar.Default(int64(len(cases)), "comparing")

	results := append([]CaseResult{}, cached...)
	for _, c := range cases {
		key := fmt.Sprintf("%v;%v", c.Fen, c.Depth)
		if match, ok := priorMatch[Pair[string, int]{First: c.Fen, Second: c.Depth}]; ok && match {
			logger.Println("skipping cached", key)
			_ = bar.Add(1)
			continue
		}

		result := runCase(left, right, c)
		results = append(results, result)
		if onResult != nil {
			onResult(result)
		}

		switch {
		case result.Failure != "":
			logger.Println("failure", key, result.Failure)
		case result.Match:
			logger.Println("match", key,
				humanize.Comma(int64(result.LeftTotal)), "nodes")
		default:
			logger.Println("MISMATCH", key,
				humanize.Comma(int64(result.LeftTotal)), "vs",
				humanize.Comma(int64(result.RightTotal)),
				"moves:", strings.Join(result.MismatchedMoves, " "))
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return results
}

func Summarize(results []CaseResult) string {
	matches, mismatches, failures := 0, 0, 0
	var nodes uint64
	for _, result := range results {
		switch {
		case result.Failure != "":
			failures++
		case result.Match:
			matches++
			nodes += result.LeftTotal
		default:
			mismatches++
		}
	}
	return fmt.Sprintf("%v matched (%v nodes), %v mismatched, %v failed",
		matches, humanize.Comma(int64(nodes)), mismatches, failures)
}
