package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/provider"
	"github.com/stretchr/testify/assert"
)

func writeCases(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "cases.txt")
	err := os.WriteFile(path, []byte(contents), 0644)
	assert.True(t, err == nil, err)
	return path
}

func TestLoadCases(t *testing.T) {
	path := writeCases(t, fmt.Sprintf(`
# shallow sanity checks
%v;1
%v ; 2

r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1;1
`, notation.StartingFen, notation.StartingFen))

	cases, err := LoadCases(path)
	assert.True(t, IsNil(err))

	assert.Equal(t, 3, len(cases))
	assert.Equal(t, Case{Fen: notation.StartingFen, Depth: 1}, cases[0])
	assert.Equal(t, Case{Fen: notation.StartingFen, Depth: 2}, cases[1])
	assert.Equal(t, 1, cases[2].Depth)
}

func TestLoadCasesRejectsBadLines(t *testing.T) {
	for _, contents := range []string{
		"no separator here",
		notation.StartingFen + ";notanumber",
		notation.StartingFen + ";-1",
		"bad fen;2",
	} {
		path := writeCases(t, contents+"\n")
		_, err := LoadCases(path)
		assert.True(t, err.HasError(), contents)
	}
}

func TestLoadCasesMissingFile(t *testing.T) {
	_, err := LoadCases(filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, err.HasError())
}

func TestRunMatches(t *testing.T) {
	left := provider.NewBuiltinProvider("left")
	right := provider.NewBuiltinProvider("right")
	defer left.Close()
	defer right.Close()

	cases := []Case{
		{Fen: notation.StartingFen, Depth: 1},
		{Fen: notation.StartingFen, Depth: 2},
	}

	seen := []CaseResult{}
	results := Run(left, right, cases, nil, &SilentLogger, func(result CaseResult) {
		seen = append(seen, result)
	})

	assert.Equal(t, 2, len(results))
	assert.Equal(t, 2, len(seen))
	for _, result := range results {
		assert.True(t, result.Match)
		assert.Equal(t, "", result.Failure)
		assert.Equal(t, result.LeftTotal, result.RightTotal)
	}
	assert.Equal(t, uint64(20), results[0].LeftTotal)
	assert.Equal(t, uint64(400), results[1].LeftTotal)
}

func TestRunSkipsCachedMatches(t *testing.T) {
	left := provider.NewBuiltinProvider("left")
	right := provider.NewBuiltinProvider("right")
	defer left.Close()
	defer right.Close()

	cases := []Case{{Fen: notation.StartingFen, Depth: 1}}
	cached := []CaseResult{{Fen: notation.StartingFen, Depth: 1, Match: true, LeftTotal: 20, RightTotal: 20}}

	ran := 0
	results := Run(left, right, cases, cached, &SilentLogger, func(result CaseResult) {
		ran++
	})

	assert.Equal(t, 0, ran)
	assert.Equal(t, 1, len(results))
}

func TestRunReportsFailure(t *testing.T) {
	left := provider.NewBuiltinProvider("left")
	right := provider.NewBuiltinProvider("right")
	defer left.Close()
	defer right.Close()

	// a position the generator can't load shows up as a failure, not a crash
	cases := []Case{{Fen: "not a position", Depth: 1}}

	results := Run(left, right, cases, nil, &SilentLogger, nil)
	assert.Equal(t, 1, len(results))
	assert.False(t, results[0].Match)
	assert.NotEqual(t, "", results[0].Failure)
}

func TestSummarize(t *testing.T) {
	results := []CaseResult{
		{Match: true, LeftTotal: 20, RightTotal: 20},
		{Match: true, LeftTotal: 400, RightTotal: 400},
		{Match: false, LeftTotal: 600, RightTotal: 601},
		{Failure: "script failed"},
	}

	summary := Summarize(results)
	assert.Contains(t, summary, "2 matched")
	assert.Contains(t, summary, "420 nodes")
	assert.Contains(t, summary, "1 mismatched")
	assert.Contains(t, summary, "1 failed")
}
