package perft

import (
	"strconv"
	"strings"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
)

// ParseResult parses the line protocol both providers speak on success:
// zero or more `<move> <count>` lines, one blank separator line, and the
// total on its own line. Repeated move tokens are kept as separate entries
// so a provider that emits duplicates gets caught in the diff instead of
// silently deduplicated.
func ParseResult(raw string) (Result, Error) {
	lines := strings.Split(raw, "\n")

	separator := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			separator = i
			break
		}
	}
	if separator == -1 {
		return Result{}, Errorf("malformed output: missing separator")
	}

	result := Result{}
	for i, line := range lines[:separator] {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Result{}, Errorf("malformed line %v %q: expected `<move> <count>`", i+1, line)
		}

		move, err := notation.ParseMove(fields[0])
		if !IsNil(err) {
			return Result{}, Errorf("malformed line %v %q: %v", i+1, line, err.Message())
		}

		count, atoiErr := strconv.ParseUint(fields[1], 10, 64)
		if atoiErr != nil {
			return Result{}, Errorf("malformed line %v %q: bad count %q", i+1, line, fields[1])
		}

		result.Moves = append(result.Moves, MoveCount{Move: move, Count: count})
	}

	rest := lines[separator+1:]

	// tolerate trailing whitespace after the total
	for len(rest) > 0 && strings.TrimSpace(Last(rest)) == "" {
		rest = rest[:len(rest)-1]
	}

	if len(rest) == 0 {
		return Result{}, Errorf("malformed output: missing total")
	}
	if len(rest) > 1 {
		return Result{}, Errorf("malformed output: trailing data %q", strings.TrimSpace(rest[1]))
	}

	total, atoiErr := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 64)
	if atoiErr != nil {
		return Result{}, Errorf("malformed output: bad total %q", strings.TrimSpace(rest[0]))
	}
	result.Total = total

	return result, NilError
}
