package perft

import (
	"fmt"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
)

// MoveCount is one `<move> <count>` entry from a provider, in the order the
// provider emitted it.
type MoveCount struct {
	Move  notation.Move
	Count uint64
}

// Result is a provider's answer for one position/depth. Total is reported by
// the provider itself and is not required to equal the sum of the per-move
// counts -- a disagreement between the two is diagnostic, not an error.
type Result struct {
	Moves []MoveCount
	Total uint64
}

func (r Result) String() string {
	lines := MapSlice(r.Moves, func(mc MoveCount) string {
		return fmt.Sprintf("%v %v", mc.Move, mc.Count)
	})
	lines = append(lines, "", fmt.Sprint(r.Total))
	return JoinLines(lines)
}
