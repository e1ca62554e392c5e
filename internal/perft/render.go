package perft

import (
	"fmt"
	"strings"

	. "github.com/cricklet/perftdiff/internal/helpers"
)

const _mismatchColors = "\033[1;31m"
const _resetColors = "\x1b[0m"

func countString(count Optional[uint64], width int) string {
	if count.HasValue() {
		return fmt.Sprintf("%*d", width, count.Value())
	}
	return strings.Repeat(" ", width)
}

func totalString(total Optional[uint64]) string {
	if total.HasValue() {
		return fmt.Sprint(total.Value())
	}
	return "?"
}

// Render formats the three-column report: move token, left count, right
// count, then the totals row. Absent counts render as blank, never as zero.
// With colors enabled, rows where the sides disagree come out red.
func (d Diff) Render(colors bool) []string {
	countWidth := 1
	moveWidth := 4
	for _, row := range d.Rows {
		if row.Left.HasValue() {
			countWidth = MaxInt(countWidth, len(fmt.Sprint(row.Left.Value())))
		}
		if row.Right.HasValue() {
			countWidth = MaxInt(countWidth, len(fmt.Sprint(row.Right.Value())))
		}
		moveWidth = MaxInt(moveWidth, len(row.Move))
	}

	mark := func(mismatch bool, line string) string {
		if colors && mismatch {
			return _mismatchColors + line + _resetColors
		}
		return line
	}

	lines := []string{}
	for _, row := range d.Rows {
		line := fmt.Sprintf("%-*s  %s  %s",
			moveWidth, row.Move,
			countString(row.Left, countWidth),
			countString(row.Right, countWidth))
		lines = append(lines, mark(!row.Matches(), line))
	}

	lines = append(lines, "")
	lines = append(lines, mark(!d.TotalsMatch(),
		fmt.Sprintf("total  %s  %s", totalString(d.LeftTotal), totalString(d.RightTotal))))

	return lines
}
