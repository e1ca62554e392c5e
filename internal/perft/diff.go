package perft

import (
	. "github.com/cricklet/perftdiff/internal/helpers"
)

// DiffRow pairs one move token with the count each side reported for it. An
// absent count means the side never emitted the move, which is not the same
// thing as reporting zero nodes for it.
type DiffRow struct {
	Move  string
	Left  Optional[uint64]
	Right Optional[uint64]
}

func (r DiffRow) Matches() bool {
	if r.Left.HasValue() != r.Right.HasValue() {
		return false
	}
	if !r.Left.HasValue() {
		return true
	}
	return r.Left.Value() == r.Right.Value()
}

type Diff struct {
	Rows []DiffRow

	LeftTotal  Optional[uint64]
	RightTotal Optional[uint64]
}

func (d Diff) TotalsMatch() bool {
	if d.LeftTotal.HasValue() != d.RightTotal.HasValue() {
		return false
	}
	if !d.LeftTotal.HasValue() {
		return true
	}
	return d.LeftTotal.Value() == d.RightTotal.Value()
}

func (d Diff) HasDiscrepancy() bool {
	if !d.TotalsMatch() {
		return true
	}
	for _, row := range d.Rows {
		if !row.Matches() {
			return true
		}
	}
	return false
}

// DiffResults aligns two parsed results: one row per move token, ordered by
// first appearance (all of the left side's moves in their original order,
// then right-only moves in theirs), plus the two totals. Pure function.
func DiffResults(left Result, right Result) Diff {
	return DiffPartial(Some(left), Some(right))
}

// DiffPartial is DiffResults when one side failed to produce a result at all:
// the failed side's column renders as absent everywhere, including the total.
func DiffPartial(left Optional[Result], right Optional[Result]) Diff {
	diff := Diff{}

	// row indexes whose right-hand slot is still unclaimed, per token; a
	// duplicate token on one side claims a second row and stands out
	unclaimed := map[string][]int{}

	if left.HasValue() {
		diff.LeftTotal = Some(left.Value().Total)
		for _, mc := range left.Value().Moves {
			token := mc.Move.String()
			diff.Rows = append(diff.Rows, DiffRow{Move: token, Left: Some(mc.Count)})
			unclaimed[token] = append(unclaimed[token], len(diff.Rows)-1)
		}
	}

	if right.HasValue() {
		diff.RightTotal = Some(right.Value().Total)
		for _, mc := range right.Value().Moves {
			token := mc.Move.String()
			if indexes := unclaimed[token]; len(indexes) > 0 {
				diff.Rows[indexes[0]].Right = Some(mc.Count)
				unclaimed[token] = indexes[1:]
			} else {
				diff.Rows = append(diff.Rows, DiffRow{Move: token, Right: Some(mc.Count)})
			}
		}
	}

	return diff
}
