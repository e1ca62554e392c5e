package notation

import (
	"strings"

	. "github.com/cricklet/perftdiff/internal/helpers"
)

var _pieceChars = "rnbqkpRNBQKP"

// ValidateFen checks that a position string has the shape of a FEN record:
// six whitespace-separated fields, eight ranks of recognizable piece/skip
// characters, a valid player field. It deliberately stops there -- whether
// the position is reachable or even sane is for the providers to decide.
func ValidateFen(fen string) Error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Errorf("invalid position: empty")
	}
	if len(fields) != 6 {
		return Errorf("invalid position %q: expected 6 fields, found %v", fen, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Errorf("invalid position %q: expected 8 ranks, found %v", fen, len(ranks))
	}
	for _, rank := range ranks {
		squares := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				squares += int(c - '0')
			} else if strings.ContainsRune(_pieceChars, c) {
				squares++
			} else {
				return Errorf("invalid position %q: unknown character %q", fen, string(c))
			}
		}
		if squares != 8 {
			return Errorf("invalid position %q: rank %q doesn't span 8 squares", fen, rank)
		}
	}

	if fields[1] != "w" && fields[1] != "b" {
		return Errorf("invalid position %q: bad player field %q", fen, fields[1])
	}

	return NilError
}
