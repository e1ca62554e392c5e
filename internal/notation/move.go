package notation

import (
	"strings"

	. "github.com/cricklet/perftdiff/internal/helpers"
)

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func FileFromChar(c byte) (File, Error) {
	file := int(c - 'a')
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", string(c))
	}
	return File(file), NilError
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c - '1')
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", string(c))
	}
	return Rank(rank), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	return FileRank{file, rank}, NilError
}

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	Queen
	InvalidPiece
)

func (p PieceType) String() string {
	return [5]string{
		"r", "n", "b", "q", "?",
	}[p]
}

func PromotionFromChar(c byte) (PieceType, Error) {
	switch c {
	case 'r':
		return Rook, NilError
	case 'n':
		return Knight, NilError
	case 'b':
		return Bishop, NilError
	case 'q':
		return Queen, NilError
	default:
		return InvalidPiece, Errorf("invalid promotion piece %v", string(c))
	}
}

// Move is the syntactic form of a long-algebraic move token. Whether the move
// is legal in any particular position is the providers' concern, not ours.
type Move struct {
	Start     FileRank
	End       FileRank
	Promotion Optional[PieceType]
}

// ParseMove accepts `<from><to>[promotion]`, case-insensitive, and
// canonicalizes to lower case. Move.String is the exact inverse.
func ParseMove(token string) (Move, Error) {
	s := strings.ToLower(token)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, Errorf("invalid move %q", token)
	}

	start, err := FileRankFromString(s[0:2])
	if !IsNil(err) {
		return Move{}, Errorf("invalid move %q: bad start square", token)
	}
	end, err := FileRankFromString(s[2:4])
	if !IsNil(err) {
		return Move{}, Errorf("invalid move %q: bad end square", token)
	}

	promotion := Empty[PieceType]()
	if len(s) == 5 {
		piece, err := PromotionFromChar(s[4])
		if !IsNil(err) {
			return Move{}, Errorf("invalid move %q: bad promotion piece", token)
		}
		promotion = Some(piece)
	}

	return Move{Start: start, End: end, Promotion: promotion}, NilError
}

func (m Move) String() string {
	if m.Promotion.HasValue() {
		return m.Start.String() + m.End.String() + m.Promotion.Value().String()
	}
	return m.Start.String() + m.End.String()
}

func ParseMoves(tokens []string) ([]Move, Error) {
	moves := make([]Move, 0, len(tokens))
	for _, token := range tokens {
		move, err := ParseMove(token)
		if !IsNil(err) {
			return nil, err
		}
		moves = append(moves, move)
	}
	return moves, NilError
}

func MoveStrings(moves []Move) []string {
	return MapSlice(moves, func(m Move) string {
		return m.String()
	})
}
