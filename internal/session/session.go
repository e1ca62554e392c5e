package session

import (
	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/provider"
)

// Session is the one mutable aggregate of the tool: the base position, the
// move path walked down from it, the search depth, and the two providers
// being compared. It is owned by whoever runs the command loop and is only
// ever touched from that loop.
type Session struct {
	Logger Logger
	Colors bool

	left  provider.Provider
	right provider.Provider

	fen   string
	moves []notation.Move
	depth int

	done bool
}

type SessionOption func(*Session)

func WithLogger(logger Logger) SessionOption {
	return func(s *Session) {
		s.Logger = logger
	}
}

func WithColors(colors bool) SessionOption {
	return func(s *Session) {
		s.Colors = colors
	}
}

func WithDepth(depth int) SessionOption {
	return func(s *Session) {
		s.depth = depth
	}
}

func NewSession(left provider.Provider, right provider.Provider, options ...SessionOption) *Session {
	s := &Session{
		left:  left,
		right: right,
		fen:   notation.StartingFen,
		depth: 1,
	}
	for _, o := range options {
		o(s)
	}
	if s.Logger == nil {
		s.Logger = &DefaultLogger
	}
	return s
}

func (s *Session) Fen() string {
	return s.fen
}

// SetFen replaces the base position and abandons the move path, since the
// old path has no meaning under a new root.
func (s *Session) SetFen(fen string) Error {
	err := notation.ValidateFen(fen)
	if !IsNil(err) {
		return err
	}
	s.fen = fen
	s.moves = nil
	return NilError
}

func (s *Session) Moves() []notation.Move {
	return s.moves
}

// SetMoves replaces the move path wholesale. The replacement is atomic: if
// any token fails to parse, the existing path is untouched.
func (s *Session) SetMoves(tokens []string) Error {
	moves, err := notation.ParseMoves(tokens)
	if !IsNil(err) {
		return err
	}
	s.moves = moves
	return NilError
}

func (s *Session) Push(token string) Error {
	move, err := notation.ParseMove(token)
	if !IsNil(err) {
		return err
	}
	s.moves = append(s.moves, move)
	return NilError
}

func (s *Session) Pop() (notation.Move, Error) {
	if len(s.moves) == 0 {
		return notation.Move{}, Errorf("move list is empty")
	}
	move := Last(s.moves)
	s.moves = s.moves[:len(s.moves)-1]
	return move, NilError
}

func (s *Session) Root() {
	s.moves = nil
}

func (s *Session) Depth() int {
	return s.depth
}

func (s *Session) SetDepth(depth int) {
	s.depth = depth
}

// ProviderDepth is the depth handed to the providers: the configured depth
// counts from the base position, so walking down the move path leaves that
// much less of the tree to search.
func (s *Session) ProviderDepth() int {
	depth := s.depth - len(s.moves)
	if depth < 0 {
		return 0
	}
	return depth
}

func (s *Session) IsDone() bool {
	return s.done
}

func (s *Session) Close() {
	s.left.Close()
	s.right.Close()
}
