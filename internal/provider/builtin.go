package provider

import (
	chesslib "github.com/corentings/chess/v2"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/perft"
)

// BuiltinProvider counts nodes in-process with a library move generator. It
// exists so the tool (and its tests) can run without stockfish or a user
// script on hand -- either side of the diff can be pointed at it.
type BuiltinProvider struct {
	name string
}

var _ Provider = (*BuiltinProvider)(nil)

func NewBuiltinProvider(name string) *BuiltinProvider {
	return &BuiltinProvider{name: name}
}

func (p *BuiltinProvider) Name() string {
	return p.name
}

func countNodes(pos *chesslib.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	moves := pos.ValidMoves()
	for i := range moves {
		nodes += countNodes(pos.Update(&moves[i]), depth-1)
	}
	return nodes
}

func (p *BuiltinProvider) Perft(depth int, fen string, moves []string) (perft.Result, Error) {
	fenOption, fenErr := chesslib.FEN(fen)
	if fenErr != nil {
		return perft.Result{}, Errorf("%v: bad fen %q: %v", p.name, fen, fenErr)
	}
	game := chesslib.NewGame(fenOption)

	for _, move := range moves {
		if moveErr := game.PushNotationMove(move, chesslib.UCINotation{}, nil); moveErr != nil {
			return perft.Result{}, Errorf("%v: can't play %q: %v", p.name, move, moveErr)
		}
	}

	result := perft.Result{}
	if depth == 0 {
		result.Total = 1
		return result, NilError
	}

	pos := game.Position()
	uci := chesslib.UCINotation{}

	childMoves := pos.ValidMoves()
	for i := range childMoves {
		count := countNodes(pos.Update(&childMoves[i]), depth-1)

		token := uci.Encode(pos, &childMoves[i])
		move, err := notation.ParseMove(token)
		if !IsNil(err) {
			return perft.Result{}, err
		}

		result.Moves = append(result.Moves, perft.MoveCount{Move: move, Count: count})
		result.Total += count
	}

	return result, NilError
}

func (p *BuiltinProvider) Close() {
}
