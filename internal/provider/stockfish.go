package provider

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/perftdiff/internal/binary"
	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/perft"
)

// StockfishProvider adapts stockfish's native `go perft` protocol (persistent
// UCI process, `<move>: <count>` lines, `Nodes searched: <total>`) onto the
// Provider interface, so the diff engine sees the same shape from both sides.
type StockfishProvider struct {
	logger   Logger
	path     string
	chess960 bool
	binary   *binary.BinaryRunner
}

var _ Provider = (*StockfishProvider)(nil)

type StockfishProviderOption func(*StockfishProvider)

func WithStockfishPath(path string) StockfishProviderOption {
	return func(r *StockfishProvider) {
		r.path = path
	}
}

// WithChess960 makes the engine read castling moves in Chess960 notation
// (king onto rook). Required for X-FEN / Shredder-FEN positions.
func WithChess960(enabled bool) StockfishProviderOption {
	return func(r *StockfishProvider) {
		r.chess960 = enabled
	}
}

func WithStockfishLogger(logger Logger) StockfishProviderOption {
	return func(r *StockfishProvider) {
		r.logger = logger
	}
}

func NewStockfishProvider(options ...StockfishProviderOption) *StockfishProvider {
	r := &StockfishProvider{}
	for _, o := range options {
		o(r)
	}
	if r.logger == nil {
		r.logger = &SilentLogger
	}
	if r.path == "" {
		r.path = "stockfish"
	}
	return r
}

func (r *StockfishProvider) Name() string {
	return "stockfish"
}

func (r *StockfishProvider) setup() Error {
	var err Error
	r.binary, err = binary.SetupBinaryRunner(
		r.path, []string{},
		binary.WithLogger(r.logger))
	if !IsNil(err) {
		return err
	}

	output, err := r.binary.Run("uci", Some("uciok"), Some(5*time.Second))
	if !IsNil(err) {
		return err
	}
	if !Contains(output, "uciok") {
		return Errorf("needs uciok")
	}

	if r.chess960 {
		err = r.binary.RunAsync("setoption name UCI_Chess960 value true")
		if !IsNil(err) {
			return err
		}
	}

	output, err = r.binary.Run("isready", Some("readyok"), Some(5*time.Second))
	if !IsNil(err) {
		return err
	}
	if !Contains(output, "readyok") {
		return Errorf("needs readyok")
	}

	return NilError
}

func parseStockfishMoveLine(line string) (perft.MoveCount, bool) {
	token, countStr, found := strings.Cut(line, ":")
	if !found {
		return perft.MoveCount{}, false
	}

	move, err := notation.ParseMove(strings.TrimSpace(token))
	if !IsNil(err) {
		return perft.MoveCount{}, false
	}

	count, atoiErr := strconv.ParseUint(strings.TrimSpace(countStr), 10, 64)
	if atoiErr != nil {
		return perft.MoveCount{}, false
	}

	return perft.MoveCount{Move: move, Count: count}, true
}

func (r *StockfishProvider) Perft(depth int, fen string, moves []string) (perft.Result, Error) {
	// `go perft 0` isn't meaningful to stockfish; by the protocol's
	// definition a depth-0 count is exactly the current position
	if depth == 0 {
		return perft.Result{Total: 1}, NilError
	}

	if r.binary == nil {
		err := r.setup()
		if !IsNil(err) {
			return perft.Result{}, err
		}
	}

	position := "position fen " + fen
	if len(moves) > 0 {
		position += " moves " + strings.Join(moves, " ")
	}
	err := r.binary.RunAsync(position)
	if !IsNil(err) {
		return perft.Result{}, err
	}

	result := perft.Result{}
	total := Empty[uint64]()

	err = r.binary.RunSync(fmt.Sprint("go perft ", depth), func(line string) (binary.LoopResult, Error) {
		line = strings.TrimSpace(line)

		if value, found := strings.CutPrefix(line, "Nodes searched:"); found {
			parsed, atoiErr := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if atoiErr != nil {
				return binary.LoopBreak, Errorf("stockfish: bad total line %q", line)
			}
			total = Some(parsed)
			return binary.LoopBreak, NilError
		}

		if entry, ok := parseStockfishMoveLine(line); ok {
			result.Moves = append(result.Moves, entry)
		}
		return binary.LoopContinue, NilError
	}, Empty[time.Duration]())
	if !IsNil(err) {
		return perft.Result{}, err
	}

	if total.IsEmpty() {
		return perft.Result{}, Errorf("%v: perft finished without `Nodes searched`\n%v",
			r.binary.CmdPath(), r.binary.Flush())
	}
	result.Total = total.Value()

	return result, NilError
}

func (r *StockfishProvider) Close() {
	if r.binary != nil {
		r.binary.Close()
		r.binary = nil
	}
}
