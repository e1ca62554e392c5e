package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/cricklet/perftdiff/internal/perft"
)

// HandleInput interprets one command line and returns the lines to print.
// A returned error is a report for the user, never a reason to stop the
// loop: bad input and misbehaving providers both leave the session intact.
func (s *Session) HandleInput(input string) ([]string, Error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, NilError
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "fen":
		if len(args) == 0 {
			return []string{s.fen}, NilError
		}
		return nil, s.SetFen(strings.Join(args, " "))

	case "moves":
		if len(args) == 0 {
			return []string{strings.Join(notation.MoveStrings(s.moves), " ")}, NilError
		}
		return nil, s.SetMoves(args)

	case "depth":
		if len(args) == 0 {
			return []string{fmt.Sprint(s.depth)}, NilError
		}
		depth, atoiErr := strconv.Atoi(args[0])
		if atoiErr != nil || depth < 0 {
			return nil, Errorf("invalid depth %q", args[0])
		}
		s.SetDepth(depth)
		return nil, NilError

	case "root":
		s.Root()
		return nil, NilError

	case "child", "move":
		if len(args) != 1 {
			return nil, Errorf("invalid move: %v takes exactly one move token", cmd)
		}
		return nil, s.Push(args[0])

	case "parent", "unmove":
		_, err := s.Pop()
		return nil, err

	case "diff":
		return s.runDiff()

	case "debug":
		return s.debugDump(), NilError

	case "exit", "quit":
		s.done = true
		return nil, NilError

	default:
		return nil, Errorf("unknown command %q", cmd)
	}
}

func (s *Session) runDiff() ([]string, Error) {
	depth := s.ProviderDepth()
	moves := notation.MoveStrings(s.moves)

	s.Logger.Println("diff:", s.left.Name(), "vs", s.right.Name(),
		"depth", depth, "moves", strings.Join(moves, " "))

	type side struct {
		result perft.Result
		err    Error
	}
	var left, right side

	// the two providers are independent; fan out and join before diffing,
	// collecting each side's failure on its own
	var group errgroup.Group
	group.Go(func() error {
		left.result, left.err = s.left.Perft(depth, s.fen, moves)
		return nil
	})
	group.Go(func() error {
		right.result, right.err = s.right.Perft(depth, s.fen, moves)
		return nil
	})
	_ = group.Wait()

	lines := []string{}

	leftResult := Empty[perft.Result]()
	if left.err.HasError() {
		lines = append(lines, fmt.Sprintf("%v failed: %v", s.left.Name(), left.err.Message()))
	} else {
		leftResult = Some(left.result)
	}

	rightResult := Empty[perft.Result]()
	if right.err.HasError() {
		lines = append(lines, fmt.Sprintf("%v failed: %v", s.right.Name(), right.err.Message()))
	} else {
		rightResult = Some(right.result)
	}

	if leftResult.IsEmpty() && rightResult.IsEmpty() {
		return lines, NilError
	}

	diff := perft.DiffPartial(leftResult, rightResult)
	lines = append(lines, diff.Render(s.Colors)...)

	return lines, NilError
}

func (s *Session) debugDump() []string {
	snapshot := struct {
		Fen           string
		Moves         []string
		Depth         int
		ProviderDepth int
		Left          string
		Right         string
	}{
		Fen:           s.fen,
		Moves:         notation.MoveStrings(s.moves),
		Depth:         s.depth,
		ProviderDepth: s.ProviderDepth(),
		Left:          s.left.Name(),
		Right:         s.right.Name(),
	}
	return strings.Split(strings.TrimRight(spew.Sdump(snapshot), "\n"), "\n")
}
