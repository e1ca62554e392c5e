package provider

import (
	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/perft"
)

// Provider is anything that can count perft nodes for a position: the script
// under test, the reference engine, or the in-process fallback. Both sides of
// a diff go through this one interface so the session never special-cases
// either of them.
type Provider interface {
	Name() string
	Perft(depth int, fen string, moves []string) (perft.Result, Error)
	Close()
}
