package provider

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/perft"
)

// ScriptProvider invokes the move-generator under test once per query:
// `<cmd> <depth> <fen> [moves]`, with the moves argument omitted entirely at
// the root. It expects the `<move> <count>` / blank / total protocol on
// stdout.
type ScriptProvider struct {
	path   string
	logger Logger
}

var _ Provider = (*ScriptProvider)(nil)

type ScriptProviderOption func(*ScriptProvider)

func WithScriptLogger(logger Logger) ScriptProviderOption {
	return func(p *ScriptProvider) {
		p.logger = logger
	}
}

func NewScriptProvider(path string, options ...ScriptProviderOption) *ScriptProvider {
	p := &ScriptProvider{path: path}
	for _, o := range options {
		o(p)
	}
	if p.logger == nil {
		p.logger = &SilentLogger
	}
	return p
}

func (p *ScriptProvider) Name() string {
	return "script"
}

func (p *ScriptProvider) Perft(depth int, fen string, moves []string) (perft.Result, Error) {
	args := []string{strconv.Itoa(depth), fen}
	if len(moves) > 0 {
		args = append(args, strings.Join(moves, " "))
	}

	p.logger.Println(p.path, args)

	cmd := exec.Command(p.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	for _, line := range strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n") {
		if line != "" {
			p.logger.Println("stderr: ", line)
		}
	}

	if runErr != nil {
		failure := Errorf("%v %v: %v", p.path, strings.Join(args, " "), runErr)
		if stderr.Len() > 0 {
			failure = Join(failure, Errorf("stderr:\n%v", Indent(strings.TrimSpace(stderr.String()), "  ")))
		}
		return perft.Result{}, failure
	}

	return perft.ParseResult(stdout.String())
}

func (p *ScriptProvider) Close() {
}
