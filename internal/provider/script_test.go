package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/notation"
	"github.com/stretchr/testify/assert"
)

func writeScript(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "perft.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+contents), 0755)
	assert.True(t, err == nil, err)
	return path
}

func TestScriptProvider(t *testing.T) {
	path := writeScript(t, `
echo "e2e4 600"
echo "d2d4 560"
echo ""
echo "1160"
`)

	p := NewScriptProvider(path)
	defer p.Close()
	assert.Equal(t, "script", p.Name())

	result, err := p.Perft(2, notation.StartingFen, nil)
	assert.True(t, IsNil(err))
	assert.Equal(t, 2, len(result.Moves))
	assert.Equal(t, uint64(1160), result.Total)
}

func TestScriptProviderArguments(t *testing.T) {
	recorded := filepath.Join(t.TempDir(), "args.txt")
	path := writeScript(t, fmt.Sprintf(`
echo "$#|$1|$2|$3" > %q
echo ""
echo "1"
`, recorded))

	p := NewScriptProvider(path)
	defer p.Close()

	_, err := p.Perft(3, notation.StartingFen, []string{"e2e4", "e7e5"})
	assert.True(t, IsNil(err))

	args, readErr := os.ReadFile(recorded)
	assert.True(t, readErr == nil, readErr)
	assert.Equal(t,
		fmt.Sprintf("3|3|%v|e2e4 e7e5\n", notation.StartingFen),
		string(args))
}

func TestScriptProviderOmitsEmptyMoves(t *testing.T) {
	recorded := filepath.Join(t.TempDir(), "args.txt")
	path := writeScript(t, fmt.Sprintf(`
echo "$#" > %q
echo ""
echo "1"
`, recorded))

	p := NewScriptProvider(path)
	defer p.Close()

	// at the root the moves argument is left off entirely
	_, err := p.Perft(1, notation.StartingFen, nil)
	assert.True(t, IsNil(err))

	args, readErr := os.ReadFile(recorded)
	assert.True(t, readErr == nil, readErr)
	assert.Equal(t, "2\n", string(args))
}

func TestScriptProviderFailure(t *testing.T) {
	path := writeScript(t, `
echo "something broke" >&2
exit 3
`)

	p := NewScriptProvider(path)
	defer p.Close()

	_, err := p.Perft(1, notation.StartingFen, nil)
	assert.True(t, err.HasError())
	assert.Contains(t, err.Message(), "something broke")
	assert.Contains(t, err.Message(), "exit status 3")
}

func TestScriptProviderMalformedOutput(t *testing.T) {
	path := writeScript(t, `
echo "e2e4 600"
`)

	p := NewScriptProvider(path)
	defer p.Close()

	_, err := p.Perft(1, notation.StartingFen, nil)
	assert.True(t, err.HasError())
	assert.Contains(t, err.Message(), "missing separator")
}

func TestScriptProviderMissingBinary(t *testing.T) {
	p := NewScriptProvider(filepath.Join(t.TempDir(), "does-not-exist"))
	defer p.Close()

	_, err := p.Perft(1, notation.StartingFen, nil)
	assert.True(t, err.HasError())
}
