package perft

import (
	"strings"
	"testing"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestRenderAlignment(t *testing.T) {
	left := mustParse(t, "e2e4 600\nd2d4 9\n\n609")
	right := mustParse(t, "e2e4 600\nd2d4 9\n\n609")

	lines := DiffResults(left, right).Render(false)

	assert.Equal(t, []string{
		"e2e4  600  600",
		"d2d4    9    9",
		"",
		"total  609  609",
	}, lines)
}

func TestRenderAbsentCounts(t *testing.T) {
	left := mustParse(t, "e2e4 600\n\n600")
	right := mustParse(t, "d2d4 560\n\n560")

	lines := DiffResults(left, right).Render(false)

	assert.Equal(t, []string{
		"e2e4  600     ",
		"d2d4       560",
		"",
		"total  600  560",
	}, lines)
}

func TestRenderPromotionWidensMoveColumn(t *testing.T) {
	left := mustParse(t, "a7a8q 12\ne2e4 3\n\n15")
	right := mustParse(t, "a7a8q 12\ne2e4 3\n\n15")

	lines := DiffResults(left, right).Render(false)

	assert.Equal(t, "a7a8q  12  12", lines[0])
	assert.Equal(t, "e2e4    3   3", lines[1])
}

func TestRenderAbsentTotal(t *testing.T) {
	right := mustParse(t, "e2e4 600\n\n600")

	lines := DiffPartial(Empty[Result](), Some(right)).Render(false)
	assert.Equal(t, "total  ?  600", lines[len(lines)-1])
}

func TestRenderColors(t *testing.T) {
	left := mustParse(t, "e2e4 600\nd2d4 560\n\n1160")
	right := mustParse(t, "e2e4 601\nd2d4 560\n\n1161")

	lines := DiffResults(left, right).Render(true)

	assert.True(t, strings.HasPrefix(lines[0], _mismatchColors))
	assert.True(t, strings.HasSuffix(lines[0], _resetColors))

	// matching rows stay unstyled
	assert.Equal(t, "d2d4  560  560", lines[1])

	assert.True(t, strings.HasPrefix(lines[3], _mismatchColors))
}

func TestRenderColorsOffByDefault(t *testing.T) {
	left := mustParse(t, "e2e4 600\n\n600")
	right := mustParse(t, "e2e4 601\n\n601")

	for _, line := range DiffResults(left, right).Render(false) {
		assert.False(t, strings.Contains(line, "\x1b"))
	}
}
