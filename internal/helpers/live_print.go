package helpers

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"golang.org/x/term"
)

// LiveLogger pins a set of footer lines below the scrolling log output. The
// suite runner uses it to keep per-provider status visible while cases run.
type LiveLogger struct {
	footers []string

	lock   sync.Mutex
	noCopy NoCopy
}

var _ Logger = &LiveLogger{}

func NewLiveLogger() *LiveLogger {
	return &LiveLogger{footers: []string{}}
}

type _footerLogger struct {
	logger *LiveLogger
	i      int
}

func NewFooterLogger(logger *LiveLogger, i int) *_footerLogger {
	return &_footerLogger{logger: logger, i: i}
}

func (l *_footerLogger) Println(v ...any) {
	l.logger.SetFooter(fmt.Sprintln(v...), l.i)
}
func (l *_footerLogger) Printf(format string, v ...any) {
	l.logger.SetFooter(fmt.Sprintf(format, v...), l.i)
}
func (l *_footerLogger) Print(v ...any) {
	l.logger.SetFooter(fmt.Sprint(v...), l.i)
}

func runeCountIgnoringAnsi(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func footerHeight(footer string, width int) int {
	if footer == "" {
		return 0
	}
	height := 0
	for _, line := range strings.Split(footer, "\n") {
		height += 1 + runeCountIgnoringAnsi(line)/MaxInt(width, 1)
	}
	return height
}

func (l *LiveLogger) footerString() string {
	return strings.Join(l.footers, "\n")
}

func (l *LiveLogger) Println(v ...any) {
	l.Print(fmt.Sprintln(v...))
}

func (l *LiveLogger) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

func (l *LiveLogger) Print(xs ...any) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.printLive(Some(fmt.Sprint(xs...)), l.footerString())
}

func (l *LiveLogger) SetFooter(s string, index int) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i := len(l.footers) - 1; i < index; i++ {
		l.footers = append(l.footers, "")
	}
	l.footers[index] = strings.TrimSpace(s)

	l.printLive(Empty[string](), l.footerString())
}

func (l *LiveLogger) FlushFooter() {
	l.lock.Lock()
	defer l.lock.Unlock()

	footer := l.footerString()
	l.footers = []string{}
	l.printLive(Some(footer), "")
}

var _liveLines = 0

func (l *LiveLogger) printLive(output Optional[string], footer string) {
	// rewind over the previously printed footer, write the new output above
	// it, then repaint the footer
	if _liveLines > 0 {
		fmt.Printf("\033[%dA\033[J", _liveLines)
	}

	if output.HasValue() {
		out := output.Value()
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		fmt.Print(out)
	}

	if footer != "" {
		fmt.Println(footer)
	}
	_liveLines = footerHeight(footer, termWidth())
}
