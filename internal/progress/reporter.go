package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter shows that a backend request is in flight. The CLI has no other
// loading indicator: a hung backend call keeps the spinner going.
type Reporter interface {
	Start(message string)
	Done(message string)
	Fail(err error)
}

// NewReporter returns a TerminalReporter when stderr is an interactive
// terminal outside CI, and a LineReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		return &LineReporter{W: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	go r.spin(r.bar)
}

// spin keeps the spinner moving until the bar is finished.
func (r *TerminalReporter) spin(bar *progressbar.ProgressBar) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if bar.IsFinished() {
			return
		}
		_ = bar.Add(1)
	}
}

func (r *TerminalReporter) Done(message string) {
	r.finish()
	if message != "" {
		fmt.Fprintln(os.Stderr, message)
	}
}

func (r *TerminalReporter) Fail(err error) {
	r.finish()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func (r *TerminalReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// LineReporter prints one line per state change, suitable for CI logs and
// pipes.
type LineReporter struct {
	W io.Writer
}

func (r *LineReporter) Start(message string) {
	fmt.Fprintf(r.W, "%s...\n", message)
}

func (r *LineReporter) Done(message string) {
	if message != "" {
		fmt.Fprintln(r.W, message)
	}
}

func (r *LineReporter) Fail(err error) {
	fmt.Fprintf(r.W, "Error: %v\n", err)
}
