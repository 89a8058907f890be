package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressBar reports detection progress as a terminal bar. Nothing is drawn
// when the writer is not a terminal.
type ProgressBar struct {
	mu    sync.Mutex
	out   io.Writer
	tty   bool
	bar   *progressbar.ProgressBar
	total int
	done  int
}

// NewProgressBar creates a reporter drawing on stderr
func NewProgressBar() *ProgressBar {
	return &ProgressBar{out: os.Stderr, tty: IsInteractiveEnvironment()}
}

// Begin resets the counters and shows the bar
func (p *ProgressBar) Begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total, p.done = total, 0
	p.release(true)
	if p.tty && total > 0 {
		p.bar = p.newBar(total)
	}
}

// Advance counts one analyzed class
func (p *ProgressBar) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done >= p.total {
		return
	}
	p.done++
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes the bar, or abandons it when the run failed
func (p *ProgressBar) Finish(success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(success)
}

// Done returns the number of classes counted so far
func (p *ProgressBar) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// SetWriter redirects the bar; only a terminal file keeps it visible
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.out = w
	f, ok := w.(*os.File)
	p.tty = ok && term.IsTerminal(int(f.Fd()))
}

// Visible reports whether a bar would be drawn
func (p *ProgressBar) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tty
}

// Close implements domain.ProgressReporter
func (p *ProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(true)
}

func (p *ProgressBar) release(success bool) {
	if p.bar == nil {
		return
	}
	if success {
		_ = p.bar.Finish()
	} else {
		_ = p.bar.Exit()
	}
	p.bar = nil
}

func (p *ProgressBar) newBar(total int) *progressbar.ProgressBar {
	out := p.out
	if out == nil {
		out = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Analyzing classes"),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("classes"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
	)
}

// IsInteractiveEnvironment reports whether stderr is a terminal outside CI
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv("GODSCN_NO_PROGRESS") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
