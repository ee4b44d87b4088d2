package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a message on one terminal line until it is stopped or
// its context ends. The line is cleared either way.
type spinner struct {
	w       io.Writer
	msg     string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped atomic.Bool
}

// startSpinner begins animating msg on w.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, msg: msg, ctx: ctx, cancel: cancel, done: make(chan struct{})}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			blank := strings.Repeat(" ", utf8.RuneCountInString(s.msg)+2)
			fmt.Fprintf(s.w, "\r%s\r", blank)
			return
		case <-tick.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", StyleHighlight.Render(frame), StyleDim.Render(s.msg))
		}
	}
}

// Stop ends the animation and waits until the line is cleared. Calling it
// again is a no-op.
func (s *spinner) Stop() {
	s.stopped.Store(true)
	s.cancel()
	<-s.done
}

// Interrupted reports whether the parent context ended before Stop.
func (s *spinner) Interrupted() bool {
	return s.ctx.Err() != nil && !s.stopped.Load()
}
