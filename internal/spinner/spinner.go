// Package spinner shows progress on an interactive terminal while labgrade
// waits on the network.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// Start animates message on w until the returned stop function is called.
// Nothing is drawn unless w is a terminal.
func Start(w io.Writer, message string) (stop func()) {
	if !isTerminal(w) {
		return func() {}
	}
	return run(w, message, interval)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func run(w io.Writer, message string, every time.Duration) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				// Blank the line so the next output starts clean.
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", runewidth.StringWidth(message)+2)) //nolint:errcheck
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}
