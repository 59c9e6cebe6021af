package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// elapsedAfter is how long a wait runs before the spinner starts showing
// elapsed seconds. Analyst calls can take tens of seconds.
const elapsedAfter = 5 * time.Second

// Spinner displays an animated braille spinner on a writer (typically
// stderr) while a slow call is in flight. It is safe for concurrent use,
// Update may be called from any goroutine.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	started time.Time
	done    chan struct{}
	stopped bool
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins the spinner animation with the given message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	s.message = message
	s.started = time.Now()
	s.done = make(chan struct{})
	s.stopped = false
	s.mu.Unlock()

	go s.loop(s.done)
}

// Update changes the displayed message while the spinner is running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the spinner and clears its line. It is idempotent, and no
// frame is written after it returns.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+16))
}

func (s *Spinner) loop(done chan struct{}) {
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	i := 0
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				return
			}
			line := fmt.Sprintf("\r%c %s", spinnerFrames[i%len(spinnerFrames)], s.message)
			if since := time.Since(s.started); since >= elapsedAfter {
				line += fmt.Sprintf(" (%ds)", int(since.Seconds()))
			}
			// Pad to overwrite leftovers from a longer previous message
			fmt.Fprintf(s.w, "%-80s", line)
			s.mu.Unlock()

			i++
		}
	}
}
