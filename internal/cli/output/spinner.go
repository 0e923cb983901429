package output

import (
	"fmt"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on stderr while a blocking call runs.
// It is a no-op when the renderer is not attached to a terminal.
type Spinner struct {
	r       *Renderer
	message string

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner for message.
func (r *Renderer) NewSpinner(message string) *Spinner {
	return &Spinner{r: r, message: message}
}

// Start begins animating.
func (s *Spinner) Start() {
	if !s.r.isTTY {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; ; i++ {
		_, _ = fmt.Fprintf(s.r.errOut, "\r%s %s", s.r.styles.Muted.Render(spinnerFrames[i%len(spinnerFrames)]), s.message)
		select {
		case <-stop:
			_, _ = fmt.Fprint(s.r.errOut, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(msg string) {
	s.Stop()
	s.r.Success(msg)
}

// Fail stops the spinner and prints an error line.
func (s *Spinner) Fail(msg string) {
	s.Stop()
	s.r.Error(msg)
}
