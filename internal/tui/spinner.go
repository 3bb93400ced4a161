package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner renders per-submission build progress on a terminal line
type Spinner struct {
	out     io.Writer
	frames  []string
	fps     time.Duration
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
}

// NewSpinner creates a new spinner writing to out
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{
		out:    out,
		frames: spinner.Dot.Frames,
		fps:    spinner.Dot.FPS,
	}
}

// Begin starts the animation for file
func (s *Spinner) Begin(file string) {
	s.mu.Lock()
	s.message = filepath.Base(file)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.fps)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r  %s %s ", s.frames[i%len(s.frames)], s.message)
			s.mu.Unlock()

			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// End stops the animation and prints the outcome for file
func (s *Spinner) End(file string, err error) {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop, s.done = nil, nil

	if err == nil {
		fmt.Fprintf(s.out, "\r  ✓ %s\n", filepath.Base(file))
	} else {
		fmt.Fprintf(s.out, "\r  ✗ %s\n", filepath.Base(file))
	}
}
