package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderSpinner animates a progress line on stderr while a rasterization
// runs. It clears itself when stopped or when the command context ends.
type renderSpinner struct {
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner creates a spinner bound to ctx and starts the animation.
func startSpinner(ctx context.Context, message string) *renderSpinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &renderSpinner{
		message: message,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *renderSpinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *renderSpinner) Stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

// Fail stops the spinner and prints an error line in its place.
func (s *renderSpinner) Fail(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *renderSpinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
