// Package viewport tracks the terminal width so the reader can pick the
// single-page or spread layout and react to window resizes.
package viewport

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"storyreel/internal/logging"
)

// ErrNotTerminal indicates the output is not attached to a terminal, so no
// width can be measured.
var ErrNotTerminal = errors.New("output is not a terminal")

// Columns returns the current width of the terminal attached to f.
func Columns(f *os.File) (int, error) {
	if f == nil {
		return 0, ErrNotTerminal
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, ErrNotTerminal
	}
	return int(ws.Col), nil
}

// Watcher delivers the terminal width on start and again after every window
// resize. Widths are reported through the handler passed at construction.
type Watcher struct {
	file    *os.File
	logger  *slog.Logger
	handler func(columns int)

	mu      sync.Mutex
	signals chan os.Signal
	quit    chan struct{}
	running bool
}

// NewWatcher creates a watcher bound to the given terminal file, usually
// os.Stdout. Returns nil when the file is not a terminal.
func NewWatcher(f *os.File, logger *slog.Logger, handler func(columns int)) *Watcher {
	if _, err := Columns(f); err != nil {
		return nil
	}
	return &Watcher{
		file:    f,
		logger:  logging.NewComponentLogger(logger, "viewport"),
		handler: handler,
	}
}

// Start reports the current width and begins listening for resize signals.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	columns, err := Columns(w.file)
	if err != nil {
		return err
	}

	w.signals = make(chan os.Signal, 1)
	signal.Notify(w.signals, syscall.SIGWINCH)
	w.quit = make(chan struct{})
	w.running = true

	// Pass channels to the goroutine to avoid reading fields without the lock.
	quit := w.quit
	signals := w.signals
	go w.watchLoop(ctx, signals, quit)

	w.logger.Debug("viewport watcher started", logging.Int("columns", columns))

	if w.handler != nil {
		w.handler(columns)
	}
	return nil
}

// Stop shuts down the watcher.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	signal.Stop(w.signals)
	close(w.quit)
	w.quit = nil
	w.signals = nil
	w.running = false

	w.logger.Debug("viewport watcher stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, signals <-chan os.Signal, quit <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		case <-signals:
			columns, err := Columns(w.file)
			if err != nil {
				w.logger.Warn("failed to read terminal size after resize", logging.Error(err))
				continue
			}
			w.logger.Debug("terminal resized", logging.Int("columns", columns))
			if w.handler != nil {
				w.handler(columns)
			}
		}
	}
}
