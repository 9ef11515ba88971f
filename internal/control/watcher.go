package control

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ytget/movebreak/internal/platform"
)

// DefaultSettingsDebounce coalesces the burst of events an editor or an
// atomic save produces
const DefaultSettingsDebounce = 250 * time.Millisecond

// Handler receives control requests. Methods are called from the watcher
// goroutine.
type Handler interface {
	HandleCommand(cmd Command, payload string)
	SettingsChanged()
}

// Option configures a Watcher
type Option func(*Watcher)

// WithSettingsDebounce overrides the settings reload delay
func WithSettingsDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher turns file system events into Handler calls
type Watcher struct {
	dir          string
	settingsPath string
	handler      Handler
	debounce     time.Duration
	fs           *fsnotify.Watcher

	mu     sync.Mutex
	reload *time.Timer
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates the control directory and watches it together with the
// directory holding settingsPath. settingsPath may be empty.
func NewWatcher(dir, settingsPath string, handler Handler, opts ...Option) (*Watcher, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create control directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		dir:          filepath.Clean(dir),
		settingsPath: settingsPath,
		handler:      handler,
		debounce:     DefaultSettingsDebounce,
		fs:           fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	if settingsPath != "" {
		w.settingsPath = filepath.Clean(settingsPath)
		settingsDir := filepath.Dir(w.settingsPath)
		if settingsDir != w.dir {
			if err := platform.CreateDirectoryIfNotExists(settingsDir); err != nil {
				fsw.Close()
				return nil, fmt.Errorf("failed to create settings directory: %w", err)
			}
			if err := fsw.Add(settingsDir); err != nil {
				fsw.Close()
				return nil, fmt.Errorf("failed to watch %s: %w", settingsDir, err)
			}
		}
	}

	return w, nil
}

// Dir returns the control directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Start handles command files left from before the start and then watches
// for new ones until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.closed || w.cancel != nil {
		w.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()

	w.drain()

	go w.loop(ctx, done)
	log.Printf("[control] Watching %s", w.dir)
}

func (w *Watcher) drain() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		log.Printf("[control] Failed to list %s: %v", w.dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w.handleFile(filepath.Join(w.dir, e.Name()))
	}
}

func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[control] Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Clean(event.Name)
	if w.settingsPath != "" && name == w.settingsPath {
		w.scheduleReload()
		return
	}
	if filepath.Dir(name) == w.dir && !event.Has(fsnotify.Rename) {
		w.handleFile(name)
	}
}

func (w *Watcher) handleFile(path string) {
	cmd, ok := ParseCommand(filepath.Base(path))
	if !ok {
		return
	}

	payload, ok, err := readAndRemove(path)
	if err != nil {
		log.Printf("[control] Failed to consume %s: %v", path, err)
		return
	}
	if !ok {
		return
	}

	log.Printf("[control] Command: %s %s", cmd, payload)
	w.handler.HandleCommand(cmd, payload)
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.reload != nil {
		w.reload.Stop()
	}
	w.reload = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		log.Printf("[control] Settings file changed: %s", w.settingsPath)
		w.handler.SettingsChanged()
	})
}

// Close stops watching and releases the underlying watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.reload != nil {
		w.reload.Stop()
	}
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return w.fs.Close()
}
