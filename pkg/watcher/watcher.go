package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg/model"
	"github.com/imagekit-tools/cli/pkg/uploader"
)

// StateStore persists watcher state across restarts.
type StateStore interface {
	SaveWatchState(ctx context.Context, state *model.WatchState) error
}

// Watcher orchestrates folder watching and automatic uploads of settled
// media files.
type Watcher struct {
	ctx           context.Context
	client        *api.Client
	storage       uploader.Storage
	states        StateStore
	state         *model.WatchState
	theme         model.Theme
	fileWatcher   *FileWatcher
	debounceQueue *DebounceQueue
	uploader      *uploader.Uploader

	processingFiles   map[string]bool // Files currently being processed
	processingFilesMu sync.Mutex
	stopped           bool // Set under processingFilesMu; no new workers after this
	uploadWorkers     sync.WaitGroup
}

// NewWatcher creates a new Watcher instance
func NewWatcher(ctx context.Context, client *api.Client, storage uploader.Storage, states StateStore, state *model.WatchState, config model.UploadConfig, theme model.Theme) (*Watcher, error) {
	w := &Watcher{
		ctx:             ctx,
		client:          client,
		storage:         storage,
		states:          states,
		state:           state,
		theme:           theme,
		processingFiles: make(map[string]bool),
	}

	w.uploader = uploader.NewUploader(ctx, client, storage, config, state.Folder, theme)

	debounceDuration := time.Duration(state.DebounceMs) * time.Millisecond
	w.debounceQueue = NewDebounceQueue(debounceDuration)

	fileWatcher, err := NewFileWatcher(w.onFileEvent, w.onNewDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fileWatcher = fileWatcher

	return w, nil
}

// SetGrantSource swaps the auth grant source used for uploads.
func (w *Watcher) SetGrantSource(src api.GrantSource) {
	w.uploader.SetGrantSource(src)
}

// Start begins watching the folder
func (w *Watcher) Start() error {
	if err := w.fileWatcher.AddRecursive(w.state.WatchPath); err != nil {
		return fmt.Errorf("failed to add watch path: %w", err)
	}

	w.fileWatcher.Start()

	fmt.Printf("Watching folder: %s\n", w.state.WatchPath)
	fmt.Printf("Remote folder: %s\n", w.state.Folder)
	fmt.Printf("Workers: %d\n", w.state.Workers)
	fmt.Printf("Debounce: %dms\n", w.state.DebounceMs)
	fmt.Println("\nPress Ctrl+C to stop watching...")

	return nil
}

// PerformInitialScan uploads media files already present in the folder.
func (w *Watcher) PerformInitialScan() error {
	fmt.Println("Performing initial scan...")

	var files []string
	err := filepath.Walk(w.state.WatchPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip inaccessible files
		}
		if !info.IsDir() && uploader.IsMediaFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	fmt.Printf("Found %d media file(s) in initial scan\n", len(files))
	if len(files) == 0 {
		return nil
	}

	summary, err := w.uploader.UploadFiles(files)
	if err != nil {
		return err
	}
	fmt.Printf("Initial scan: %d uploaded, %d skipped, %d failed\n",
		summary.CompletedFiles, summary.SkippedFiles, summary.FailedFiles)

	return w.persistState()
}

// onFileEvent queues a file for upload once its writes settle.
func (w *Watcher) onFileEvent(filePath string) {
	w.debounceQueue.Add(filePath, w.processFile)
}

// onNewDirectory is invoked when a subdirectory appears; recursive watching
// of its contents is handled by the file watcher itself.
func (w *Watcher) onNewDirectory(dirPath string) {
	fmt.Printf("Watching new directory: %s\n", dirPath)
}

// processFile uploads a single settled file.
func (w *Watcher) processFile(filePath string) {
	w.processingFilesMu.Lock()
	if w.stopped || w.processingFiles[filePath] {
		w.processingFilesMu.Unlock()
		return
	}
	w.processingFiles[filePath] = true
	// Registered under the same lock that Stop uses to set stopped, so a
	// late debounce timer can never race the final Wait.
	w.uploadWorkers.Add(1)
	w.processingFilesMu.Unlock()
	go func() {
		defer w.uploadWorkers.Done()
		defer func() {
			w.processingFilesMu.Lock()
			delete(w.processingFiles, filePath)
			w.processingFilesMu.Unlock()
		}()

		summary, err := w.uploader.UploadFiles([]string{filePath})
		if err != nil {
			fmt.Printf("Failed to upload %s: %v\n", filepath.Base(filePath), err)
			return
		}
		if summary.SkippedFiles > 0 {
			fmt.Printf("Skipped duplicate: %s\n", filepath.Base(filePath))
		}

		if err := w.persistState(); err != nil {
			fmt.Printf("Warning: failed to persist watch state: %v\n", err)
		}
	}()
}

func (w *Watcher) persistState() error {
	if w.states == nil {
		return nil
	}
	return w.states.SaveWatchState(w.ctx, w.state)
}

// Stop shuts the watcher down, waiting for in-flight uploads to finish.
func (w *Watcher) Stop() error {
	w.debounceQueue.Stop()
	w.processingFilesMu.Lock()
	w.stopped = true
	w.processingFilesMu.Unlock()
	err := w.fileWatcher.Close()
	w.uploadWorkers.Wait()
	return err
}
