package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/imagekit-tools/cli/pkg/uploader"
)

// FileWatcher wraps fsnotify.Watcher to provide file system watching capabilities
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	onFile   func(string) // Callback when a media file sees a write event
	onNewDir func(string) // Callback when a new directory is created
	mu       sync.RWMutex // Protects watched map
	watched  map[string]bool
	closed   bool
}

// NewFileWatcher creates a new FileWatcher instance
func NewFileWatcher(onFile func(string), onNewDir func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		onFile:   onFile,
		onNewDir: onNewDir,
		watched:  make(map[string]bool),
	}, nil
}

// AddRecursive adds a directory and all its subdirectories to the watch list
func (fw *FileWatcher) AddRecursive(rootPath string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip directories we can't access
			return nil
		}
		if info.IsDir() {
			if fw.watched[path] {
				return nil
			}
			if err := fw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
			fw.watched[path] = true
		}
		return nil
	})
}

func (fw *FileWatcher) addDirectory(dirPath string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.watched[dirPath] {
		return nil
	}
	if err := fw.watcher.Add(dirPath); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dirPath, err)
	}
	fw.watched[dirPath] = true
	return nil
}

// Start begins watching for file system events
func (fw *FileWatcher) Start() {
	go fw.eventLoop()
}

func (fw *FileWatcher) eventLoop() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Watch error: %v\n", err)
		}
	}
}

// handleEvent processes a single file system event. Renames surface as
// CREATE, so CREATE and WRITE cover everything we care about.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// File might have been deleted between event and stat
		return
	}

	if info.IsDir() {
		if err := fw.addDirectory(event.Name); err == nil && fw.onNewDir != nil {
			fw.onNewDir(event.Name)
		}
		return
	}

	if uploader.IsMediaFile(event.Name) && fw.onFile != nil {
		fw.onFile(event.Name)
	}
}

// Close stops the watcher and releases its resources
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return nil
	}
	fw.closed = true
	return fw.watcher.Close()
}
