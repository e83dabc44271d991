package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg/model"
)

// Uploader uploads batches of media files through per-file Controls, with a
// worker pool and local deduplication by content hash.
type Uploader struct {
	client   *api.Client
	storage  Storage
	grants   api.GrantSource
	notifier Notifier
	ctx      context.Context
	config   model.UploadConfig
	folder   string
	theme    model.Theme
}

// NewUploader creates a new Uploader instance
func NewUploader(ctx context.Context, client *api.Client, storage Storage, config model.UploadConfig, folder string, theme model.Theme) *Uploader {
	return &Uploader{
		client:   client,
		storage:  storage,
		grants:   client,
		notifier: NewConsoleNotifier(theme),
		ctx:      ctx,
		config:   config,
		folder:   folder,
		theme:    theme,
	}
}

// SetGrantSource swaps the auth grant source used by every control.
func (u *Uploader) SetGrantSource(src api.GrantSource) {
	u.grants = src
}

// UploadFiles uploads multiple files to the configured remote folder. Each
// call owns its progress tracker, so concurrent batches on one Uploader do
// not interfere.
func (u *Uploader) UploadFiles(files []string) (*UploadSummary, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	var totalBytes int64
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			totalBytes += info.Size()
		}
	}

	tracker := NewProgressTracker(len(files), totalBytes)

	fileChan := make(chan string, len(files))
	resultChan := make(chan *UploadResult, len(files))
	var wg sync.WaitGroup

	workers := u.config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go u.uploadWorker(tracker, fileChan, resultChan, &wg)
	}

	for _, file := range files {
		fileChan <- file
	}
	close(fileChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	summary := &UploadSummary{
		TotalFiles: len(files),
		Errors:     make([]UploadFailure, 0),
	}

	for result := range resultChan {
		if result.Success {
			summary.CompletedFiles++
			summary.UploadedBytes += result.UploadedBytes
		} else if result.Skipped {
			summary.SkippedFiles++
		} else {
			summary.FailedFiles++
			summary.Errors = append(summary.Errors, UploadFailure{
				FileName: result.FileName,
				Error:    result.Error,
			})
		}

		fmt.Printf("\r%s", tracker.Render())
	}

	fmt.Println()

	return summary, nil
}

// uploadWorker processes files from the file channel
func (u *Uploader) uploadWorker(tracker *ProgressTracker, fileChan <-chan string, resultChan chan<- *UploadResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for filePath := range fileChan {
		result := u.uploadFile(tracker, filePath)
		resultChan <- result
	}
}

// uploadFile runs the full pipeline for a single file: detect kind, hash,
// dedupe, extract metadata, then trigger the control.
func (u *Uploader) uploadFile(tracker *ProgressTracker, filePath string) *UploadResult {
	tracker.SetCurrentFile(filepath.Base(filePath))

	result := &UploadResult{
		FileName: filepath.Base(filePath),
	}

	kind, ok := DetectKind(filePath)
	if !ok {
		result.Error = fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
		tracker.AddFailedFile()
		return result
	}

	fileHash, err := ComputeFileHash(filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to compute hash: %w", err)
		tracker.AddFailedFile()
		return result
	}

	if !u.config.ForceUpload && u.storage != nil {
		entry, found, err := CheckLocalDuplicate(u.ctx, u.storage, fileHash)
		if err != nil {
			result.Error = fmt.Errorf("failed to check duplicate: %w", err)
			tracker.AddFailedFile()
			return result
		}
		if found {
			result.Skipped = true
			result.RemotePath = entry.RemotePath
			tracker.AddSkippedFile()
			return result
		}
	}

	metadata, err := ExtractMetadata(filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to extract metadata: %w", err)
		tracker.AddFailedFile()
		return result
	}

	control := NewControl(u.client, ControlConfig{
		Kind:    kind,
		Folder:  u.folder,
		Variant: u.theme,
	}, u.notifier)
	control.SetGrantSource(u.grants)

	outcome := control.Trigger(u.ctx, filePath)
	if !outcome.OK {
		result.Error = fmt.Errorf("upload failed: %s", outcome.Reason)
		tracker.AddFailedFile()
		return result
	}

	if u.storage != nil {
		entry := &model.HistoryEntry{
			RemotePath: outcome.RemotePath,
			Name:       filepath.Base(filePath),
			Folder:     u.folder,
			Size:       metadata.FileSize,
			Kind:       kind,
			Width:      metadata.Width,
			Height:     metadata.Height,
			UploadedAt: time.Now().UnixMicro(),
		}
		if err := u.storage.SaveHistoryEntry(u.ctx, fileHash, entry); err != nil {
			// Non-fatal, the upload itself succeeded
			fmt.Printf("\nWarning: failed to store history entry: %v\n", err)
		}
	}

	result.Success = true
	result.RemotePath = outcome.RemotePath
	result.UploadedBytes = metadata.FileSize
	tracker.AddCompletedFile()
	tracker.AddUploadedBytes(metadata.FileSize)

	return result
}
