package uploader

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker accumulates counters for one batch and renders them as a
// single status line. Safe for use from multiple workers.
type ProgressTracker struct {
	totalFiles     int
	completedFiles int
	failedFiles    int
	skippedFiles   int
	totalBytes     int64
	uploadedBytes  int64
	currentFile    string
	startTime      time.Time
	mu             sync.RWMutex
}

// NewProgressTracker starts the clock for a batch of totalFiles files
// summing totalBytes.
func NewProgressTracker(totalFiles int, totalBytes int64) *ProgressTracker {
	return &ProgressTracker{
		totalFiles: totalFiles,
		totalBytes: totalBytes,
		startTime:  time.Now(),
	}
}

// SetCurrentFile records the file name shown in the status line.
func (p *ProgressTracker) SetCurrentFile(filename string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentFile = filename
}

func (p *ProgressTracker) AddCompletedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completedFiles++
}

func (p *ProgressTracker) AddFailedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failedFiles++
}

// AddSkippedFile counts a file skipped as a local duplicate.
func (p *ProgressTracker) AddSkippedFile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skippedFiles++
}

func (p *ProgressTracker) AddUploadedBytes(bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploadedBytes += bytes
}

// Render builds the status line: processed count, current file, bar,
// percentage and throughput. Percentage is byte-based when the total size
// is known, file-based otherwise.
func (p *ProgressTracker) Render() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)
	processed := p.completedFiles + p.failedFiles + p.skippedFiles

	var percentComplete float64
	if p.totalBytes > 0 {
		percentComplete = float64(p.uploadedBytes) / float64(p.totalBytes) * 100
	} else if p.totalFiles > 0 {
		percentComplete = float64(processed) / float64(p.totalFiles) * 100
	}

	var speed string
	if elapsed.Seconds() > 0 {
		bytesPerSec := float64(p.uploadedBytes) / elapsed.Seconds()
		speed = fmt.Sprintf(" @ %s/s", formatBytes(int64(bytesPerSec)))
	}

	status := fmt.Sprintf("[%d/%d] %s [%s] %.1f%% (%s / %s)%s",
		processed, p.totalFiles,
		truncateFilename(p.currentFile, 30),
		renderBar(int(percentComplete), 30),
		percentComplete,
		formatBytes(p.uploadedBytes), formatBytes(p.totalBytes),
		speed)

	if p.failedFiles > 0 {
		status += fmt.Sprintf(" | %d failed", p.failedFiles)
	}
	if p.skippedFiles > 0 {
		status += fmt.Sprintf(" | %d skipped", p.skippedFiles)
	}

	return status
}

// GetSummary reports the finished batch in a multi-line block.
func (p *ProgressTracker) GetSummary() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)

	summary := fmt.Sprintf("\nUpload complete in %s\n", elapsed.Round(time.Second))
	summary += fmt.Sprintf("  Completed: %d\n", p.completedFiles)
	if p.skippedFiles > 0 {
		summary += fmt.Sprintf("  Skipped (duplicates): %d\n", p.skippedFiles)
	}
	if p.failedFiles > 0 {
		summary += fmt.Sprintf("  Failed: %d\n", p.failedFiles)
	}
	summary += fmt.Sprintf("  Total uploaded: %s\n", formatBytes(p.uploadedBytes))

	return summary
}

// formatBytes renders a byte count with a binary-prefix unit.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncateFilename(filename string, maxLen int) string {
	if len(filename) <= maxLen {
		return filename
	}
	if maxLen <= 3 {
		return filename[:maxLen]
	}
	return filename[:maxLen-3] + "..."
}
