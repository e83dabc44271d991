package uploader

import (
	"fmt"

	"github.com/imagekit-tools/cli/pkg/model"
)

// Outcome is the tagged result of one upload attempt. Exactly one of the two
// shapes applies: OK with RemotePath set, or not OK with Reason set.
type Outcome struct {
	OK         bool
	RemotePath string
	Reason     string
}

// ValidationError means the selected file was rejected before any transfer
// was attempted.
type ValidationError struct {
	Path   string
	Size   int64
	Limit  int64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: size %d exceeds limit %d", e.Path, e.Size, e.Limit)
}

// UploadResult represents the result of uploading one file in a batch.
type UploadResult struct {
	FileName      string
	Success       bool
	Skipped       bool // True if file was skipped due to deduplication
	Error         error
	RemotePath    string
	UploadedBytes int64
}

// UploadSummary provides overall statistics for an upload session
type UploadSummary struct {
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int
	SkippedFiles   int
	UploadedBytes  int64
	Errors         []UploadFailure
}

// UploadFailure captures details about a failed upload
type UploadFailure struct {
	FileName string
	Error    error
}

// Default configuration values
const (
	DefaultWorkers = 4
	DefaultFolder  = "/uploads"
)

// NewUploadConfig creates a default upload configuration
func NewUploadConfig() model.UploadConfig {
	return model.UploadConfig{
		Workers:     DefaultWorkers,
		ForceUpload: false,
	}
}
