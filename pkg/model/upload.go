package model

import "time"

// UploadStatus represents the current state of an upload
type UploadStatus int

const (
	UploadStatusIdle UploadStatus = iota
	UploadStatusSelecting
	UploadStatusUploading
	UploadStatusCompleted
	UploadStatusFailed
)

func (s UploadStatus) String() string {
	switch s {
	case UploadStatusIdle:
		return "idle"
	case UploadStatusSelecting:
		return "selecting"
	case UploadStatusUploading:
		return "uploading"
	case UploadStatusCompleted:
		return "completed"
	case UploadStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadState tracks what a control currently displays: the last known
// remote path and the in-flight transfer percentage. The percentage is only
// meaningful while a transfer is running; it is reset by the next start
// event, not by completion.
type UploadState struct {
	CurrentRemotePath string `json:"currentRemotePath,omitempty"`
	ProgressPercent   int    `json:"progressPercent"`
}

// FileMetadata contains metadata extracted from a local media file before
// upload. Width/height and capture time come from EXIF when present.
type FileMetadata struct {
	Title            string    `json:"title"`
	FileSize         int64     `json:"-"`
	Kind             MediaKind `json:"kind"`
	CreationTime     int64     `json:"creationTime"`     // microseconds since epoch
	ModificationTime int64     `json:"modificationTime"` // microseconds since epoch
	Latitude         float64   `json:"latitude,omitempty"`
	Longitude        float64   `json:"longitude,omitempty"`
	Width            int       `json:"width,omitempty"`
	Height           int       `json:"height,omitempty"`
	LocalModified    time.Time `json:"-"`
}

// HistoryEntry records one completed upload, keyed in the store by the
// content hash of the local file.
type HistoryEntry struct {
	FileID     string    `json:"fileId"`
	RemotePath string    `json:"remotePath"`
	Name       string    `json:"name"`
	Folder     string    `json:"folder"`
	Size       int64     `json:"size"`
	Kind       MediaKind `json:"kind"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	UploadedAt int64     `json:"uploadedAt"` // unix micros
}

// UploadConfig contains configuration for the multi-file uploader.
type UploadConfig struct {
	Workers     int  // Number of concurrent upload workers
	ForceUpload bool // Upload even when the content hash is already known
}
