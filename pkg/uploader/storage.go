package uploader

import (
	"context"

	"github.com/imagekit-tools/cli/pkg/model"
)

// Storage defines the interface for upload history persistence
type Storage interface {
	GetHistoryEntry(ctx context.Context, fileHash string) (*model.HistoryEntry, error)
	SaveHistoryEntry(ctx context.Context, fileHash string, entry *model.HistoryEntry) error
}

// CheckLocalDuplicate looks up a content hash in the history store. A hit
// means the same bytes were uploaded before.
func CheckLocalDuplicate(ctx context.Context, storage Storage, fileHash string) (*model.HistoryEntry, bool, error) {
	entry, err := storage.GetHistoryEntry(ctx, fileHash)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, nil
	}
	return entry, true, nil
}
