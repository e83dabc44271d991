package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/imagekit-tools/cli/pkg/model"
)

// GetDB opens the local bolt store.
func GetDB(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", path, err)
	}
	return db, nil
}

func (c *CliCtrl) initBuckets() error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		for _, store := range []model.Store{model.KVConfig, model.Uploads, model.WatchStates} {
			if _, err := tx.CreateBucketIfNotExists([]byte(store)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", store, err)
			}
		}
		return nil
	})
}

func (c *CliCtrl) PutValue(_ context.Context, store model.Store, key []byte, value []byte) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			return fmt.Errorf("store %s not found", store)
		}
		return bucket.Put(key, value)
	})
}

func (c *CliCtrl) GetValue(_ context.Context, store model.Store, key []byte) ([]byte, error) {
	var value []byte
	err := c.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			return fmt.Errorf("store %s not found", store)
		}
		if v := bucket.Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (c *CliCtrl) DeleteValue(_ context.Context, store model.Store, key []byte) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			return fmt.Errorf("store %s not found", store)
		}
		return bucket.Delete(key)
	})
}

// GetHistoryEntry retrieves the upload history entry for a content hash.
// A nil entry means the hash has not been uploaded before.
func (c *CliCtrl) GetHistoryEntry(ctx context.Context, fileHash string) (*model.HistoryEntry, error) {
	value, err := c.GetValue(ctx, model.Uploads, []byte(fileHash))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var entry model.HistoryEntry
	if err := json.Unmarshal(value, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
	}
	return &entry, nil
}

// SaveHistoryEntry records a completed upload keyed by content hash.
func (c *CliCtrl) SaveHistoryEntry(ctx context.Context, fileHash string, entry *model.HistoryEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	return c.PutValue(ctx, model.Uploads, []byte(fileHash), value)
}

// ListHistory returns all recorded uploads.
func (c *CliCtrl) ListHistory(_ context.Context) ([]model.HistoryEntry, error) {
	entries := make([]model.HistoryEntry, 0)
	err := c.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(model.Uploads))
		if bucket == nil {
			return fmt.Errorf("store %s not found", model.Uploads)
		}
		return bucket.ForEach(func(_, v []byte) error {
			var entry model.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil // Skip unreadable entries
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// GetWatchState retrieves the persisted watcher state for a path.
func (c *CliCtrl) GetWatchState(ctx context.Context, watchPath string) (*model.WatchState, error) {
	value, err := c.GetValue(ctx, model.WatchStates, []byte(watchPath))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	var state model.WatchState
	if err := json.Unmarshal(value, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watch state: %w", err)
	}
	return &state, nil
}

// SaveWatchState persists the watcher state for its path.
func (c *CliCtrl) SaveWatchState(ctx context.Context, state *model.WatchState) error {
	state.LastProcessed = time.Now().Unix()
	value, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal watch state: %w", err)
	}
	return c.PutValue(ctx, model.WatchStates, []byte(state.WatchPath), value)
}
