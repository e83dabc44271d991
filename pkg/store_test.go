package pkg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg/model"
)

func newTestCtrl(t *testing.T) *CliCtrl {
	t.Helper()

	db, err := GetDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctrl, err := NewCliCtrl(api.NewClient(api.Params{PublicKey: "pub"}), db)
	if err != nil {
		t.Fatalf("failed to create ctrl: %v", err)
	}
	return ctrl
}

func TestHistoryEntry_Roundtrip(t *testing.T) {
	ctrl := newTestCtrl(t)
	ctx := context.Background()

	entry := &model.HistoryEntry{
		FileID:     "f1",
		RemotePath: "/img/abc.png",
		Name:       "abc.png",
		Folder:     "/img",
		Size:       1234,
		Kind:       model.KindImage,
		UploadedAt: 1700000000000000,
	}

	if err := ctrl.SaveHistoryEntry(ctx, "hash1", entry); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := ctrl.GetHistoryEntry(ctx, "hash1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found")
	}
	if got.RemotePath != entry.RemotePath || got.Size != entry.Size || got.Kind != entry.Kind {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestGetHistoryEntry_Missing(t *testing.T) {
	ctrl := newTestCtrl(t)

	got, err := ctrl.GetHistoryEntry(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown hash, got %+v", got)
	}
}

func TestListHistory(t *testing.T) {
	ctrl := newTestCtrl(t)
	ctx := context.Background()

	for i, hash := range []string{"h1", "h2", "h3"} {
		entry := &model.HistoryEntry{RemotePath: "/img/file.png", Size: int64(i)}
		if err := ctrl.SaveHistoryEntry(ctx, hash, entry); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	entries, err := ctrl.ListHistory(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestWatchState_Roundtrip(t *testing.T) {
	ctrl := newTestCtrl(t)
	ctx := context.Background()

	state := &model.WatchState{
		WatchPath:  "/home/user/Pictures",
		Folder:     "/camera",
		Workers:    4,
		DebounceMs: 5000,
		StartedAt:  1700000000,
	}

	if err := ctrl.SaveWatchState(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if state.LastProcessed == 0 {
		t.Error("LastProcessed not stamped on save")
	}

	got, err := ctrl.GetWatchState(ctx, "/home/user/Pictures")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Folder != "/camera" || got.Workers != 4 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestPutGetDeleteValue(t *testing.T) {
	ctrl := newTestCtrl(t)
	ctx := context.Background()

	if err := ctrl.PutValue(ctx, model.KVConfig, []byte("k"), []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	value, err := ctrl.GetValue(ctx, model.KVConfig, []byte("k"))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(value) != "v" {
		t.Errorf("value = %q, want %q", value, "v")
	}

	if err := ctrl.DeleteValue(ctx, model.KVConfig, []byte("k")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	value, _ = ctrl.GetValue(ctx, model.KVConfig, []byte("k"))
	if value != nil {
		t.Errorf("value still present after delete: %q", value)
	}
}
