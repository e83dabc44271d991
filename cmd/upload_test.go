package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg"
)

// setupTestCtrl wires the package-level ctrl to httptest servers and a
// throwaway database. The upload server answers with the given status.
func setupTestCtrl(t *testing.T, uploadStatus int, uploadBody string) {
	t.Helper()

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t","expire":123,"signature":"s"}`))
	}))
	t.Cleanup(authSrv.Close)

	uploadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(uploadStatus)
		w.Write([]byte(uploadBody))
	}))
	t.Cleanup(uploadSrv.Close)

	db, err := pkg.GetDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	client := api.NewClient(api.Params{APIBase: authSrv.URL, UploadBase: uploadSrv.URL, PublicKey: "pub"})
	ctrl, err = pkg.NewCliCtrl(client, db)
	if err != nil {
		t.Fatalf("failed to create ctrl: %v", err)
	}
	t.Cleanup(func() { ctrl = nil })
}

func TestRunUpload_FailedUploadsReturnError(t *testing.T) {
	setupTestCtrl(t, http.StatusBadRequest, `{"message":"Your request contains invalid signature"}`)

	file := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(file, []byte("image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	uploadCmd.SetContext(context.Background())
	err := runUpload(uploadCmd, []string{file})
	if err == nil {
		t.Fatal("expected an error when uploads fail")
	}
	if !strings.Contains(err.Error(), "failed to upload") {
		t.Errorf("error = %q, want failure count message", err)
	}
}

func TestRunUpload_NoMediaFiles(t *testing.T) {
	setupTestCtrl(t, http.StatusOK, `{"filePath":"/uploads/a.jpg"}`)

	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("text"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	uploadCmd.SetContext(context.Background())
	if err := runUpload(uploadCmd, []string{file}); err == nil {
		t.Error("expected an error when no media files match")
	}
}
