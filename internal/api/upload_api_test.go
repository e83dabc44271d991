package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestUploadFile_ForwardsGrantAndFields(t *testing.T) {
	content := []byte("fake image bytes")
	filePath := writeTempFile(t, "photo.jpg", content)

	var form map[string]string
	var fileBytes []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/files/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		form = make(map[string]string)
		for k, v := range r.MultipartForm.Value {
			form[k] = v[0]
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()
		buf := make([]byte, len(content)+1)
		n, _ := f.Read(buf)
		fileBytes = buf[:n]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fileId":"f1","name":"photo.jpg","filePath":"/img/abc.png","url":"https://ik.example/img/abc.png","size":16}`))
	}))
	defer srv.Close()

	client := NewClient(Params{UploadBase: srv.URL, PublicKey: "pub_key"})
	resp, err := client.UploadFile(context.Background(), UploadRequest{
		FilePath:          filePath,
		FileName:          "photo.jpg",
		Folder:            "/img",
		UseUniqueFileName: true,
		Auth:              &AuthGrant{Token: "t", Expire: 123, Signature: "s"},
	}, UploadHooks{})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	want := map[string]string{
		"token":             "t",
		"expire":            "123",
		"signature":         "s",
		"publicKey":         "pub_key",
		"fileName":          "photo.jpg",
		"folder":            "/img",
		"useUniqueFileName": "true",
	}
	for k, v := range want {
		if form[k] != v {
			t.Errorf("form field %s = %q, want %q", k, form[k], v)
		}
	}
	if string(fileBytes) != string(content) {
		t.Errorf("file content mismatch: got %q", fileBytes)
	}
	if resp.FilePath != "/img/abc.png" {
		t.Errorf("unexpected filePath: %s", resp.FilePath)
	}
}

func TestUploadFile_Hooks(t *testing.T) {
	content := make([]byte, 100*1024)
	filePath := writeTempFile(t, "photo.jpg", content)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		w.Write([]byte(`{"filePath":"/img/p.jpg"}`))
	}))
	defer srv.Close()

	started := 0
	var lastLoaded, lastTotal int64
	client := NewClient(Params{UploadBase: srv.URL, PublicKey: "pub"})
	_, err := client.UploadFile(context.Background(), UploadRequest{
		FilePath: filePath,
		FileName: "photo.jpg",
		Auth:     &AuthGrant{Token: "t", Expire: 1, Signature: "s"},
	}, UploadHooks{
		OnStart: func() { started++ },
		OnProgress: func(loaded, total int64) {
			lastLoaded, lastTotal = loaded, total
		},
	})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	if started != 1 {
		t.Errorf("OnStart called %d times, want 1", started)
	}
	if lastTotal != int64(len(content)) {
		t.Errorf("total = %d, want %d", lastTotal, len(content))
	}
	if lastLoaded != lastTotal {
		t.Errorf("final loaded = %d, want %d", lastLoaded, lastTotal)
	}
}

func TestUploadFile_ServerError(t *testing.T) {
	filePath := writeTempFile(t, "photo.jpg", []byte("x"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Your request contains invalid signature"}`))
	}))
	defer srv.Close()

	client := NewClient(Params{UploadBase: srv.URL, PublicKey: "pub"})
	_, err := client.UploadFile(context.Background(), UploadRequest{
		FilePath: filePath,
		FileName: "photo.jpg",
		Auth:     &AuthGrant{Token: "t", Expire: 1, Signature: "bad"},
	}, UploadHooks{})

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if upErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", upErr.StatusCode)
	}
	if !strings.Contains(upErr.Message, "invalid signature") {
		t.Errorf("message %q does not contain server message", upErr.Message)
	}
}

func TestUploadFile_MissingGrant(t *testing.T) {
	client := NewClient(Params{PublicKey: "pub"})
	_, err := client.UploadFile(context.Background(), UploadRequest{FilePath: "x"}, UploadHooks{})

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
}

func TestProgressReader(t *testing.T) {
	var calls []int64
	pr := &progressReader{
		r:     strings.NewReader("abcdefghij"),
		total: 10,
		onProgress: func(loaded, total int64) {
			calls = append(calls, loaded)
		},
	}

	buf := make([]byte, 4)
	for {
		if _, err := pr.Read(buf); err != nil {
			break
		}
	}

	if len(calls) == 0 {
		t.Fatal("no progress calls")
	}
	if calls[len(calls)-1] != 10 {
		t.Errorf("final loaded = %d, want 10", calls[len(calls)-1])
	}
	for i := 1; i < len(calls); i++ {
		if calls[i] < calls[i-1] {
			t.Errorf("loaded went backwards: %v", calls)
		}
	}
}
