package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
)

// UploadRequest describes one file transfer to the upload API.
type UploadRequest struct {
	FilePath          string // Local path of the file to upload
	FileName          string // Target file name
	Folder            string // Destination folder, e.g. "/images"
	UseUniqueFileName bool
	Auth              *AuthGrant
}

// UploadResponse is the success payload returned by the upload API.
type UploadResponse struct {
	FileID       string `json:"fileId"`
	Name         string `json:"name"`
	FilePath     string `json:"filePath"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Size         int64  `json:"size"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	FileType     string `json:"fileType,omitempty"`
}

// UploadHooks receives transfer lifecycle events. Loaded/total are file
// bytes; OnProgress fires after every read from the source file.
type UploadHooks struct {
	OnStart    func()
	OnProgress func(loaded, total int64)
}

// progressReader counts bytes read from the underlying file and reports
// them through the progress hook.
type progressReader struct {
	r          io.Reader
	loaded     int64
	total      int64
	onProgress func(loaded, total int64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		if p.onProgress != nil {
			p.onProgress(p.loaded, p.total)
		}
	}
	return n, err
}

// UploadFile streams a single file to the upload API as a multipart form,
// authorized by the given grant. The grant's token, expire and signature are
// forwarded exactly as issued.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest, hooks UploadHooks) (*UploadResponse, error) {
	if req.Auth == nil {
		return nil, &UploadError{Message: "missing auth grant"}
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to open file: %v", err)}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to stat file: %v", err)}
	}

	if hooks.OnStart != nil {
		hooks.OnStart()
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, c.params.PublicKey, req, &progressReader{
			r:          file,
			total:      info.Size(),
			onProgress: hooks.OnProgress,
		})
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.params.UploadBase+"/api/v1/files/upload", pr)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UploadError{
			StatusCode: resp.StatusCode,
			Message:    uploadErrorMessage(body),
		}
	}

	var result UploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("malformed upload response: %v", err)}
	}

	return &result, nil
}

// writeUploadForm writes the multipart fields the upload API expects. The
// file part goes last so the small fields are never stuck behind the stream.
func writeUploadForm(mw *multipart.Writer, publicKey string, req UploadRequest, file io.Reader) error {
	fields := map[string]string{
		"fileName":          req.FileName,
		"publicKey":         publicKey,
		"token":             req.Auth.Token,
		"expire":            strconv.FormatInt(req.Auth.Expire, 10),
		"signature":         req.Auth.Signature,
		"useUniqueFileName": strconv.FormatBool(req.UseUniqueFileName),
	}
	if req.Folder != "" {
		fields["folder"] = req.Folder
	}

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	part, err := mw.CreateFormFile("file", req.FileName)
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to stream file: %w", err)
	}
	return nil
}

// uploadErrorMessage extracts the message from an upload API error body,
// falling back to the raw body.
func uploadErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
