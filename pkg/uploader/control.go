package uploader

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg/model"
)

// ControlConfig configures one Control. It is immutable for the lifetime of
// the instance.
type ControlConfig struct {
	Kind              model.MediaKind
	Accept            string // browser-style accept pattern, defaults per kind
	Placeholder       string // shown while no remote path is known
	Folder            string // remote destination folder
	Variant           model.Theme
	InitialRemotePath string
	// OnFileChange is invoked exactly once per successful upload with the
	// remote path assigned by the service.
	OnFileChange func(remotePath string)
}

// Control drives a single-file upload against the hosted media service: it
// validates the selected file, fetches an auth grant, hands the file to the
// upload API and tracks the transfer lifecycle. At most one upload is in
// flight per Control.
type Control struct {
	cfg      ControlConfig
	client   *api.Client
	grants   api.GrantSource
	notifier Notifier

	mu         sync.Mutex
	remotePath string
	progress   int
	status     model.UploadStatus
}

// NewControl creates a Control bound to the given client.
func NewControl(client *api.Client, cfg ControlConfig, notifier Notifier) *Control {
	if cfg.Kind == "" {
		cfg.Kind = model.KindImage
	}
	if cfg.Accept == "" {
		cfg.Accept = cfg.Kind.AcceptPattern()
	}
	if notifier == nil {
		notifier = NewConsoleNotifier(cfg.Variant)
	}
	return &Control{
		cfg:        cfg,
		client:     client,
		grants:     client,
		notifier:   notifier,
		remotePath: cfg.InitialRemotePath,
		status:     model.UploadStatusIdle,
	}
}

// SetGrantSource swaps the auth grant source, e.g. for a local signer.
func (c *Control) SetGrantSource(src api.GrantSource) {
	c.grants = src
}

// Trigger is the sole entry point: it runs one upload attempt for the given
// file. Errors are logged and surfaced as notices, never returned; the
// Outcome reports whether a remote path was obtained.
func (c *Control) Trigger(ctx context.Context, filePath string) Outcome {
	c.setStatus(model.UploadStatusSelecting)

	info, err := os.Stat(filePath)
	if err != nil {
		log.Printf("cannot read selected file: %v", err)
		c.notifier.Failure(fmt.Sprintf("cannot read %s", filepath.Base(filePath)))
		c.setStatus(model.UploadStatusFailed)
		return Outcome{Reason: err.Error()}
	}

	if !c.ValidateSelectedFile(filePath, info.Size()) {
		c.setStatus(model.UploadStatusIdle)
		return Outcome{Reason: "file rejected by validation"}
	}

	grant, err := c.grants.GetAuthGrant(ctx)
	if err != nil {
		return c.handleError(err)
	}

	resp, err := c.client.UploadFile(ctx, api.UploadRequest{
		FilePath:          filePath,
		FileName:          filepath.Base(filePath),
		Folder:            c.cfg.Folder,
		UseUniqueFileName: true,
		Auth:              grant,
	}, api.UploadHooks{
		OnStart:    c.handleStart,
		OnProgress: c.handleProgress,
	})
	if err != nil {
		return c.handleError(err)
	}

	return c.handleSuccess(resp)
}

// ValidateSelectedFile rejects files above the kind-dependent size ceiling
// or outside the accept pattern, surfacing a notice. No transfer is started
// for a rejected file.
func (c *Control) ValidateSelectedFile(filePath string, size int64) bool {
	if !MatchesAccept(filePath, c.cfg.Accept) {
		log.Printf("%v", &ValidationError{Path: filePath, Reason: "does not match accept pattern " + c.cfg.Accept})
		c.notifier.Failure(fmt.Sprintf("%s is not an accepted %s file", filepath.Base(filePath), c.cfg.Kind))
		return false
	}

	limit := c.cfg.Kind.Ceiling()
	if size > limit {
		log.Printf("%v", &ValidationError{Path: filePath, Size: size, Limit: limit})
		c.notifier.Failure(fmt.Sprintf("%s is too large (limit %d MB for %ss)",
			filepath.Base(filePath), limit/(1024*1024), c.cfg.Kind))
		return false
	}
	return true
}

// handleStart resets the progress percentage for a fresh transfer. This is
// the only place progress is reset; completion leaves the last value behind.
func (c *Control) handleStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = 0
	c.status = model.UploadStatusUploading
}

func (c *Control) handleProgress(loaded, total int64) {
	if total <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = int(math.Round(float64(loaded) / float64(total) * 100))
}

// handleSuccess records the remote path from a success payload and notifies
// the caller. A payload without a path counts as a failure.
func (c *Control) handleSuccess(resp *api.UploadResponse) Outcome {
	if resp == nil || resp.FilePath == "" {
		return c.handleError(&api.UploadError{Message: "No file path returned"})
	}

	c.mu.Lock()
	c.remotePath = resp.FilePath
	c.status = model.UploadStatusCompleted
	c.mu.Unlock()

	c.notifier.Success(fmt.Sprintf("%s uploaded to %s", c.cfg.Kind, resp.FilePath))
	if c.cfg.OnFileChange != nil {
		c.cfg.OnFileChange(resp.FilePath)
	}
	return Outcome{OK: true, RemotePath: resp.FilePath}
}

// handleError surfaces the failure and leaves the last successful remote
// path in place. There is no automatic retry.
func (c *Control) handleError(err error) Outcome {
	log.Printf("upload attempt failed: %v", err)
	c.notifier.Failure(fmt.Sprintf("%s upload failed", c.cfg.Kind))
	c.setStatus(model.UploadStatusFailed)
	return Outcome{Reason: err.Error()}
}

func (c *Control) setStatus(s model.UploadStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

// RemotePath returns the currently known remote path, if any.
func (c *Control) RemotePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remotePath
}

// Progress returns the last reported transfer percentage.
func (c *Control) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Status returns the current lifecycle status.
func (c *Control) Status() model.UploadStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns a snapshot of the displayed state.
func (c *Control) State() model.UploadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.UploadState{
		CurrentRemotePath: c.remotePath,
		ProgressPercent:   c.progress,
	}
}

// PreviewURL returns the CDN URL of the current remote path, or "" when no
// upload has completed yet.
func (c *Control) PreviewURL() string {
	return c.client.DeliveryURL(c.RemotePath())
}

// Render returns the terminal representation of the control: the remote
// path (or placeholder), a preview URL once known, and a progress bar while
// a transfer is running. The bar is hidden at exactly 100.
func (c *Control) Render() string {
	c.mu.Lock()
	path := c.remotePath
	progress := c.progress
	c.mu.Unlock()

	var b strings.Builder
	if path != "" {
		fmt.Fprintf(&b, "%s\n", path)
		if url := c.client.DeliveryURL(path); url != "" {
			fmt.Fprintf(&b, "preview: %s\n", url)
		}
	} else if c.cfg.Placeholder != "" {
		fmt.Fprintf(&b, "%s\n", c.cfg.Placeholder)
	}

	if progress > 0 && progress < 100 {
		fmt.Fprintf(&b, "[%s] %d%%\n", renderBar(progress, 30), progress)
	}
	return b.String()
}

// renderBar builds a fixed-width block progress bar.
func renderBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return bar.String()
}
