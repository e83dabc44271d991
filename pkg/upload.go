package pkg

import (
	"context"
	"fmt"

	"github.com/imagekit-tools/cli/pkg/model"
	"github.com/imagekit-tools/cli/pkg/secrets"
	"github.com/imagekit-tools/cli/pkg/uploader"
)

// UploadOptions carries per-invocation settings for a batch upload.
type UploadOptions struct {
	Folder   string
	Theme    model.Theme
	SelfSign bool // Sign grants locally with the keyring private key
}

// Upload uploads files to the hosted media service.
func (c *CliCtrl) Upload(ctx context.Context, files []string, opts UploadOptions, config model.UploadConfig) (*uploader.UploadSummary, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	if opts.Folder == "" {
		opts.Folder = uploader.DefaultFolder
	}

	up := uploader.NewUploader(ctx, c.Client, c, config, opts.Folder, opts.Theme)

	if opts.SelfSign {
		key, err := secrets.PrivateKey()
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("no private key stored; run 'ik config set-key' first")
		}
		signer, err := secrets.NewSigner(key)
		if err != nil {
			return nil, err
		}
		up.SetGrantSource(signer)
	}

	summary, err := up.UploadFiles(files)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return summary, nil
}
