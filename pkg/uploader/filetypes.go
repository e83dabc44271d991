package uploader

import (
	"path/filepath"
	"strings"

	"github.com/imagekit-tools/cli/pkg/model"
)

// Supported image extensions
var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".heic": true,
	".heif": true,
	".tiff": true,
	".tif":  true,
}

// Supported video extensions
var supportedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
}

// DetectKind determines the media kind of a file by extension.
func DetectKind(filePath string) (model.MediaKind, bool) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch {
	case supportedImageExtensions[ext]:
		return model.KindImage, true
	case supportedVideoExtensions[ext]:
		return model.KindVideo, true
	default:
		return "", false
	}
}

// IsMediaFile checks if a file is a supported image or video.
func IsMediaFile(filePath string) bool {
	_, ok := DetectKind(filePath)
	return ok
}

// MatchesAccept checks a file against a browser-style accept pattern such as
// "image/*", "video/mp4" or a comma-separated list. An empty pattern accepts
// everything.
func MatchesAccept(filePath, accept string) bool {
	if accept == "" {
		return true
	}
	kind, ok := DetectKind(filePath)
	if !ok {
		return false
	}
	for _, pattern := range strings.Split(accept, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "*/*" || pattern == string(kind)+"/*" {
			return true
		}
		if strings.HasPrefix(pattern, string(kind)+"/") {
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
			sub := strings.TrimPrefix(pattern, string(kind)+"/")
			if sub == ext || (sub == "jpeg" && ext == "jpg") {
				return true
			}
		}
	}
	return false
}
