package uploader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/imagekit-tools/cli/pkg/model"
)

// ExtractMetadata extracts metadata from a local media file. EXIF fields are
// best effort: videos and stripped images fall back to filesystem times.
func ExtractMetadata(filePath string) (*model.FileMetadata, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	kind, _ := DetectKind(filePath)
	metadata := &model.FileMetadata{
		Title:            filepath.Base(filePath),
		FileSize:         info.Size(),
		Kind:             kind,
		CreationTime:     info.ModTime().UnixMicro(),
		ModificationTime: info.ModTime().UnixMicro(),
		LocalModified:    info.ModTime(),
	}

	if kind != model.KindImage {
		return metadata, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return metadata, nil
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		// Not all images have EXIF data, this is not an error
		return metadata, nil
	}

	if dt, err := exifData.DateTime(); err == nil {
		metadata.CreationTime = dt.UnixMicro()
	}

	if lat, lon, err := exifData.LatLong(); err == nil {
		metadata.Latitude = lat
		metadata.Longitude = lon
	}

	if tag, err := exifData.Get(exif.PixelXDimension); err == nil {
		if width, err := tag.Int(0); err == nil {
			metadata.Width = width
		}
	}
	if tag, err := exifData.Get(exif.PixelYDimension); err == nil {
		if height, err := tag.Int(0); err == nil {
			metadata.Height = height
		}
	}

	return metadata, nil
}
