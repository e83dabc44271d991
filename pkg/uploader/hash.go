package uploader

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/minio/blake2b-simd"
)

// ComputeFileHash computes the BLAKE2b-256 hash of file content, used as the
// deduplication key in the local history store.
func ComputeFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := blake2b.New256()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
