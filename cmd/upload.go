package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imagekit-tools/cli/pkg"
	"github.com/imagekit-tools/cli/pkg/model"
	"github.com/imagekit-tools/cli/pkg/uploader"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload images and videos to ImageKit",
	Long: `Upload one or more media files.

Images up to 20 MB and videos up to 50 MB are accepted. Files already
uploaded (same content hash) are skipped unless --force is given.

Examples:
  ik upload photo.jpg
  ik upload photo1.jpg clip.mp4 --folder=/press
  ik upload *.jpg --workers=8
  ik upload media/ -r --self-sign`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP("folder", "f", uploader.DefaultFolder, "Remote destination folder")
	uploadCmd.Flags().BoolP("recursive", "r", false, "Recursively upload directories")
	uploadCmd.Flags().IntP("workers", "w", uploader.DefaultWorkers, "Number of concurrent uploads")
	uploadCmd.Flags().Bool("force", false, "Upload even if an identical file was uploaded before")
	uploadCmd.Flags().String("theme", string(model.ThemeDark), "Notice color theme (dark or light)")
	uploadCmd.Flags().Bool("self-sign", false, "Sign auth grants locally with the stored private key")
}

func runUpload(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	recursive, _ := cmd.Flags().GetBool("recursive")
	workers, _ := cmd.Flags().GetInt("workers")
	force, _ := cmd.Flags().GetBool("force")
	theme, _ := cmd.Flags().GetString("theme")
	selfSign, _ := cmd.Flags().GetBool("self-sign")

	files, err := discoverFiles(args, recursive)
	if err != nil {
		return fmt.Errorf("error discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no media files found to upload")
	}

	fmt.Printf("Found %d file(s) to upload\n", len(files))

	summary, err := ctrl.Upload(cmd.Context(), files, pkg.UploadOptions{
		Folder:   folder,
		Theme:    model.Theme(theme),
		SelfSign: selfSign,
	}, model.UploadConfig{
		Workers:     workers,
		ForceUpload: force,
	})
	if err != nil {
		return err
	}

	printUploadSummary(summary)

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed to upload", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// discoverFiles discovers all media files from the provided paths
func discoverFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, path := range paths {
		// Expand glob patterns (e.g., *.jpg)
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", path, err)
		}
		if len(matches) == 0 {
			matches = []string{path}
		}

		for _, match := range matches {
			if err := collectFiles(match, recursive, &files, seen); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

// collectFiles collects media files from a path (file or directory)
func collectFiles(path string, recursive bool, files *[]string, seen map[string]bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}

	if seen[absPath] {
		return nil
	}
	seen[absPath] = true

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}

	if info.IsDir() {
		if !recursive {
			return fmt.Errorf("'%s' is a directory (use -r for recursive upload)", path)
		}

		entries, err := os.ReadDir(absPath)
		if err != nil {
			return fmt.Errorf("failed to read directory '%s': %w", path, err)
		}

		for _, entry := range entries {
			entryPath := filepath.Join(absPath, entry.Name())
			if err := collectFiles(entryPath, recursive, files, seen); err != nil {
				// Skip files/dirs we can't access
				continue
			}
		}
	} else if uploader.IsMediaFile(absPath) {
		*files = append(*files, absPath)
	}

	return nil
}

// printUploadSummary prints the upload summary
func printUploadSummary(summary *uploader.UploadSummary) {
	fmt.Println("\n=== Upload Summary ===")
	fmt.Printf("Total files: %d\n", summary.TotalFiles)
	fmt.Printf("Completed: %d\n", summary.CompletedFiles)

	if summary.SkippedFiles > 0 {
		fmt.Printf("Skipped (duplicates): %d\n", summary.SkippedFiles)
	}

	if summary.FailedFiles > 0 {
		fmt.Printf("Failed: %d\n", summary.FailedFiles)
		if len(summary.Errors) > 0 {
			fmt.Println("\nErrors:")
			for _, uploadErr := range summary.Errors {
				fmt.Printf("  - %s: %v\n", uploadErr.FileName, uploadErr.Error)
			}
		}
	}
}
