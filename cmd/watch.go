package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/imagekit-tools/cli/pkg/model"
	"github.com/imagekit-tools/cli/pkg/uploader"
	"github.com/imagekit-tools/cli/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Watch a folder and automatically upload new media files",
	Long: `Watch a folder for new images and videos and upload them as they appear.

Features:
  - Recursive watching (automatically watches subdirectories)
  - Duplicate detection (files are not re-uploaded)
  - Debouncing (waits for file writes to complete)
  - State persistence (recovers on restart)
  - Graceful shutdown (Ctrl+C)

Examples:
  ik watch ~/Pictures
  ik watch ~/Pictures --folder=/camera --initial-scan
  ik watch ~/Videos --workers=2 --debounce=3000`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("folder", "f", uploader.DefaultFolder, "Remote destination folder")
	watchCmd.Flags().IntP("workers", "w", uploader.DefaultWorkers, "Number of concurrent uploads")
	watchCmd.Flags().Int("debounce", 5000, "File write debounce in milliseconds")
	watchCmd.Flags().Bool("initial-scan", false, "Upload existing files on startup")
	watchCmd.Flags().String("theme", string(model.ThemeDark), "Notice color theme (dark or light)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	watchPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(watchPath)
	if err != nil {
		return fmt.Errorf("cannot watch '%s': %w", watchPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", watchPath)
	}

	folder, _ := cmd.Flags().GetString("folder")
	workers, _ := cmd.Flags().GetInt("workers")
	debounceMs, _ := cmd.Flags().GetInt("debounce")
	initialScan, _ := cmd.Flags().GetBool("initial-scan")
	theme, _ := cmd.Flags().GetString("theme")

	state := &model.WatchState{
		WatchPath:  watchPath,
		Folder:     folder,
		Workers:    workers,
		DebounceMs: debounceMs,
		StartedAt:  time.Now().Unix(),
	}

	w, err := watcher.NewWatcher(cmd.Context(), ctrl.Client, ctrl, ctrl, state,
		model.UploadConfig{Workers: workers}, model.Theme(theme))
	if err != nil {
		return err
	}

	if initialScan {
		if err := w.PerformInitialScan(); err != nil {
			fmt.Printf("Warning: initial scan failed: %v\n", err)
		}
	}

	if err := w.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	return w.Stop()
}
