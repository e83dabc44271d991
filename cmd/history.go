package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List uploads recorded in the local history",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := ctrl.ListHistory(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No uploads recorded.")
			return nil
		}

		for _, e := range entries {
			uploaded := time.UnixMicro(e.UploadedAt).Format(time.RFC3339)
			fmt.Printf("%s  %-5s  %8d bytes  %s\n", uploaded, e.Kind, e.Size, e.RemotePath)
			if url := ctrl.Client.DeliveryURL(e.RemotePath); url != "" {
				fmt.Printf("  %s\n", url)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
