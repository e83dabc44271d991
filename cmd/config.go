package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/imagekit-tools/cli/pkg/secrets"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration and credentials",
	// Config commands work without a fully configured client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("public_key:   %s\n", viper.GetString("public_key"))
		fmt.Printf("url_endpoint: %s\n", viper.GetString("url_endpoint"))
		fmt.Printf("api_base:     %s\n", viper.GetString("api_base"))
		fmt.Printf("upload_base:  %s\n", viper.GetString("upload_base"))

		key, err := secrets.PrivateKey()
		if err != nil {
			return err
		}
		if key != "" {
			fmt.Println("private_key:  stored in keyring")
		} else {
			fmt.Println("private_key:  not set")
		}
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the account private key in the OS keyring",
	Long: `Store the account private key for self-signed auth grants.

The key is read from the terminal without echo and kept in the OS keyring,
never in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("Private key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		key := strings.TrimSpace(string(raw))
		if err := secrets.SavePrivateKey(key); err != nil {
			return err
		}
		fmt.Println("Private key stored.")
		return nil
	},
}

var configDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the stored private key from the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.DeletePrivateKey(); err != nil {
			return err
		}
		fmt.Println("Private key removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetKeyCmd, configDeleteKeyCmd)
}
