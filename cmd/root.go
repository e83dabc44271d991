package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imagekit-tools/cli/internal/api"
	"github.com/imagekit-tools/cli/pkg"
)

var ctrl *pkg.CliCtrl

var rootCmd = &cobra.Command{
	Use:   "ik",
	Short: "Upload images and videos to ImageKit",
	Long: `ik is a command-line client for the ImageKit media service.

It uploads images and videos through the hosted upload API, authorized by
short-lived grants fetched from your backend (or self-signed from a stored
private key), and keeps a local history for duplicate detection.

Configuration is read once at startup from the config file and IK_*
environment variables:

  public_key    Account public key (IK_PUBLIC_KEY)
  url_endpoint  Delivery (CDN) base URL (IK_URL_ENDPOINT)
  api_base      Backend issuing auth grants (IK_API_BASE)
  upload_base   Upload API host, defaults to https://upload.imagekit.io
  db_path       Local state database path`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initCtrl()
	},
}

// Execute runs the root command. The state database is closed here rather
// than in a PostRun hook so it happens on error paths too.
func Execute() {
	err := rootCmd.Execute()
	if ctrl != nil && ctrl.DB != nil {
		_ = ctrl.DB.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/ik-cli/config.yaml)")
}

// initConfig reads configuration once; everything downstream receives the
// resolved values rather than reading ambient state.
func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ik-cli"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("IK")
	viper.AutomaticEnv()
	viper.SetDefault("upload_base", api.DefaultUploadBase)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initCtrl() error {
	params := api.Params{
		APIBase:     viper.GetString("api_base"),
		UploadBase:  viper.GetString("upload_base"),
		PublicKey:   viper.GetString("public_key"),
		URLEndpoint: viper.GetString("url_endpoint"),
	}
	if params.PublicKey == "" {
		return fmt.Errorf("public_key is not configured (set IK_PUBLIC_KEY or the config file)")
	}

	dbPath := viper.GetString("db_path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir := filepath.Join(home, ".config", "ik-cli")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		dbPath = filepath.Join(dir, "ik.db")
	}

	db, err := pkg.GetDB(dbPath)
	if err != nil {
		return err
	}

	ctrl, err = pkg.NewCliCtrl(api.NewClient(params), db)
	return err
}
