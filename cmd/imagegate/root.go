package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/basel-ax/imagegate/internal/config"
	"github.com/basel-ax/imagegate/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "imagegate",
	Short: "Server-side proxy for prompt-to-image generation",
	Long: `imagegate accepts a text prompt over HTTP, forwards it to the Imagen
predict API with a server-held key, and returns the image as a data URI.

The API key is read from GOOGLE_API_KEY and never reaches the caller.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Optional dotenv file loaded before the environment")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads configuration and applies LOG_FORMAT unless --log-json
// already asked for JSON.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if cfg.LogFormat == "json" && !jsonOutput {
		logging.Setup(verbose, true, os.Stderr)
	}
	return cfg, nil
}
