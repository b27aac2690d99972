package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yolodolo42/checkback/internal/server"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "checkback",
		Short: "Human feedback collector for AI agents",
		Long: `checkback is an MCP server that lets an AI agent pause and ask you
to review its work. The agent calls the interactive_feedback tool; checkback
opens a terminal form where you can leave feedback, pick from the agent's
choices, run verification commands, and attach screenshots.

Run it with no arguments to serve MCP over stdio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := DataDir()
			if err != nil {
				return fmt.Errorf("failed to resolve data directory: %w", err)
			}
			if err := os.MkdirAll(dataDir, 0o700); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			setupLogging()

			return server.New(dataDir, Version).Serve()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.checkback/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".checkback")
		if err := os.MkdirAll(configDir, 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config directory: %v\n", err)
		}

		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("checkback")
	viper.AutomaticEnv()

	// Silently ignore missing config file - it's optional
	_ = viper.ReadInConfig()
}

// setupLogging points slog at stderr; stdout belongs to the MCP protocol.
func setupLogging() {
	level := slog.LevelInfo
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// DataDir returns the checkback data directory path.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".checkback"), nil
}
