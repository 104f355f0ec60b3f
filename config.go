package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"pdf_toolkit/api"
	"pdf_toolkit/pdf"
)

const (
	// DefaultMaxFileSize is the default maximum file size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"

	// DefaultLogLevel and DefaultLogFormat configure logrus
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// setConfigDefaults registers defaults and the unprefixed environment
// variables older deployments set.
func setConfigDefaults() {
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("max_file_size", DefaultMaxFileSize)
	viper.SetDefault("temp_dir", DefaultTempDir)
	viper.SetDefault("ghostscript", pdf.DefaultGhostscriptBinary)
	viper.SetDefault("gs_timeout", pdf.DefaultCLITimeout)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("log_format", DefaultLogFormat)

	_ = viper.BindEnv("port", "PDFTOOL_PORT", "PORT")
	_ = viper.BindEnv("max_file_size", "PDFTOOL_MAX_FILE_SIZE", "MAX_FILE_SIZE")
	_ = viper.BindEnv("temp_dir", "PDFTOOL_TEMP_DIR", "TEMP_DIR")
}

// loadConfig reads the effective configuration and builds the logger.
func loadConfig() (*api.Config, error) {
	config := &api.Config{
		Port:               viper.GetString("port"),
		MaxFileSize:        viper.GetInt64("max_file_size"),
		TempDir:            viper.GetString("temp_dir"),
		GhostscriptBinary:  viper.GetString("ghostscript"),
		GhostscriptTimeout: viper.GetDuration("gs_timeout"),
		LogLevel:           viper.GetString("log_level"),
		LogFormat:          viper.GetString("log_format"),
	}

	if config.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max_file_size must be positive, got %d", config.MaxFileSize)
	}
	if config.GhostscriptTimeout <= 0 {
		config.GhostscriptTimeout = pdf.DefaultCLITimeout
	}

	logger, err := newLogger(config.LogLevel, config.LogFormat)
	if err != nil {
		return nil, err
	}
	config.Logger = logger
	return config, nil
}

func newLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log_format %q (supported: text, json)", format)
	}
	return logger, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `config prints the configuration pdftool would run with after merging
defaults, the config file and environment variables. With --detect it also
probes for Ghostscript the way "serve" does at startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if detect, _ := cmd.Flags().GetBool("detect"); detect {
			config.Capabilities = pdf.DetectCapabilities(cmd.Context(), config.GhostscriptBinary)
		}

		out, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.Flags().Bool("detect", false, "probe for external tools")
	rootCmd.AddCommand(configCmd)
}
