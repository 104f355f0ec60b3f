// Package main is the entry point for pdftool: an HTTP service and CLI for
// merging, compressing, inserting, splitting and watermarking PDF files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdftool CLI.
var rootCmd = &cobra.Command{
	Use:   "pdftool",
	Short: "Merge, compress, insert, split and watermark PDF files",
	Long: `pdftool manipulates PDF documents. Run "pdftool serve" to expose the
operations over HTTP, or use the subcommands directly on local files.

Page ranges are written the way a reader counts pages: "1-3, 5-8, 10" selects
pages one to three, five to eight and ten.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdftool.yaml or ~/.config/pdftool/pdftool.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	setConfigDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftool")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftool"))
		}
	}

	viper.SetEnvPrefix("PDFTOOL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
