// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2obsidian CLI.
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

// rootCmd is the base command for the pdf2obsidian CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2obsidian",
	Short: "Turn extracted PDFs into Obsidian-ready note folders",
	Long: `pdf2obsidian wraps an external PDF-extraction tool and reorganizes its
output into an Obsidian-friendly vault: one folder per paper with a main
note, per-figure and per-table notes, extracted table data, and a root
index listing every processed paper.

The extraction itself (layout analysis, OCR, figure and table detection)
is delegated entirely to the extractor; pdf2obsidian parses its output
defensively and never touches the PDF directly.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2obsidian.yaml or ~/.config/pdf2obsidian/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2obsidian")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2obsidian"))
		}
	}

	viper.SetEnvPrefix("PDF2OBSIDIAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
