// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2obsidian/internal/catalog"
	"github.com/pdiddy/pdf2obsidian/internal/extractor"
	"github.com/pdiddy/pdf2obsidian/internal/meta"
	"github.com/pdiddy/pdf2obsidian/internal/pipeline"
	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract PDFs into note-ready vault folders",
	Long: `Process runs the extractor on each input PDF and writes one vault folder
per paper: main.md, notes.md, metadata.yaml, figures/FigN with notes, and
tables/TableN as CSV with notes. The vault's index.md gains one entry per
newly processed paper.

Metadata (up to three author surnames, year, journal abbreviation) comes
from a YAML sidecar file next to the PDF when present, or an interactive
prompt otherwise. A paper whose vault folder already exists is skipped.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	vaultDir, _ := cmd.Flags().GetString("output")
	if vaultDir == "" {
		vaultDir = viper.GetString("vault.dir")
	}
	if vaultDir == "" {
		return fmt.Errorf("output vault directory required: use -o or set vault.dir")
	}

	binary, _ := cmd.Flags().GetString("extractor")
	if binary == "" {
		binary = viper.GetString("extractor.binary")
	}
	keepWorkdir, _ := cmd.Flags().GetBool("keep-workdir")
	if !keepWorkdir {
		keepWorkdir = viper.GetBool("extractor.keep_workdir")
	}
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")

	runner, err := extractor.NewRunner(types.ExtractorConfig{Binary: binary})
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Runner:      runner,
		Resolver:    &meta.PromptResolver{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()},
		VaultDir:    vaultDir,
		KeepWorkdir: keepWorkdir,
	}

	if !noCatalog {
		store, err := catalog.NewStore(vaultDir, catalogConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog disabled: %v\n", err)
		} else {
			defer store.Close()
			opts.Catalog = store
		}
	}

	result, err := pipeline.ProcessBatch(cmd.Context(), input, opts, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed processing", result.Failed)
	}
	return nil
}

func init() {
	processCmd.Flags().StringP("input", "i", "", "input PDF file or folder")
	processCmd.Flags().StringP("output", "o", "", "output vault directory")
	processCmd.Flags().String("extractor", "", "extractor binary name or path (default: mineru)")
	processCmd.Flags().Bool("keep-workdir", false, "retain the extractor scratch directory per paper")
	processCmd.Flags().Bool("no-catalog", false, "skip recording papers in the vault catalog")
	_ = processCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(processCmd)
}
