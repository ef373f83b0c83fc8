// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2obsidian/internal/catalog"
	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed papers from the vault catalog",
	Long: `List prints every paper recorded in the vault catalog, in processing
order, with its folder, authors, year, and journal.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers processed yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-45s  %-25s  %-7s  %s\n", "Folder", "Authors", "Year", "Journal")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, p := range papers {
		fmt.Fprintf(os.Stdout, "%-45s  %-25s  %-7s  %s\n",
			truncate(p.Folder, 45), truncate(strings.Join(p.Authors, ", "), 25),
			p.Year, p.Journal)
	}
	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(papers))
	return nil
}

// truncate shortens s to max runes with an ellipsis. Author and folder
// names can hold multibyte runes, so byte slicing is not safe here.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// openCatalog opens the catalog for the vault named by --vault or config.
func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	vaultDir, _ := cmd.Flags().GetString("vault")
	if vaultDir == "" {
		vaultDir = viper.GetString("vault.dir")
	}
	if vaultDir == "" {
		return nil, fmt.Errorf("vault directory required: use --vault or set vault.dir")
	}
	return catalog.NewStore(vaultDir, catalogConfig())
}

// catalogConfig builds the catalog settings from config.
func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

func init() {
	listCmd.Flags().String("vault", "", "vault directory holding the catalog")
	listCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
}
