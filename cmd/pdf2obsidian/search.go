// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over processed paper notes",
	Long: `Search runs an FTS5 full-text query over the main-note text of every
cataloged paper and prints matches ranked by relevance, each with a short
snippet of the matching text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	results, err := store.Search(cmd.Context(), query, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%d. %s\n   %s\n", i+1, r.Folder, r.Snippet)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func init() {
	searchCmd.Flags().String("vault", "", "vault directory holding the catalog")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
