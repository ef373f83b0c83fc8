// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractorConfig holds settings for invoking the external extraction tool.
type ExtractorConfig struct {
	// Binary is the extractor executable name or path (default "mineru").
	Binary string `json:"binary" yaml:"binary"`

	// KeepWorkdir retains the extractor scratch directory after a paper
	// has been processed, for debugging the extractor's raw output.
	KeepWorkdir bool `json:"keep_workdir" yaml:"keep_workdir"`
}

// VaultConfig holds settings for the output vault.
type VaultConfig struct {
	// Dir is the vault root directory. Paper folders and index.md are
	// created directly under it.
	Dir string `json:"dir" yaml:"dir"`
}

// CatalogConfig holds settings for the processed-paper catalog.
type CatalogConfig struct {
	// MaxResults is the default maximum number of search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Extractor ExtractorConfig `json:"extractor" yaml:"extractor"`
	Vault     VaultConfig     `json:"vault" yaml:"vault"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
}
