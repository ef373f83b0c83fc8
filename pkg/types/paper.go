// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data structures passed between pipeline
// stages: paper metadata, normalized extraction results, and configuration.
package types

import "time"

// Paper holds the bibliographic metadata and bookkeeping for one processed
// paper. It is written to metadata.yaml inside the paper's vault folder and
// recorded in the catalog.
type Paper struct {
	// Folder is the vault folder name derived from authors, year, and
	// journal (e.g. "Smith_Jones-2021-Nature").
	Folder string `json:"folder" yaml:"folder"`

	// Title is the paper title, when known.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Authors lists up to three author surnames in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year as given ("noyear" when unknown).
	Year string `json:"year" yaml:"year"`

	// Journal is the journal abbreviation ("nojournal" when unknown).
	Journal string `json:"journal" yaml:"journal"`

	// SourcePDF is the path of the input PDF the bundle was built from.
	SourcePDF string `json:"source_pdf" yaml:"source_pdf"`

	// ProcessedAt records when the bundle was written.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`
}
