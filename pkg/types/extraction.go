// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Figure is one figure detected by the extractor. ImageFile is filled in by
// the vault writer once the image has been copied into the bundle.
type Figure struct {
	// ID is the 1-based figure number in document order.
	ID int `json:"id" yaml:"id"`

	// Caption is the figure caption, possibly empty.
	Caption string `json:"caption" yaml:"caption"`

	// ImageFile is the file name of the copied image inside figures/
	// (e.g. "Fig1.png"). Empty until the bundle is written.
	ImageFile string `json:"image_file,omitempty" yaml:"image_file,omitempty"`
}

// Table is one table detected by the extractor. Rows holds the parsed cell
// grid when the table body could be parsed; otherwise RawHTML carries the
// original fragment for fallback emission.
type Table struct {
	// ID is the 1-based table number in document order.
	ID int `json:"id" yaml:"id"`

	// Caption is the table caption, possibly empty.
	Caption string `json:"caption" yaml:"caption"`

	// Rows is the parsed cell grid, row-major. Nil when parsing failed.
	Rows [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`

	// RawHTML is the extractor's original table body fragment.
	RawHTML string `json:"-" yaml:"-"`

	// DataFile is the file name of the emitted data inside tables/
	// (e.g. "Table1.csv" or "Table1.html"). Empty until written.
	DataFile string `json:"data_file,omitempty" yaml:"data_file,omitempty"`
}

// ExtractionResult is the normalized view of one extractor run: the article
// text, its paragraphs in document order, and the detected figures and
// tables. It is transient, built once per paper and discarded after the
// bundle is written.
type ExtractionResult struct {
	Text       string
	Paragraphs []string
	Figures    []Figure
	Tables     []Table
}

// IsEmpty reports whether the extraction produced no usable content.
func (r *ExtractionResult) IsEmpty() bool {
	return r.Text == "" && len(r.Figures) == 0 && len(r.Tables) == 0
}
