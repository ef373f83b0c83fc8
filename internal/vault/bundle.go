// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2obsidian/internal/normalize"
	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

const (
	figuresDir = "figures"
	tablesDir  = "tables"

	mainNoteFile = "main.md"
	notesFile    = "notes.md"
	metadataFile = "metadata.yaml"
)

// Bundle holds everything needed to write one paper folder.
type Bundle struct {
	// Paper is the resolved metadata. Paper.Folder must be set.
	Paper *types.Paper

	// Result is the normalized extraction output.
	Result *types.ExtractionResult

	// ArticleMD is the extractor's article Markdown, empty when the
	// extractor produced none.
	ArticleMD string

	// ImagePaths lists the article's image files in document order,
	// as absolute paths.
	ImagePaths []string
}

// WriteBundle writes the full note bundle for one paper under root and
// returns the main note text. Figure images are copied in, table data is
// emitted as CSV (raw HTML when the table body could not be parsed), and
// every figure and table gets its own note file.
func WriteBundle(root string, b *Bundle) (string, error) {
	base := filepath.Join(root, b.Paper.Folder)
	for _, dir := range []string{base, filepath.Join(base, figuresDir), filepath.Join(base, tablesDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating bundle directory %s: %w", dir, err)
		}
	}

	if err := copyFigures(base, b); err != nil {
		return "", err
	}
	if err := writeTableData(base, b.Result); err != nil {
		return "", err
	}

	mainNote := normalize.MainNote(articleText(b), b.Result.Figures, b.Result.Tables)
	if err := os.WriteFile(filepath.Join(base, mainNoteFile), []byte(mainNote), 0o644); err != nil {
		return "", fmt.Errorf("writing main note: %w", err)
	}

	for _, fg := range b.Result.Figures {
		refs := normalize.FindReferences(b.Result.Paragraphs, fmt.Sprintf("Figure %d", fg.ID))
		path := filepath.Join(base, figuresDir, fmt.Sprintf("Fig%d.md", fg.ID))
		if err := writeFigureNote(path, fg, refs); err != nil {
			return "", err
		}
	}
	for _, tb := range b.Result.Tables {
		refs := normalize.FindReferences(b.Result.Paragraphs, fmt.Sprintf("Table %d", tb.ID))
		path := filepath.Join(base, tablesDir, fmt.Sprintf("Table%d.md", tb.ID))
		if err := writeTableNote(path, tb, refs); err != nil {
			return "", err
		}
	}

	if err := writeNotesStub(filepath.Join(base, notesFile)); err != nil {
		return "", err
	}

	b.Paper.ProcessedAt = time.Now().UTC()
	if err := writeMetadata(filepath.Join(base, metadataFile), b.Paper); err != nil {
		return "", err
	}

	return mainNote, nil
}

// articleText prefers the article Markdown; a paper whose extraction
// produced only a content list still gets its text into the main note.
func articleText(b *Bundle) string {
	if b.ArticleMD != "" {
		return b.ArticleMD
	}
	return b.Result.Text
}

// copyFigures copies the article's images into figures/ as FigN.<ext> in
// document order. When the Markdown holds more images than the content list
// declared figures, extra figure records are appended with empty captions.
func copyFigures(base string, b *Bundle) error {
	for len(b.Result.Figures) < len(b.ImagePaths) {
		b.Result.Figures = append(b.Result.Figures, types.Figure{
			ID: len(b.Result.Figures) + 1,
		})
	}

	for i, src := range b.ImagePaths {
		ext := strings.ToLower(filepath.Ext(src))
		if ext == "" {
			ext = ".png"
		}
		name := fmt.Sprintf("Fig%d%s", i+1, ext)
		dst := filepath.Join(base, figuresDir, name)
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copying figure %s: %w", src, err)
		}
		b.Result.Figures[i].ImageFile = name
	}
	return nil
}

// writeTableData emits each table's data file into tables/: CSV when rows
// were parsed, the raw HTML fragment otherwise. Tables with neither rows
// nor HTML get no data file.
func writeTableData(base string, result *types.ExtractionResult) error {
	for i := range result.Tables {
		tb := &result.Tables[i]
		switch {
		case len(tb.Rows) > 0:
			name := fmt.Sprintf("Table%d.csv", tb.ID)
			if err := writeCSV(filepath.Join(base, tablesDir, name), tb.Rows); err != nil {
				return fmt.Errorf("writing table %d: %w", tb.ID, err)
			}
			tb.DataFile = name
		case tb.RawHTML != "":
			name := fmt.Sprintf("Table%d.html", tb.ID)
			if err := os.WriteFile(filepath.Join(base, tablesDir, name), []byte(tb.RawHTML), 0o644); err != nil {
				return fmt.Errorf("writing table %d: %w", tb.ID, err)
			}
			tb.DataFile = name
		}
	}
	return nil
}

// writeCSV writes a padded cell grid: ragged rows are extended to the
// widest row so the CSV stays rectangular.
func writeCSV(path string, rows [][]string) error {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		if err := w.Write(padded); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeFigureNote(path string, fg types.Figure, refs []string) error {
	img := fg.ImageFile
	if img == "" {
		img = fmt.Sprintf("Fig%d.png", fg.ID)
	}

	return buildNote(path, func(md *markdown.Markdown) {
		md.PlainText("![[" + img + "]]")
		md.PlainText("")
		md.PlainText(markdown.Bold("Caption:") + " " + fg.Caption)
		writeReferences(md, refs)
		writeNotesSection(md)
	})
}

func writeTableNote(path string, tb types.Table, refs []string) error {
	link := tb.DataFile
	if link == "" {
		link = fmt.Sprintf("Table%d.csv", tb.ID)
	}
	label := "Table"
	if strings.HasSuffix(link, ".html") {
		label = "Table (HTML)"
	}

	return buildNote(path, func(md *markdown.Markdown) {
		md.PlainText(markdown.Bold(label+":") + " [[" + link + "]]")
		md.PlainText("")
		md.PlainText(markdown.Bold("Caption:") + " " + tb.Caption)
		writeReferences(md, refs)
		writeNotesSection(md)
	})
}

func writeNotesStub(path string) error {
	return buildNote(path, func(md *markdown.Markdown) {
		md.H1("Overall Notes")
		writeNotesSection(md)
	})
}

func writeReferences(md *markdown.Markdown, refs []string) {
	if len(refs) == 0 {
		return
	}
	md.PlainText("")
	md.PlainText(markdown.Bold("Referenced in text:"))
	md.BulletList(refs...)
}

func writeNotesSection(md *markdown.Markdown) {
	md.PlainText("")
	md.PlainText(markdown.Bold("My Notes:"))
	md.CheckBox([]markdown.CheckBoxSet{{Checked: false, Text: ""}})
}

// buildNote creates path and renders a note into it with the markdown
// builder.
func buildNote(path string, build func(md *markdown.Markdown)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating note %s: %w", path, err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)
	build(md)
	if err := md.Build(); err != nil {
		return fmt.Errorf("writing note %s: %w", path, err)
	}
	return nil
}

func writeMetadata(path string, p *types.Paper) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
