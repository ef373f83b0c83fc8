// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta resolves bibliographic metadata for a PDF: a YAML sidecar
// file next to the PDF when present, an interactive prompt otherwise.
package meta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

// Defaults used when a metadata field is unknown.
const (
	UnknownAuthor  = "Unknown"
	UnknownYear    = "noyear"
	UnknownJournal = "nojournal"
)

// maxAuthors caps the author list used for folder naming.
const maxAuthors = 3

// Resolver produces paper metadata for an input PDF.
type Resolver interface {
	Resolve(pdfPath string) (*types.Paper, error)
}

// sidecar mirrors the YAML sidecar schema (<pdf-basename>.yaml).
type sidecar struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Year    string   `yaml:"year"`
	Journal string   `yaml:"journal"`
}

// PromptResolver resolves metadata from a sidecar file, falling back to an
// interactive prompt on In. Prompts and echoes go to Out.
type PromptResolver struct {
	In  io.Reader
	Out io.Writer
}

// Resolve returns metadata for pdfPath. A sidecar file wins over the
// prompt; either way the result is normalized (at most three authors,
// defaults filled in).
func (r *PromptResolver) Resolve(pdfPath string) (*types.Paper, error) {
	if p, ok, err := FromSidecar(pdfPath); err != nil {
		return nil, err
	} else if ok {
		return p, nil
	}
	return r.prompt(pdfPath)
}

// FromSidecar loads metadata from the YAML file next to pdfPath, named
// after it (paper.pdf -> paper.yaml). The second return value reports
// whether a sidecar existed. A sidecar that exists but does not parse is an
// error, not a fallthrough to the prompt.
func FromSidecar(pdfPath string) (*types.Paper, bool, error) {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	path := base + ".yaml"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading metadata sidecar %s: %w", path, err)
	}

	var sc sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, false, fmt.Errorf("parsing metadata sidecar %s: %w", path, err)
	}

	p := &types.Paper{
		Title:     sc.Title,
		Authors:   sc.Authors,
		Year:      sc.Year,
		Journal:   sc.Journal,
		SourcePDF: pdfPath,
	}
	Normalize(p)
	return p, true, nil
}

// prompt asks for author surnames, year, and journal on r.In.
func (r *PromptResolver) prompt(pdfPath string) (*types.Paper, error) {
	scanner := bufio.NewScanner(r.In)

	fmt.Fprintf(r.Out, "\nProcessing file: %s\n", filepath.Base(pdfPath))

	authors, err := r.ask(scanner, "Author surnames (up to 3, comma separated): ")
	if err != nil {
		return nil, err
	}
	year, err := r.ask(scanner, "Year: ")
	if err != nil {
		return nil, err
	}
	journal, err := r.ask(scanner, "Journal abbreviation: ")
	if err != nil {
		return nil, err
	}

	p := &types.Paper{
		Authors:   splitAuthors(authors),
		Year:      year,
		Journal:   journal,
		SourcePDF: pdfPath,
	}
	Normalize(p)
	return p, nil
}

func (r *PromptResolver) ask(scanner *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprint(r.Out, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading metadata input: %w", err)
		}
		// EOF: treat the remaining answers as empty.
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// Normalize fills defaults and truncates the author list in place so that
// folder-name derivation always has something to work with.
func Normalize(p *types.Paper) {
	var authors []string
	for _, a := range p.Authors {
		if s := strings.TrimSpace(a); s != "" {
			authors = append(authors, s)
		}
	}
	if len(authors) > maxAuthors {
		authors = authors[:maxAuthors]
	}
	if len(authors) == 0 {
		authors = []string{UnknownAuthor}
	}
	p.Authors = authors

	if strings.TrimSpace(p.Year) == "" {
		p.Year = UnknownYear
	}
	if strings.TrimSpace(p.Journal) == "" {
		p.Journal = UnknownJournal
	}
}

func splitAuthors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if a := strings.TrimSpace(part); a != "" {
			out = append(out, a)
		}
	}
	return out
}
