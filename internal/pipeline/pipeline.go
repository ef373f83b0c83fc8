// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the per-paper flow: resolve metadata, run the
// extractor, normalize its output, write the note bundle, and update the
// index and catalog. Papers are processed sequentially; a failure on one
// paper never aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdf2obsidian/internal/extractor"
	"github.com/pdiddy/pdf2obsidian/internal/meta"
	"github.com/pdiddy/pdf2obsidian/internal/normalize"
	"github.com/pdiddy/pdf2obsidian/internal/vault"
	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

// Recorder receives processed papers for the catalog. Implemented by
// catalog.Store; nil disables cataloging.
type Recorder interface {
	Record(ctx context.Context, p *types.Paper, noteText string) error
}

// Options holds the pipeline's collaborators and settings.
type Options struct {
	// Runner executes the external extractor.
	Runner extractor.Runner

	// Resolver produces bibliographic metadata per PDF.
	Resolver meta.Resolver

	// VaultDir is the output vault root.
	VaultDir string

	// KeepWorkdir retains each paper's extractor scratch directory.
	KeepWorkdir bool

	// Catalog records processed papers. Optional.
	Catalog Recorder
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int

	// Folders lists the newly created vault folders in processing order.
	Folders []string
}

// Total returns the total number of PDFs handled.
func (r BatchResult) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// HasFailures reports whether any papers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// CollectPDFs resolves the input argument to a list of PDF paths: the file
// itself when input is a single PDF, or every *.pdf directly inside it when
// input is a directory, sorted by name.
func CollectPDFs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", input, err)
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(input), ".pdf") {
			return nil, fmt.Errorf("input %s is neither a PDF file nor a folder", input)
		}
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("reading input folder %s: %w", input, err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		pdfs = append(pdfs, filepath.Join(input, entry.Name()))
	}
	sort.Strings(pdfs)

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", input)
	}
	return pdfs, nil
}

// ProcessBatch runs the pipeline over every PDF resolved from input,
// printing per-paper status to w and returning a summary. An unwritable
// vault root is fatal; per-paper failures are logged and skipped.
func ProcessBatch(ctx context.Context, input string, opts Options, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(opts.VaultDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", opts.VaultDir, err)
	}

	pdfs, err := CollectPDFs(input)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, pdf := range pdfs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		folder, skipped, err := processPDF(ctx, pdf, opts, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(pdf), err)
			result.Failed++
		case skipped:
			result.Skipped++
		default:
			fmt.Fprintf(w, "processed: %s\n", folder)
			result.Processed++
			result.Folders = append(result.Folders, folder)
		}
	}

	if err := vault.AppendIndex(opts.VaultDir, result.Folders); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d skipped, %d failed (total: %d)\n",
		result.Processed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// processPDF handles one paper end to end and returns its vault folder.
func processPDF(ctx context.Context, pdfPath string, opts Options, w io.Writer) (folder string, skipped bool, err error) {
	paper, err := opts.Resolver.Resolve(pdfPath)
	if err != nil {
		return "", false, err
	}
	paper.Folder = vault.FolderName(paper)

	// One folder per paper: identical metadata maps to the same folder,
	// and an existing folder means the paper was already processed.
	if _, err := os.Stat(filepath.Join(opts.VaultDir, paper.Folder)); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", paper.Folder)
		return paper.Folder, true, nil
	}

	workDir, err := os.MkdirTemp("", "pdf2obsidian-*")
	if err != nil {
		return "", false, fmt.Errorf("creating scratch directory: %w", err)
	}
	if opts.KeepWorkdir {
		fmt.Fprintf(w, "workdir: %s\n", workDir)
	} else {
		defer os.RemoveAll(workDir)
	}

	if err := opts.Runner.Extract(ctx, pdfPath, workDir); err != nil {
		return "", false, err
	}

	result, err := normalized(workDir)
	if err != nil {
		return "", false, err
	}

	articlePath, articleMD, err := extractor.ArticleMarkdown(workDir)
	if err != nil {
		return "", false, fmt.Errorf("locating article markdown: %w", err)
	}

	var imagePaths []string
	if articleMD != "" {
		imagePaths = normalize.ImagePaths(articleMD, filepath.Dir(articlePath))
	}

	if result.IsEmpty() && articleMD == "" {
		return "", false, fmt.Errorf("extractor produced no usable output for %s", filepath.Base(pdfPath))
	}

	noteText, err := vault.WriteBundle(opts.VaultDir, &vault.Bundle{
		Paper:      paper,
		Result:     result,
		ArticleMD:  articleMD,
		ImagePaths: imagePaths,
	})
	if err != nil {
		return "", false, err
	}

	if opts.Catalog != nil {
		if err := opts.Catalog.Record(ctx, paper, noteText); err != nil {
			fmt.Fprintf(w, "  warning: catalog update failed: %v\n", err)
		}
	}

	return paper.Folder, false, nil
}

// normalized builds the ExtractionResult from the extractor's content list.
// A missing content list yields an empty result, not an error; the bundle
// can still be built from the article Markdown alone.
func normalized(workDir string) (*types.ExtractionResult, error) {
	data, err := extractor.ContentList(workDir)
	if err != nil {
		if errors.Is(err, extractor.ErrNoContentList) {
			return &types.ExtractionResult{}, nil
		}
		return nil, fmt.Errorf("locating content list: %w", err)
	}

	blocks, err := normalize.ParseContentList(data)
	if err != nil {
		return nil, err
	}
	return normalize.FromContentList(blocks), nil
}
