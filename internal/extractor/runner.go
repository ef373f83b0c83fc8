// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor invokes the external PDF-extraction tool and locates
// the files it produces. The tool's JSON schema and directory layout are a
// black-box contract; everything here parses its output defensively.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

// defaultBinary is the extractor executable looked up on PATH when the
// configuration does not name one.
const defaultBinary = "mineru"

// Runner executes the extraction tool for a single PDF.
type Runner interface {
	// Name returns the extractor binary name.
	Name() string

	// Extract runs the extractor on pdfPath, writing its output tree
	// under outDir. The directory is created if needed.
	Extract(ctx context.Context, pdfPath, outDir string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, stderr io.Writer, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// cliRunner shells out to the extractor binary.
type cliRunner struct {
	bin  string
	exec executor
}

var defaultExec = &osExecutor{}

// NewRunner builds a Runner for the configured extractor binary. It verifies
// that the binary exists on PATH before returning.
func NewRunner(cfg types.ExtractorConfig) (Runner, error) {
	return newRunner(cfg, defaultExec)
}

func newRunner(cfg types.ExtractorConfig, exec executor) (Runner, error) {
	bin := cfg.Binary
	if bin == "" {
		bin = defaultBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("extractor %q not found on PATH: %w", bin, err)
	}
	return &cliRunner{bin: bin, exec: exec}, nil
}

func (r *cliRunner) Name() string { return r.bin }

func (r *cliRunner) Extract(ctx context.Context, pdfPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating extractor output directory %s: %w", outDir, err)
	}

	var stderr bytes.Buffer
	args := []string{"extract", "-p", pdfPath, "-o", outDir}
	if err := r.exec.Run(ctx, &stderr, r.bin, args...); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return fmt.Errorf("running %s extract on %s: %w: %s", r.bin, pdfPath, err, msg)
		}
		return fmt.Errorf("running %s extract on %s: %w", r.bin, pdfPath, err)
	}
	return nil
}

// lastLine returns the final non-blank line of s, for compact error messages
// from a chatty subprocess.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
