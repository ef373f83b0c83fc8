// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meta

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o644))
	return path
}

func TestFromSidecar(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "paper.pdf")

	sidecarYAML := `title: A Study of Things
authors: [Smith, Jones, Lee, Extra]
year: "2021"
journal: Nat. Things
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.yaml"), []byte(sidecarYAML), 0o644))

	p, ok, err := FromSidecar(pdf)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "A Study of Things", p.Title)
	assert.Equal(t, []string{"Smith", "Jones", "Lee"}, p.Authors, "authors past the third are dropped")
	assert.Equal(t, "2021", p.Year)
	assert.Equal(t, "Nat. Things", p.Journal)
	assert.Equal(t, pdf, p.SourcePDF)
}

func TestFromSidecar_Missing(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "paper.pdf")

	_, ok, err := FromSidecar(pdf)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFromSidecar_Malformed(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "paper.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.yaml"), []byte("authors: [unclosed"), 0o644))

	_, _, err := FromSidecar(pdf)
	assert.Error(t, err, "a broken sidecar must not fall through to the prompt")
}

func TestPromptResolver(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "paper.pdf")

	in := strings.NewReader("Smith, Jones\n2020\nJ. Stuff\n")
	var out bytes.Buffer
	r := &PromptResolver{In: in, Out: &out}

	p, err := r.Resolve(pdf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Smith", "Jones"}, p.Authors)
	assert.Equal(t, "2020", p.Year)
	assert.Equal(t, "J. Stuff", p.Journal)
	assert.Contains(t, out.String(), "paper.pdf", "prompt should name the file being processed")
}

func TestPromptResolver_Defaults(t *testing.T) {
	pdf := writePDF(t, t.TempDir(), "paper.pdf")

	// Blank answers and early EOF both fall back to defaults.
	in := strings.NewReader("\n")
	r := &PromptResolver{In: in, Out: &bytes.Buffer{}}

	p, err := r.Resolve(pdf)
	require.NoError(t, err)

	assert.Equal(t, []string{UnknownAuthor}, p.Authors)
	assert.Equal(t, UnknownYear, p.Year)
	assert.Equal(t, UnknownJournal, p.Journal)
}

func TestPromptResolver_SidecarWins(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "paper.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.yaml"),
		[]byte("authors: [Smith]\nyear: \"2019\"\njournal: JX\n"), 0o644))

	// No prompt input available; the sidecar must be used without reading In.
	r := &PromptResolver{In: strings.NewReader(""), Out: &bytes.Buffer{}}

	p, err := r.Resolve(pdf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith"}, p.Authors)
	assert.Equal(t, "2019", p.Year)
}
