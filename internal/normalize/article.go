// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mdParser parses the extractor's article Markdown. Tables are enabled
// because the extractor emits GFM pipe tables for simple layouts.
var mdParser = goldmark.New(goldmark.WithExtensions(extension.Table))

var imgSrcRe = regexp.MustCompile(`(?i)<img[^>]*src=["']([^"']+)["']`)

// ImagePaths collects image file paths referenced by the article Markdown,
// in document order. Both Markdown image syntax and raw HTML <img> tags are
// honored; relative paths resolve against baseDir. Duplicates and paths
// that do not exist on disk are dropped.
func ImagePaths(mdText, baseDir string) []string {
	var refs []string

	source := []byte(mdText)
	doc := mdParser.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			refs = append(refs, string(node.Destination))
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(source))
			}
			refs = append(refs, imgSources(raw.String())...)
		case *ast.HTMLBlock:
			var raw strings.Builder
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				raw.Write(seg.Value(source))
			}
			refs = append(refs, imgSources(raw.String())...)
		}
		return ast.WalkContinue, nil
	})

	seen := make(map[string]bool)
	var out []string
	for _, ref := range refs {
		p := cleanImageRef(ref)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if seen[abs] {
			continue
		}
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}

// imgSources pulls src attributes out of raw HTML.
func imgSources(raw string) []string {
	var out []string
	for _, m := range imgSrcRe.FindAllStringSubmatch(raw, -1) {
		out = append(out, m[1])
	}
	return out
}

// cleanImageRef strips titles, fragments, and query strings from an image
// reference, leaving a bare path.
func cleanImageRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexAny(ref, "#?"); i >= 0 {
		ref = ref[:i]
	}
	return strings.TrimSpace(ref)
}
