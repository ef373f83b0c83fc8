// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

var (
	mdImageRe   = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	htmlImgRe   = regexp.MustCompile(`(?i)<img[^>]*>`)
	pipeTableRe = regexp.MustCompile(`(?m)(?:^\|.*\|[ \t]*\n?)+`)
	htmlTableRe = regexp.MustCompile(`(?is)<table.*?>.*?</table>`)
)

// MainNote rewrites the article Markdown for the main note: inline images
// and tables are removed (they live as separate note files), and textual
// figure/table references become wiki links into the bundle's figures/ and
// tables/ subfolders.
func MainNote(articleMD string, figures []types.Figure, tables []types.Table) string {
	text := mdImageRe.ReplaceAllString(articleMD, "")
	text = htmlImgRe.ReplaceAllString(text, "")
	text = pipeTableRe.ReplaceAllString(text, "")
	text = htmlTableRe.ReplaceAllString(text, "")

	for _, fg := range figures {
		re := regexp.MustCompile(fmt.Sprintf(`(?i)\b(Figure\s+%d|Fig\.\s*%d)\b`, fg.ID, fg.ID))
		text = re.ReplaceAllString(text, fmt.Sprintf("[[figures/Fig%d]]", fg.ID))
	}
	for _, tb := range tables {
		re := regexp.MustCompile(fmt.Sprintf(`(?i)\b(Table\s+%d)\b`, tb.ID))
		text = re.ReplaceAllString(text, fmt.Sprintf("[[tables/Table%d]]", tb.ID))
	}
	return text
}

// FindReferences returns the paragraphs that mention label as a whole word,
// case-insensitively, in document order with duplicates removed. Used to
// build the "Referenced in text" section of figure and table notes.
func FindReferences(paragraphs []string, label string) []string {
	if len(paragraphs) == 0 {
		return nil
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\b`)

	seen := make(map[string]bool)
	var out []string
	for _, p := range paragraphs {
		if !re.MatchString(p) {
			continue
		}
		s := strings.TrimSpace(p)
		if s == "" || seen[s] {
			continue
		}
		out = append(out, s)
		seen[s] = true
	}
	return out
}
