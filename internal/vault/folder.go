// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault writes note bundles into the output vault: one folder per
// paper with a main note, per-figure and per-table notes, a notes stub, and
// paper metadata, plus the root index file.
package vault

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

// nameLimit caps the sanitized length of each folder-name part, in runes.
const nameLimit = 60

var unsafeChars = regexp.MustCompile("[\\\\/:*?\"<>|#%^$@!~`+=\\[\\]{};,\n\r\t]")

// SafeName makes text usable as a file or folder name segment: characters
// with filesystem or wiki-link meaning become spaces, whitespace runs
// collapse to one space, and the result is trimmed and capped at limit
// runes. A limit of zero means no cap.
func SafeName(text string, limit int) string {
	text = unsafeChars.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	if limit > 0 {
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return strings.TrimSpace(text)
}

// FolderName derives the vault folder name for a paper:
// "Author1_Author2_Author3-<year>-<journal>". Derivation is deterministic
// for identical metadata.
func FolderName(p *types.Paper) string {
	authors := p.Authors
	if len(authors) == 0 {
		authors = []string{"Unknown"}
	}
	authorPart := strings.Join(authors, "_")
	return SafeName(authorPart, nameLimit) + "-" + SafeName(p.Year, nameLimit) + "-" + SafeName(p.Journal, nameLimit)
}
