// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoContentList indicates the extractor output contains no parseable
// content-list JSON file.
var ErrNoContentList = errors.New("no content list found in extractor output")

// ContentList locates the richest content-list file under dir. Candidates
// are files named *_content_list.json anywhere in the tree, tried largest
// first; the first one that parses as a JSON array wins. Malformed
// candidates are skipped.
func ContentList(dir string) ([]byte, error) {
	candidates, err := findBySuffix(dir, "_content_list.json")
	if err != nil {
		return nil, err
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var probe []json.RawMessage
		if err := json.Unmarshal(data, &probe); err != nil {
			continue
		}
		return data, nil
	}
	return nil, ErrNoContentList
}

// ArticleMarkdown locates the largest Markdown file under dir and returns
// its path and contents. The extractor writes one full-article Markdown per
// PDF plus occasional fragments; largest wins. Returns an empty path when
// the output contains no Markdown at all.
func ArticleMarkdown(dir string) (path, content string, err error) {
	candidates, err := findBySuffix(dir, ".md")
	if err != nil {
		return "", "", err
	}
	if len(candidates) == 0 {
		return "", "", nil
	}

	data, err := os.ReadFile(candidates[0])
	if err != nil {
		return "", "", err
	}
	return candidates[0], string(data), nil
}

// findBySuffix walks dir and returns matching file paths sorted by size,
// largest first.
func findBySuffix(dir, suffix string) ([]string, error) {
	type candidate struct {
		path string
		size int64
	}
	var found []candidate

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		found = append(found, candidate{path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].size > found[j].size })

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}
