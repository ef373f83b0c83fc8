// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns the extractor's raw output (content-list JSON and
// article Markdown) into a single ExtractionResult the vault writer can
// consume.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

// Block is one entry of the extractor's content-list JSON. Fields not
// relevant to note building are ignored; unknown block types pass through
// unharmed.
type Block struct {
	Type         string   `json:"type"`
	Text         string   `json:"text"`
	ImgCaption   []string `json:"img_caption"`
	TableCaption []string `json:"table_caption"`
	TableBody    string   `json:"table_body"`
}

// Block types emitted by the extractor that this tool understands.
const (
	blockTitle = "title"
	blockText  = "text"
	blockImage = "image"
	blockTable = "table"
)

// ParseContentList decodes content-list JSON into blocks.
func ParseContentList(data []byte) ([]Block, error) {
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parsing content list: %w", err)
	}
	return blocks, nil
}

// FromContentList builds an ExtractionResult from content-list blocks:
// title and text blocks become the article text and paragraphs, image
// blocks become numbered figures, table blocks become numbered tables with
// their HTML bodies parsed into cell rows where possible.
func FromContentList(blocks []Block) *types.ExtractionResult {
	result := &types.ExtractionResult{}

	for _, b := range blocks {
		switch b.Type {
		case blockTitle, blockText:
			if s := strings.TrimSpace(b.Text); s != "" {
				result.Paragraphs = append(result.Paragraphs, s)
			}
		case blockImage:
			result.Figures = append(result.Figures, types.Figure{
				ID:      len(result.Figures) + 1,
				Caption: joinCaption(b.ImgCaption),
			})
		case blockTable:
			tbl := types.Table{
				ID:      len(result.Tables) + 1,
				Caption: joinCaption(b.TableCaption),
				RawHTML: b.TableBody,
			}
			if rows, err := TableRows(b.TableBody); err == nil {
				tbl.Rows = rows
			}
			result.Tables = append(result.Tables, tbl)
		}
	}

	result.Text = strings.Join(result.Paragraphs, "\n\n")
	return result
}

// joinCaption merges the extractor's caption fragments into one line.
func joinCaption(parts []string) string {
	var kept []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}
