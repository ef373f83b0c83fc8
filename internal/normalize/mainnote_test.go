// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

func TestMainNote(t *testing.T) {
	article := `# A Study of Things

We study things. As shown in Figure 1, things happen.

![](images/abc.png)

Results appear in Table 1 below.

| Run | Score |
|-----|-------|
| 1   | 0.9   |

Fig. 1 is also mentioned with the short form.

<img src="images/def.png" alt="x">

<table><tr><td>inline</td></tr></table>

Final paragraph.`

	figures := []types.Figure{{ID: 1}}
	tables := []types.Table{{ID: 1}}

	note := MainNote(article, figures, tables)

	if strings.Contains(note, "![](") {
		t.Error("markdown images should be stripped")
	}
	if strings.Contains(note, "<img") {
		t.Error("HTML images should be stripped")
	}
	if strings.Contains(note, "| Run |") {
		t.Error("pipe tables should be stripped")
	}
	if strings.Contains(note, "<table") {
		t.Error("HTML tables should be stripped")
	}

	if !strings.Contains(note, "[[figures/Fig1]]") {
		t.Error("Figure 1 reference should become a wiki link")
	}
	if strings.Contains(note, "Fig. 1") {
		t.Error("short-form figure reference should be rewritten too")
	}
	if !strings.Contains(note, "[[tables/Table1]]") {
		t.Error("Table 1 reference should become a wiki link")
	}

	if !strings.Contains(note, "Final paragraph.") {
		t.Error("article text should survive the cleanup")
	}
}

func TestMainNote_LeavesUnrelatedNumbersAlone(t *testing.T) {
	note := MainNote("Figure 12 stays as is.", []types.Figure{{ID: 1}}, nil)
	if !strings.Contains(note, "Figure 12") {
		t.Errorf("note = %q; Figure 12 must not match the Figure 1 rewrite", note)
	}
}

func TestFindReferences(t *testing.T) {
	paragraphs := []string{
		"Figure 1 shows the setup.",
		"Unrelated paragraph.",
		"As in Figure 1, the trend continues.",
		"Figure 1 shows the setup.", // duplicate
		"Figure 10 is different.",
	}

	refs := FindReferences(paragraphs, "Figure 1")

	if len(refs) != 2 {
		t.Fatalf("refs = %v, want 2 unique matches", refs)
	}
	if refs[0] != "Figure 1 shows the setup." {
		t.Errorf("refs[0] = %q, want document order preserved", refs[0])
	}
	for _, r := range refs {
		if strings.Contains(r, "Figure 10") {
			t.Errorf("Figure 10 must not match label Figure 1: %q", r)
		}
	}
}

func TestFindReferences_Empty(t *testing.T) {
	if refs := FindReferences(nil, "Table 1"); refs != nil {
		t.Errorf("refs = %v, want nil for no paragraphs", refs)
	}
}
