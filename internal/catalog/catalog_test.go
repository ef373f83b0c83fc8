// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/pdf2obsidian/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), types.CatalogConfig{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePaper(folder string, processedAt time.Time) *types.Paper {
	return &types.Paper{
		Folder:      folder,
		Title:       "A Study of " + folder,
		Authors:     []string{"Smith", "Jones"},
		Year:        "2021",
		Journal:     "JX",
		SourcePDF:   folder + ".pdf",
		ProcessedAt: processedAt,
	}
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i, folder := range []string{"First-2021-JX", "Second-2021-JX", "Third-2021-JX"} {
		p := samplePaper(folder, base.Add(time.Duration(i)*time.Minute))
		if err := s.Record(ctx, p, "note text for "+folder); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	papers, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("List returned %d papers, want 3", len(papers))
	}
	if papers[0].Folder != "First-2021-JX" || papers[2].Folder != "Third-2021-JX" {
		t.Errorf("papers out of processing order: %v, %v", papers[0].Folder, papers[2].Folder)
	}
	if len(papers[0].Authors) != 2 || papers[0].Authors[0] != "Smith" {
		t.Errorf("authors = %v, want round-tripped list", papers[0].Authors)
	}
	if !papers[0].ProcessedAt.Equal(base) {
		t.Errorf("ProcessedAt = %v, want %v", papers[0].ProcessedAt, base)
	}
}

func TestList_SameSecondKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A fast batch can finish several papers within one second; the
	// RFC3339 timestamps then collide and must not reorder the listing.
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	folders := []string{"Zimmer-2021-JX", "Abbot-2021-JX", "Miller-2021-JX"}
	for _, folder := range folders {
		if err := s.Record(ctx, samplePaper(folder, at), "note"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	papers, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("List returned %d papers, want 3", len(papers))
	}
	for i, folder := range folders {
		if papers[i].Folder != folder {
			t.Errorf("papers[%d] = %q, want %q", i, papers[i].Folder, folder)
		}
	}
}

func TestRecord_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := samplePaper("Smith-2021-JX", time.Now().UTC())
	if err := s.Record(ctx, p, "original note"); err != nil {
		t.Fatal(err)
	}

	p.Title = "Revised Title"
	if err := s.Record(ctx, p, "revised note"); err != nil {
		t.Fatal(err)
	}

	papers, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 {
		t.Fatalf("List returned %d papers after upsert, want 1", len(papers))
	}
	if papers[0].Title != "Revised Title" {
		t.Errorf("title = %q, want the updated value", papers[0].Title)
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.Record(ctx, samplePaper("Apparatus-2021-JX", now),
		"The apparatus measures neutrino flux over time."); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, samplePaper("Unrelated-2020-JX", now),
		"A completely different topic about soil bacteria."); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, "neutrino", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
	if results[0].Folder != "Apparatus-2021-JX" {
		t.Errorf("result folder = %q", results[0].Folder)
	}
	if results[0].Snippet == "" {
		t.Error("search result should carry a snippet")
	}
}

func TestSearch_UpsertReindexes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := samplePaper("Smith-2021-JX", time.Now().UTC())
	if err := s.Record(ctx, p, "original wording"); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, p, "replacement phrasing"); err != nil {
		t.Fatal(err)
	}

	if results, err := s.Search(ctx, "original", 0); err != nil {
		t.Fatal(err)
	} else if len(results) != 0 {
		t.Errorf("stale FTS content still matches: %v", results)
	}

	if results, err := s.Search(ctx, "replacement", 0); err != nil {
		t.Fatal(err)
	} else if len(results) != 1 {
		t.Errorf("updated note text should match, got %v", results)
	}
}

func TestNewStore_CreatesCatalogDir(t *testing.T) {
	vaultDir := t.TempDir()
	s, err := NewStore(vaultDir, types.CatalogConfig{MaxResults: 5})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(vaultDir, ".pdf2obsidian", "catalog.db")); err != nil {
		t.Errorf("catalog database not created: %v", err)
	}
	if s.maxResults != 5 {
		t.Errorf("maxResults = %d, want 5", s.maxResults)
	}
}
