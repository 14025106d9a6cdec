package lawyers

import (
	"context"
	"strings"
	"testing"
)

func TestLoadSeedParsesBundledDirectory(t *testing.T) {
	entries, err := LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 lawyers, got %d", len(entries))
	}
	first := entries[0]
	if first.ID != "ahmad-fauzi" || first.Rating != 4.8 || first.Phone != "+62812345678" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
}

func TestParseSeedRejectsDuplicates(t *testing.T) {
	_, err := ParseSeed([]byte("- id: a\n  name: A\n- id: a\n  name: B\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := ParseSeed([]byte("- name: Nameless\n")); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestSeedUpsertsIntoRepo(t *testing.T) {
	repo := NewMemoryRepo()
	n, err := Seed(context.Background(), repo)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	q, _ := Query{}.Normalize()
	_, total, err := repo.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if n != 5 || total != 5 {
		t.Fatalf("expected 5 seeded lawyers, got n=%d total=%d", n, total)
	}

	// Re-seeding replaces rather than duplicates.
	if _, err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed again: %v", err)
	}
	if _, total, _ = repo.Search(context.Background(), q); total != 5 {
		t.Fatalf("expected 5 after reseed, got %d", total)
	}
}
