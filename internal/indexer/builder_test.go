package indexer

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ruseek/ruseek/internal/index"
	"github.com/ruseek/ruseek/internal/tokenizer"
)

func page(title, body string) string {
	return fmt.Sprintf("<html><head><title>%s</title></head><body>%s</body></html>", title, body)
}

func TestBuilderAssignsDenseIDs(t *testing.T) {
	b := New()

	if !b.Add("https://example.org/0", page("Первый", "кот и мышь")) {
		t.Error("first page not indexed")
	}
	if b.Add("https://example.org/skip", "") {
		t.Error("empty page was indexed")
	}
	if !b.Add("https://example.org/1", page("Второй", "кот и собака")) {
		t.Error("second page not indexed")
	}

	path := filepath.Join(t.TempDir(), "out.idx")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := index.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	ids, err := r.AllDocIDs()
	if err != nil {
		t.Fatalf("AllDocIDs: %v", err)
	}
	// Skipped pages consume no id: ids stay dense from 0.
	if !reflect.DeepEqual(ids, []uint32{0, 1}) {
		t.Errorf("doc ids = %v, want [0 1]", ids)
	}

	doc, err := r.Document(1)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Title != "Второй" || doc.URL != "https://example.org/1" {
		t.Errorf("doc 1 = %+v", doc)
	}
}

// Every token of every document must be findable through the inverted index,
// and every posting must point back to a document holding the term.
func TestBuilderPostingsMatchTokens(t *testing.T) {
	bodies := []string{
		"Кот ловит мышь в подвале",
		"Собака лает на кота и кошку",
		"Мышь убегает от кошки",
	}

	b := New()
	for i, body := range bodies {
		b.Add(fmt.Sprintf("https://example.org/%d", i), page("Документ", body))
	}
	path := filepath.Join(t.TempDir(), "out.idx")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := index.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	inverted, err := r.LoadInvertedIndex()
	if err != nil {
		t.Fatalf("LoadInvertedIndex: %v", err)
	}

	tok := tokenizer.New(tokenizer.Config{MinLength: 2, Lowercase: true})
	docTerms := make([]map[string]struct{}, len(bodies))
	for i, body := range bodies {
		docTerms[i] = make(map[string]struct{})
		for _, term := range tok.Tokenize(tokenizer.ExtractText(page("Документ", body))) {
			docTerms[i][term] = struct{}{}
		}
	}

	for i, terms := range docTerms {
		for term := range terms {
			postings := inverted[term]
			if !containsID(postings, uint32(i)) {
				t.Errorf("doc %d missing from postings of %q: %v", i, term, postings)
			}
		}
	}
	for term, postings := range inverted {
		for _, id := range postings {
			if _, ok := docTerms[id][term]; !ok {
				t.Errorf("postings of %q contain doc %d which lacks the term", term, id)
			}
		}
	}
}

func TestBuilderPostingsSortedUnique(t *testing.T) {
	b := New()
	for i := 0; i < 20; i++ {
		// Repeated term inside one document must contribute one posting.
		b.Add(fmt.Sprintf("https://example.org/%d", i), page("Повтор", "эхо эхо эхо"))
	}
	path := filepath.Join(t.TempDir(), "out.idx")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := index.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	inverted, err := r.LoadInvertedIndex()
	if err != nil {
		t.Fatalf("LoadInvertedIndex: %v", err)
	}

	for term, postings := range inverted {
		for i := 1; i < len(postings); i++ {
			if postings[i] <= postings[i-1] {
				t.Errorf("postings of %q not strictly ascending: %v", term, postings)
				break
			}
		}
	}
	if got := inverted["эхо"]; len(got) != 20 {
		t.Errorf("эхо df = %d, want 20", len(got))
	}
}

func TestBuilderStats(t *testing.T) {
	b := New()
	b.Add("https://example.org/0", page("Один", "кот собака"))
	b.Add("https://example.org/1", page("Два", "кот"))

	path := filepath.Join(t.TempDir(), "out.idx")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stats := b.Stats()
	if stats.TotalDocuments != 2 {
		t.Errorf("documents = %d, want 2", stats.TotalDocuments)
	}
	if stats.UniqueTerms != 2 {
		t.Errorf("unique terms = %d, want 2", stats.UniqueTerms)
	}
	if stats.TotalTokens != 3 {
		t.Errorf("tokens = %d, want 3", stats.TotalTokens)
	}
	if stats.TotalPostings != 3 {
		t.Errorf("postings = %d, want 3", stats.TotalPostings)
	}
	if stats.IndexingTime <= 0 {
		t.Error("indexing time not recorded")
	}
}

func containsID(postings []uint32, id uint32) bool {
	for _, p := range postings {
		if p == id {
			return true
		}
	}
	return false
}
