package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"PaperNotify/internal/models"
)

func atomFor(tag, id string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/%s</id>
    <title>Paper for %s</title>
    <summary>abstract</summary>
    <published>2024-08-20T00:00:00Z</published>
    <author><name>A. Uthor</name></author>
  </entry>
</feed>`, id, tag)
}

func newTestFetcher(t *testing.T, apiBase string) *Fetcher {
	t.Helper()
	f, err := NewFetcher(&Config{
		UseAPI:  true,
		Timeout: 5,
		APIBase: apiBase,
		WebBase: "https://arxiv.org/search/advanced",
	})
	if err != nil {
		t.Fatalf("NewFetcher() error: %v", err)
	}
	return f
}

func TestFetchOneResultPerTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("max_results") != "1" {
			t.Errorf("expected max_results=1, got %s", q.Get("max_results"))
		}
		if q.Get("sortBy") != "submittedDate" || q.Get("sortOrder") != "descending" {
			t.Errorf("unexpected sort params: %v", q)
		}
		switch q.Get("search_query") {
		case "cat:cs.AI":
			fmt.Fprint(w, atomFor("cs.AI", "2408.00001"))
		case "cat:cs.LG":
			fmt.Fprint(w, atomFor("cs.LG", "2408.00002"))
		default:
			t.Errorf("unexpected query: %s", q.Get("search_query"))
		}
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.URL)
	result := f.Fetch(context.Background(), []string{"cs.AI", "cs.LG"})

	if len(result) != 2 {
		t.Fatalf("expected 2 tags in result, got %d", len(result))
	}
	if len(result["cs.AI"]) != 1 || result["cs.AI"][0].SourceID != "2408.00001" {
		t.Errorf("unexpected cs.AI papers: %+v", result["cs.AI"])
	}
	if result["cs.AI"][0].Tag != "cs.AI" {
		t.Errorf("tag not stamped on paper: %q", result["cs.AI"][0].Tag)
	}
}

// 单个 tag 失败只降级为空列表，其余 tag 照常返回
func TestFetchPerTagFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_query") == "cat:cs.BAD" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, atomFor("cs.AI", "2408.00001"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.URL)
	result := f.Fetch(context.Background(), []string{"cs.BAD", "cs.AI"})

	if _, ok := result["cs.BAD"]; !ok {
		t.Fatal("failed tag must still be present in the result map")
	}
	if len(result["cs.BAD"]) != 0 {
		t.Errorf("failed tag should map to empty slice, got %d papers", len(result["cs.BAD"]))
	}
	if len(result["cs.AI"]) != 1 {
		t.Errorf("healthy tag should still return papers, got %d", len(result["cs.AI"]))
	}
}

func TestHasAny(t *testing.T) {
	if HasAny(map[string][]models.Paper{}) {
		t.Error("empty map should have no papers")
	}
	if HasAny(map[string][]models.Paper{"cs.AI": nil, "cs.LG": {}}) {
		t.Error("all-empty map should have no papers")
	}
	if !HasAny(map[string][]models.Paper{"cs.AI": nil, "cs.LG": {{Title: "x"}}}) {
		t.Error("expected HasAny to be true")
	}
}
