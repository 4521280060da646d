package arxiv

import (
	"testing"
)

const sampleAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>1234</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/2408.12345v1</id>
    <title>Deep  Learning
   for   Everything</title>
    <summary>We propose a model with H^3 capacity.
It works.</summary>
    <published>2024-08-20T17:59:59Z</published>
    <author><name>Alice Example</name></author>
    <author><name>Bob Sample</name></author>
    <link rel="alternate" type="text/html" href="http://arxiv.org/abs/2408.12345v1"/>
    <link rel="related" type="application/pdf" title="pdf" href="http://arxiv.org/pdf/2408.12345v1"/>
  </entry>
</feed>`

func TestParseAtomFeed(t *testing.T) {
	papers, err := ParseAtomFeed(sampleAtom)
	if err != nil {
		t.Fatalf("ParseAtomFeed() error: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("expected 1 paper, got %d", len(papers))
	}

	p := papers[0]
	if p.URL != "http://arxiv.org/abs/2408.12345v1" {
		t.Errorf("unexpected URL: %s", p.URL)
	}
	if p.SourceID != "2408.12345v1" {
		t.Errorf("unexpected SourceID: %s", p.SourceID)
	}
	if p.Title != "Deep Learning for Everything" {
		t.Errorf("title not cleaned: %q", p.Title)
	}
	if p.Published != "2024-08-20" {
		t.Errorf("unexpected published date: %s", p.Published)
	}
	if p.AuthorsCSV() != "Alice Example, Bob Sample" {
		t.Errorf("unexpected authors: %s", p.AuthorsCSV())
	}
	if p.PDFURL != "http://arxiv.org/pdf/2408.12345v1" {
		t.Errorf("unexpected pdf url: %s", p.PDFURL)
	}
}

func TestParseAtomFeedEmpty(t *testing.T) {
	papers, err := ParseAtomFeed(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	if err != nil {
		t.Fatalf("ParseAtomFeed() error: %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("expected 0 papers, got %d", len(papers))
	}
}

func TestParseAtomFeedInvalid(t *testing.T) {
	if _, err := ParseAtomFeed("not xml at all"); err == nil {
		t.Error("expected error for invalid xml")
	}
}

func TestParseAtomFeedMissingPublished(t *testing.T) {
	content := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2501.00001v1</id>
    <title>No Date</title>
  </entry>
</feed>`
	papers, err := ParseAtomFeed(content)
	if err != nil {
		t.Fatalf("ParseAtomFeed() error: %v", err)
	}
	if papers[0].Published != "Unknown" {
		t.Errorf("expected Unknown published date, got %s", papers[0].Published)
	}
	// pdf link 缺失时从 ID 推导
	if papers[0].PDFURL != "https://arxiv.org/pdf/2501.00001v1" {
		t.Errorf("unexpected derived pdf url: %s", papers[0].PDFURL)
	}
}

func TestParseArxivIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://arxiv.org/abs/2408.12345", "2408.12345"},
		{"http://arxiv.org/abs/2408.12345v2", "2408.12345v2"},
		{"", ""},
		{"nourl", ""},
	}
	for _, c := range cases {
		if got := parseArxivIDFromURL(c.url); got != c.want {
			t.Errorf("parseArxivIDFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
