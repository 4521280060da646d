package arxiv

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PaperNotify/internal/models"
)

type AtomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Total   int         `xml:"http://a9.com/-/spec/opensearch/1.1/ totalResults"`
	Entries []AtomEntry `xml:"entry"`
}

type AtomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Updated   string       `xml:"updated"`
	Authors   []AtomAuthor `xml:"author"`
	Links     []AtomLink   `xml:"link"`
}

type AtomAuthor struct {
	Name string `xml:"name"`
}

type AtomLink struct {
	Rel   string `xml:"rel,attr"`
	Href  string `xml:"href,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// ParseAtomFeed 解析 arXiv API 的 Atom 响应
func ParseAtomFeed(xmlContent string) ([]models.Paper, error) {
	var feed AtomFeed
	if err := xml.Unmarshal([]byte(xmlContent), &feed); err != nil {
		return nil, fmt.Errorf("failed to parse atom: %w", err)
	}

	var papers []models.Paper
	for _, e := range feed.Entries {
		p := models.Paper{
			// e.ID 类似 http://arxiv.org/abs/XXXX
			URL:      e.ID,
			SourceID: parseArxivIDFromURL(e.ID),
			Title:    cleanText(e.Title),
			Abstract: cleanText(e.Summary),
		}

		var authorNames []string
		for _, a := range e.Authors {
			name := strings.TrimSpace(a.Name)
			if name != "" {
				authorNames = append(authorNames, name)
			}
		}
		p.Authors = authorNames

		p.Published = "Unknown"
		if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
			p.Published = t.Format("2006-01-02")
		}

		for _, l := range e.Links {
			if l.Title == "pdf" || l.Type == "application/pdf" {
				p.PDFURL = l.Href
				break
			}
		}
		if p.PDFURL == "" && p.SourceID != "" {
			p.PDFURL = PDFUrl(p.SourceID)
		}

		papers = append(papers, p)
	}

	return papers, nil
}

// ParseSearchHTML 解析网页搜索结果（fallback 模式）
func ParseSearchHTML(htmlContent string) ([]models.Paper, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var papers []models.Paper
	doc.Find("li.arxiv-result").Each(func(i int, s *goquery.Selection) {
		if p := parsePaperItem(s); p != nil {
			papers = append(papers, *p)
		}
	})

	return papers, nil
}

func parsePaperItem(s *goquery.Selection) *models.Paper {
	paper := &models.Paper{}

	if link := s.Find("a").First(); link.Length() > 0 {
		paper.URL, _ = link.Attr("href")
		paper.SourceID = parseArxivIDFromURL(paper.URL)
	}
	if paper.URL == "" {
		return nil
	}

	if title := s.Find("p.title"); title.Length() > 0 {
		paper.Title = cleanText(title.Text())
	}

	if authors := s.Find("p.authors"); authors.Length() > 0 {
		text := strings.TrimPrefix(authors.Text(), "Authors:")
		paper.Authors = parseAuthorsToSlice(cleanText(text))
	}

	if abstract := s.Find("span.abstract-full"); abstract.Length() > 0 {
		paper.Abstract = cleanText(abstract.Text())
	}

	paper.Published = "Unknown"
	if dateElem := s.Find("p.is-size-7"); dateElem.Length() > 0 {
		if t := parseDate(dateElem.Text()); !t.IsZero() {
			paper.Published = t.Format("2006-01-02")
		}
	}

	if paper.SourceID != "" {
		paper.PDFURL = PDFUrl(paper.SourceID)
	}

	return paper
}

func parseDate(text string) time.Time {
	var dateStr string

	if strings.Contains(text, "v1submitted") || strings.Contains(text, "v1 submitted") {
		re := regexp.MustCompile(`v1\s*submitted\s+(.+?);\s*originally`)
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			dateStr = m[1]
		}
	}

	if dateStr == "" {
		re := regexp.MustCompile(`Submitted\s*(.+?);\s*originally`)
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			dateStr = m[1]
		}
	}

	dateStr = strings.TrimSpace(dateStr)
	t, err := time.Parse("2 January, 2006", dateStr)
	if err != nil {
		t, _ = time.Parse("2 Jan, 2006", dateStr)
	}
	return t
}

func cleanText(text string) string {
	text = regexp.MustCompile(`\s+`).ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func parseArxivIDFromURL(url string) string {
	// 从 https://arxiv.org/abs/2408.12345 提取 2408.12345
	if len(url) > 0 {
		idx := strings.LastIndex(url, "/")
		if idx > 0 && idx < len(url)-1 {
			return url[idx+1:]
		}
	}
	return ""
}

func parseAuthorsToSlice(authorsStr string) []string {
	if authorsStr == "" {
		return nil
	}
	authors := strings.Split(authorsStr, ",")
	result := make([]string, 0, len(authors))
	for _, author := range authors {
		author = strings.TrimSpace(author)
		if author != "" {
			result = append(result, author)
		}
	}
	return result
}

func PDFUrl(arxivID string) string {
	return "https://arxiv.org/pdf/" + arxivID
}
