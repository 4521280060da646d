package models

import (
	"strings"
)

// Paper 统一的论文数据模型，独立于具体来源。
// URL is the canonical abs link and the sole dedup key: two records with the
// same URL are the same announcement target even if other fields drifted
// (e.g. a revised abstract).
type Paper struct {
	SourceID  string // 平台内唯一ID，如: arXivID "2408.12345"
	Title     string
	URL       string
	Authors   []string
	Published string // YYYY-MM-DD, "Unknown" when the feed omits it
	Abstract  string
	PDFURL    string
	Tag       string // the category the paper was fetched under
}

// AuthorsCSV 返回以逗号分隔的作者名
func (p *Paper) AuthorsCSV() string {
	return strings.Join(p.Authors, ", ")
}

// TranslationResult is always fully populated: every field carries either
// model output or a fixed fallback, so formatting never branches on nil.
type TranslationResult struct {
	TranslatedTitle   string
	TranslatedSummary string
	KeyQA             string
}
