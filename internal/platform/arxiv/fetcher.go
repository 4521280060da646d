package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PaperNotify/internal/core"
	"PaperNotify/internal/models"
	"PaperNotify/pkg/logger"
)

// Fetcher 按类别抓取 arXiv 最新论文，每个 tag 一次查询、最多一条结果。
type Fetcher struct {
	config     *Config
	httpClient *http.Client
	log        *logger.Logger
}

func NewFetcher(config *Config) (*Fetcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Fetcher{
		config:     config,
		httpClient: core.NewHTTPClient(config.Timeout, config.Proxy),
		log:        logger.WithPrefix("arxiv"),
	}, nil
}

// Fetch 为每个 tag 抓取最新一篇论文。单个 tag 失败只降级为空列表，
// 绝不中断整批；返回的 map 保证包含每一个输入 tag。
func (f *Fetcher) Fetch(ctx context.Context, tags []string) map[string][]models.Paper {
	all := make(map[string][]models.Paper, len(tags))

	for _, tag := range tags {
		papers, err := f.fetchTag(ctx, tag)
		if err != nil {
			f.log.Warn("fetch papers for tag %s: %v", tag, err)
			all[tag] = nil
			continue
		}
		f.log.Info("found %d papers for category %s", len(papers), tag)
		all[tag] = papers
	}

	return all
}

func (f *Fetcher) fetchTag(ctx context.Context, tag string) ([]models.Paper, error) {
	var (
		papers []models.Paper
		err    error
	)
	if f.config.UseAPI {
		papers, err = f.fetchViaAPI(ctx, tag)
	} else {
		papers, err = f.fetchViaWeb(ctx, tag)
	}
	if err != nil {
		return nil, err
	}

	for i := range papers {
		papers[i].Tag = tag
	}
	return papers, nil
}

// fetchViaAPI 使用官方 API，按提交日期降序取最新一条
func (f *Fetcher) fetchViaAPI(ctx context.Context, tag string) ([]models.Paper, error) {
	params := url.Values{}
	params.Add("search_query", "cat:"+tag)
	params.Add("start", "0")
	params.Add("max_results", "1")
	params.Add("sortBy", "submittedDate")
	params.Add("sortOrder", "descending")

	content, err := f.request(ctx, f.config.APIBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	papers, err := ParseAtomFeed(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	return papers, nil
}

// fetchViaWeb 使用网页高级搜索（fallback 模式），只取第一条
func (f *Fetcher) fetchViaWeb(ctx context.Context, tag string) ([]models.Paper, error) {
	params := url.Values{}
	params.Add("advanced", "1")
	params.Add("terms-0-term", tag)
	params.Add("terms-0-field", "cross_list_category")
	params.Add("classification-include_cross_list", "include")
	params.Add("abstracts", "show")
	params.Add("size", "25") // arXiv web 最小 25
	params.Add("order", "-announced_date_first")

	content, err := f.request(ctx, f.config.WebBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("web request failed: %w", err)
	}

	papers, err := ParseSearchHTML(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse web response: %w", err)
	}
	if len(papers) > 1 {
		papers = papers[:1]
	}
	return papers, nil
}

func (f *Fetcher) request(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < 2 {
				time.Sleep(time.Duration(1<<attempt) * time.Second)
				continue
			}
			break
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP error: %d", resp.StatusCode)
			if attempt < 2 {
				time.Sleep(time.Duration(1<<attempt) * time.Second)
				continue
			}
			break
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}
		return string(body), nil
	}
	return "", lastErr
}

// HasAny 检查是否有任何 tag 抓到了论文
func HasAny(papersByTag map[string][]models.Paper) bool {
	for _, papers := range papersByTag {
		if len(papers) > 0 {
			return true
		}
	}
	return false
}
