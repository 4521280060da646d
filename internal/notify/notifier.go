// Package notify 是管道的编排层：fetch → select → dedup → translate →
// format → post。每次运行构建一次状态、跑到终态就丢弃，跨运行的唯一
// "状态"是频道历史本身。
package notify

import (
	"context"
	"fmt"
	"time"

	"PaperNotify/internal/format"
	"PaperNotify/internal/models"
	"PaperNotify/internal/platform/arxiv"
	"PaperNotify/internal/translate"
	"PaperNotify/pkg/logger"
)

// Chat 是 Notifier 对聊天面的全部依赖，由 slack.Client 实现。
type Chat interface {
	AnnouncedURLs(ctx context.Context) map[string]struct{}
	PostParent(ctx context.Context, date string) (string, error)
	PostReply(ctx context.Context, threadTS, fallback, blockText string) error
}

type Fetcher interface {
	Fetch(ctx context.Context, tags []string) map[string][]models.Paper
}

// TagSource 提供当前的 tag 优先级列表（顺序即优先级）。
type TagSource interface {
	List(ctx context.Context) ([]string, error)
}

type Notifier struct {
	fetcher    Fetcher
	translator translate.Translator
	chat       Chat
	tags       TagSource
	log        *logger.Logger

	now func() time.Time
}

func New(fetcher Fetcher, translator translate.Translator, chat Chat, tags TagSource) *Notifier {
	return &Notifier{
		fetcher:    fetcher,
		translator: translator,
		chat:       chat,
		tags:       tags,
		log:        logger.WithPrefix("notify"),
		now:        time.Now,
	}
}

// RunOnce 执行一个完整的管道 tick。没有候选、或者候选已经通知过，
// 都正常结束（返回 nil）；只有 tag 读取失败和聊天写入失败会返回错误。
func (n *Notifier) RunOnce(ctx context.Context) error {
	tags, err := n.tags.List(ctx)
	if err != nil {
		return fmt.Errorf("load tag priority: %w", err)
	}
	if len(tags) == 0 {
		n.log.Warn("tag priority list is empty, nothing to do")
		return nil
	}

	papersByTag := n.fetcher.Fetch(ctx, tags)
	if !arxiv.HasAny(papersByTag) {
		n.log.Info("no papers found for any tag")
		return nil
	}

	best := arxiv.SelectBest(papersByTag, tags)
	if best == nil {
		n.log.Info("no suitable paper found after priority filtering")
		return nil
	}

	return n.NotifyPaper(ctx, *best)
}

// NotifyPaper 对单篇论文执行 dedup 检查和投稿。
func (n *Notifier) NotifyPaper(ctx context.Context, paper models.Paper) error {
	announced := n.chat.AnnouncedURLs(ctx)
	if _, ok := announced[paper.URL]; ok {
		n.log.Info("paper %s already announced, skipping", paper.SourceID)
		return nil
	}

	// 先发亲投稿开线程。这一步失败就不发论文本体。
	threadTS, err := n.chat.PostParent(ctx, n.now().Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("start announcement thread: %w", err)
	}

	tr := n.translator.Translate(ctx, paper)

	fallback, blockText := renderMessage(paper, tr)
	if err := n.chat.PostReply(ctx, threadTS, fallback, blockText); err != nil {
		return fmt.Errorf("post paper message: %w", err)
	}

	n.log.Info("notified paper %s (%s)", paper.SourceID, paper.Tag)
	return nil
}

// renderMessage 组装回复消息。fallback 里固定带 "URL:" 标记，
// 去重扫描靠它把 URL 找回来。
func renderMessage(paper models.Paper, tr models.TranslationResult) (fallback, blockText string) {
	title := format.ForSlack(paper.Title)
	translatedTitle := format.ForSlack(tr.TranslatedTitle)
	summary := format.ForSlack(tr.TranslatedSummary)
	keyQA := format.ForSlack(tr.KeyQA)

	fallback = fmt.Sprintf("%s - URL: %s", translatedTitle, paper.URL)
	blockText = fmt.Sprintf(
		"*【タイトル】*\n%s\n\n*【原題】*\n%s\n\n*【公開日】*\n%s\n\n*【URL】*\n%s\n\n*【重要なポイント】*\n%s\n\n*【要約】*\n%s",
		translatedTitle, title, paper.Published, paper.URL, keyQA, summary,
	)
	return fallback, blockText
}
