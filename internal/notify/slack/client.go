// Package slack 封装 Slack Web API：投稿、历史读取，以及基于历史的
// 去重扫描。除了去重读取以外，所有失败都会原样返回给调用方。
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"PaperNotify/pkg/logger"
)

// 亲投稿のマーカー。去重扫描依赖这个前缀找到最新的公告线程，
// 动了这里等于换了协议版本，旧线程将全部识别不到。
const parentMarker = "📢 *最新のarXiv論文"

const (
	historyLimit = 20
	repliesLimit = 10
)

// api 抽出 Client 用到的三个 Web API 调用，测试里用 fake 替换。
type api interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
}

type Config struct {
	Token   string `mapstructure:"token" yaml:"token"`
	Channel string `mapstructure:"channel" yaml:"channel"`
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if c.Channel == "" {
		return fmt.Errorf("channel cannot be empty")
	}
	return nil
}

type Client struct {
	api     api
	channel string
	log     *logger.Logger
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		api:     slack.New(config.Token),
		channel: config.Channel,
		log:     logger.WithPrefix("slack"),
	}, nil
}

// PostParent 发布当天的公告亲投稿并返回其 ts（线程锚点）。
func (c *Client) PostParent(ctx context.Context, date string) (string, error) {
	text := fmt.Sprintf("%s - %s*", parentMarker, date)
	_, ts, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", fmt.Errorf("post parent message: %w", err)
	}
	c.log.Info("parent message posted: %s", ts)
	return ts, nil
}

// PostReply 在 threadTS 线程里发一条带 mrkdwn section block 的回复。
// fallback 是 Slack 的纯文本 text 字段，去重扫描读的就是它。
func (c *Client) PostReply(ctx context.Context, threadTS, fallback, blockText string) error {
	block := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, blockText, false, false),
		nil, nil,
	)

	_, ts, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(block),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("post reply message: %w", err)
	}
	c.log.Info("message sent: %s", ts)
	return nil
}
