package slack

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/slack-go/slack"
)

// 回复文本里的 URL 标记。回复的 text fallback 固定写成 "... URL: <url>"，
// 这里按同样的标记提取。和 parentMarker 一样属于微协议的一部分。
var urlLabelRe = regexp.MustCompile(`URL:\s*.*?(https?://[^\s">]+)`)

// AnnouncedURLs 重建"已经通知过哪些论文"：找到频道里最新的公告线程，
// 把线程回复里的论文 URL 收集成集合。没有任何本地持久化，每次运行
// 都从频道历史重新推导。
//
// 任何 Slack 读取失败（鉴权、限流、频道不存在）都降级为空集合：
// 宁可重复通知一次，也不能让整个管道崩掉。
func (c *Client) AnnouncedURLs(ctx context.Context) map[string]struct{} {
	urls := make(map[string]struct{})

	history, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: c.channel,
		Limit:     historyLimit,
	})
	if err != nil {
		c.log.Error("fetch channel history: %v", err)
		return urls
	}

	parent := latestParent(history.Messages)
	if parent == nil {
		return urls
	}

	replies, _, _, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: c.channel,
		Timestamp: parent.Timestamp,
		Limit:     repliesLimit,
	})
	if err != nil {
		c.log.Error("fetch thread replies: %v", err)
		return urls
	}

	for _, msg := range replies {
		if msg.Timestamp == parent.Timestamp {
			continue // 亲投稿自身也会出现在 replies 里，跳过
		}
		if m := urlLabelRe.FindStringSubmatch(msg.Text); m != nil {
			urls[m[1]] = struct{}{}
		}
	}

	c.log.Info("found %d existing paper URLs in the latest thread", len(urls))
	return urls
}

// latestParent 在历史消息里找最新的公告亲投稿。
// 亲投稿 = 含 parentMarker 且不是别的线程的回复
// （没有 thread_ts，或 thread_ts 等于自己的 ts）。
func latestParent(messages []slack.Message) *slack.Message {
	var (
		best   *slack.Message
		bestTS float64
	)
	for i := range messages {
		m := &messages[i]
		if !strings.Contains(m.Text, parentMarker) {
			continue
		}
		if m.ThreadTimestamp != "" && m.ThreadTimestamp != m.Timestamp {
			continue
		}
		ts, err := strconv.ParseFloat(m.Timestamp, 64)
		if err != nil {
			continue
		}
		if best == nil || ts > bestTS {
			best = m
			bestTS = ts
		}
	}
	return best
}
