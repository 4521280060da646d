package translate

import (
	"regexp"
	"strings"

	"PaperNotify/internal/models"
)

// 各小节解析失败时的固定 fallback 文本
const (
	FallbackSummary = "要約の生成に失敗しました。"
	FallbackQA      = "重要なQ&Aの生成に失敗しました。"

	UnavailableQA = "重要なQ&Aは利用できません。"
)

// 每个小节独立匹配：内容从小节标题到下一个小节标题（或文本末尾）。
// RE2 没有 lookahead，所以用惰性匹配 + 后继标题的 alternation 截断。
var (
	titleRe   = regexp.MustCompile(`(?s)1\.\s*日本語タイトル[:：]\s*(.+?)\s*(?:\n\s*2\.|\z)`)
	summaryRe = regexp.MustCompile(`(?s)2\.\s*日本語要約[:：]\s*(.+?)\s*(?:\n\s*3\.|\z)`)
	qaRe      = regexp.MustCompile(`(?s)3\.\s*重要なQ&A[:：]\s*(.+)`)
)

// ParseResponse 从模型输出中提取三个小节。任何一个小节匹配失败只影响
// 该小节自身：标题退回原文标题，其余退回固定 fallback。部分成功是
// 常态而不是边界情况。
func ParseResponse(result string, paper models.Paper) models.TranslationResult {
	out := models.TranslationResult{
		TranslatedTitle:   paper.Title,
		TranslatedSummary: FallbackSummary,
		KeyQA:             FallbackQA,
	}

	if m := titleRe.FindStringSubmatch(result); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			out.TranslatedTitle = s
		}
	}
	if m := summaryRe.FindStringSubmatch(result); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			out.TranslatedSummary = s
		}
	}
	if m := qaRe.FindStringSubmatch(result); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			out.KeyQA = s
		}
	}

	return out
}
