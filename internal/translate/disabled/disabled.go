// Package disabled 是没有配置任何 API Key 时的兜底后端：不发起任何网络
// 请求，直接用原文填充结果，保证管道照常走到投稿那一步。
package disabled

import (
	"context"

	"PaperNotify/internal/core"
	"PaperNotify/internal/models"
	"PaperNotify/internal/translate"
)

const maxSummaryRunes = 600

const unavailableNotice = "（翻訳機能は無効です。原文のアブストラクトを表示しています。）"
const unavailableQA = "翻訳機能が無効のため、重要なQ&Aは利用できません。"

type Config struct{}

func DefaultConfig() *Config { return &Config{} }

func (c *Config) Validate() error { return nil }

type Translator struct{}

func New(_ *Config) (translate.Translator, error) {
	return &Translator{}, nil
}

func (t *Translator) Name() string { return "disabled" }

func (t *Translator) Translate(_ context.Context, paper models.Paper) models.TranslationResult {
	summary := paper.Abstract
	if r := []rune(summary); len(r) > maxSummaryRunes {
		summary = string(r[:maxSummaryRunes]) + "..."
	}
	return models.TranslationResult{
		TranslatedTitle:   paper.Title,
		TranslatedSummary: summary + "\n" + unavailableNotice,
		KeyQA:             unavailableQA,
	}
}

func init() {
	core.MustRegister(core.Provider{
		Name: "disabled",
		New: func(cfg translate.Config) (translate.Translator, error) {
			c, _ := cfg.(*Config)
			return New(c)
		},
		DefaultConfig: func() translate.Config { return DefaultConfig() },
	})
}
