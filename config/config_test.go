package config

import (
	"testing"

	"PaperNotify/internal/notify/slack"
	"PaperNotify/internal/translate/gemini"
	"PaperNotify/internal/translate/openai"
)

func TestProviderName(t *testing.T) {
	tests := []struct {
		name string
		cfg  AIConfig
		want string
	}{
		{"explicit provider wins", AIConfig{Provider: "openai", Gemini: gemini.Config{APIKey: "g"}}, "openai"},
		{"gemini key only", AIConfig{Gemini: gemini.Config{APIKey: "g"}}, "gemini"},
		{"openai key only", AIConfig{OpenAI: openai.Config{APIKey: "o"}}, "openai"},
		{"both keys prefer gemini", AIConfig{Gemini: gemini.Config{APIKey: "g"}, OpenAI: openai.Config{APIKey: "o"}}, "gemini"},
		{"no keys", AIConfig{}, "disabled"},
		{"explicit disabled", AIConfig{Provider: "disabled", OpenAI: openai.Config{APIKey: "o"}}, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ProviderName(); got != tt.want {
				t.Errorf("ProviderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppConfigValidate(t *testing.T) {
	cfg := &AppConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("missing slack credentials must fail validation")
	}

	cfg.Slack = slack.Config{Token: "xoxb-1", Channel: "C123"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestMask(t *testing.T) {
	if got := mask("sk-abcdef123456"); got != "sk-ab" {
		t.Errorf("mask = %q", got)
	}
	// 短 key 不能泄露任何字符
	if got := mask("abc"); got != "*****" {
		t.Errorf("mask short = %q", got)
	}
}
