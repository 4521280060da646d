package openai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"PaperNotify/internal/core"
	"PaperNotify/internal/translate"
)

type Config struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"` // API 地址，支持 OpenAI 兼容的 API
	Model   string `mapstructure:"model" yaml:"model"`       // 模型名称
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`   // API Key
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	return nil
}

func New(config *Config) (translate.Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	temp := float32(0)
	cm, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
		APIKey:      config.APIKey,
		Model:       config.Model,
		BaseURL:     config.BaseURL,
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}

	return translate.NewChatTranslator("openai", cm), nil
}

func init() {
	core.MustRegister(core.Provider{
		Name: "openai",
		New: func(cfg translate.Config) (translate.Translator, error) {
			c, _ := cfg.(*Config)
			if c == nil {
				c = DefaultConfig()
			}
			return New(c)
		},
		DefaultConfig: func() translate.Config { return DefaultConfig() },
	})
}
