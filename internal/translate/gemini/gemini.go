package gemini

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"PaperNotify/internal/core"
	"PaperNotify/internal/translate"
)

type Config struct {
	Model  string `mapstructure:"model" yaml:"model"`     // 模型名称
	APIKey string `mapstructure:"api_key" yaml:"api_key"` // API Key
}

func DefaultConfig() *Config {
	return &Config{
		Model: "gemini-2.0-flash-lite",
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

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  config.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}

	return translate.NewChatTranslator("gemini", cm), nil
}

func init() {
	core.MustRegister(core.Provider{
		Name: "gemini",
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
