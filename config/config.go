package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"PaperNotify/internal/notify/slack"
	"PaperNotify/internal/platform/arxiv"
	"PaperNotify/internal/translate/gemini"
	"PaperNotify/internal/translate/openai"
	"PaperNotify/pkg/logger"
)

// TagsConfig tag 优先级列表的持久化位置和初始默认值
type TagsConfig struct {
	Path    string   `mapstructure:"path" yaml:"path"`       // sqlite 文件路径
	Default []string `mapstructure:"default" yaml:"default"` // 首次启动时的种子列表
}

// AIConfig 翻译后端配置。Provider 留空时按 API Key 自动选择。
type AIConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider"` // "openai" / "gemini" / "disabled"
	OpenAI   openai.Config `mapstructure:"openai" yaml:"openai"`
	Gemini   gemini.Config `mapstructure:"gemini" yaml:"gemini"`
}

// ProviderName 决定启动时用哪个后端：显式指定优先，否则按 Key 的
// 存在性选（gemini 优先，和原来的部署习惯一致），都没有就 disabled。
func (c *AIConfig) ProviderName() string {
	if c.Provider != "" {
		return c.Provider
	}
	if c.Gemini.APIKey != "" {
		return "gemini"
	}
	if c.OpenAI.APIKey != "" {
		return "openai"
	}
	return "disabled"
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

type AdminConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// AppConfig 应用总配置(全局 + 各组件)
type AppConfig struct {
	Env      string       `mapstructure:"env" yaml:"env"`           // 运行环境:dev/prod
	Log      LogConfig    `mapstructure:"log" yaml:"log"`           // 日志配置
	Slack    slack.Config `mapstructure:"slack" yaml:"slack"`       // Slack 配置
	Arxiv    arxiv.Config `mapstructure:"arxiv" yaml:"arxiv"`       // arXiv 平台配置
	Tags     TagsConfig   `mapstructure:"tags" yaml:"tags"`         // tag 优先级配置
	AI       AIConfig     `mapstructure:"ai" yaml:"ai"`             // 翻译后端配置
	Schedule string       `mapstructure:"schedule" yaml:"schedule"` // cron 表达式
	Admin    AdminConfig  `mapstructure:"admin" yaml:"admin"`       // 管理端点配置
}

// Validate 启动前的强校验。缺少 Slack 凭证直接拒绝启动，
// 其余配置问题留给运行期降级处理。
func (c *AppConfig) Validate() error {
	if err := c.Slack.Validate(); err != nil {
		return fmt.Errorf("slack 配置不合法: %w", err)
	}
	return nil
}

var (
	global     *AppConfig
	once       sync.Once
	globalErr  error
	configPath string
)

func setDefaults(v *viper.Viper) {
	homedir, _ := os.UserHomeDir()
	tagDBPath := filepath.Join(homedir, ".papernotify", "data", "tags.db")

	v.SetDefault("env", "prod")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.file", "")

	v.SetDefault("slack.token", "")
	v.SetDefault("slack.channel", "")

	v.SetDefault("arxiv.use_api", true)
	v.SetDefault("arxiv.proxy", "")
	v.SetDefault("arxiv.timeout", 30)
	v.SetDefault("arxiv.api_base", "https://export.arxiv.org/api/query")
	v.SetDefault("arxiv.web_base", "https://arxiv.org/search/advanced")

	v.SetDefault("tags.path", tagDBPath)
	v.SetDefault("tags.default", []string{"cs.AI", "cs.LG", "cs.CL"})

	v.SetDefault("ai.provider", "")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-2.0-flash-lite")
	v.SetDefault("ai.gemini.api_key", "")

	v.SetDefault("schedule", "0 9 * * *")
	v.SetDefault("admin.addr", ":8787")
}

// 可额外传入目录或具体文件路径
func Init(configPaths ...string) (*AppConfig, error) {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		homedir, _ := os.UserHomeDir()
		configDir := filepath.Join(homedir, ".papernotify", "config")
		os.MkdirAll(configDir, 0755)

		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath(configDir)

		for _, p := range configPaths {
			if p == "" {
				continue
			}
			if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
				v.SetConfigFile(p)
			} else {
				v.AddConfigPath(p)
			}
		}

		v.SetEnvPrefix("PN")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				globalErr = fmt.Errorf("读取配置文件失败: %w", err)
				return
			}
			// 配置文件不存在，创建示例配置文件
			if err := CreateExampleConfig(); err != nil {
				globalErr = fmt.Errorf("创建示例配置文件失败: %w", err)
				return
			}
		} else {
			configPath = v.ConfigFileUsed()
		}

		cfg := &AppConfig{}
		if err := v.Unmarshal(&cfg); err != nil {
			globalErr = fmt.Errorf("配置解析失败: %w", err)
			return
		}

		if err := cfg.Arxiv.Validate(); err != nil {
			globalErr = fmt.Errorf("arxiv 配置不合法: %w", err)
			return
		}

		global = cfg
	})
	return global, globalErr
}

func MustInit(configPaths ...string) *AppConfig {
	cfg, err := Init(configPaths...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Get() *AppConfig {
	if global == nil {
		_, _ = Init()
	}
	return global
}

func GetConfigPath() string { return configPath }

// Diagnostics 把关键配置打到日志里，API Key 只露前几位。
func (c *AppConfig) Diagnostics() {
	logger.Info("translation provider: %s", c.AI.ProviderName())
	if c.AI.Gemini.APIKey != "" {
		logger.Info("GEMINI_API_KEY: '%s...(省略)...'", mask(c.AI.Gemini.APIKey))
	}
	if c.AI.OpenAI.APIKey != "" {
		logger.Info("OPENAI_API_KEY: '%s...(省略)...'", mask(c.AI.OpenAI.APIKey))
	}
	if c.AI.ProviderName() == "disabled" {
		logger.Warn("no AI API key is set, translation features will be disabled")
	}
}

func mask(key string) string {
	if len(key) <= 5 {
		return "*****"
	}
	return key[:5]
}

// CreateExampleConfig 在默认位置生成一份带默认值的配置文件。
func CreateExampleConfig() error {
	homedir, _ := os.UserHomeDir()
	configDir := filepath.Join(homedir, ".papernotify", "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		return nil
	}

	defaults := &AppConfig{
		Env: "prod",
		Log: LogConfig{Level: "INFO"},
		Arxiv: arxiv.Config{
			UseAPI:  true,
			Timeout: 30,
			APIBase: "https://export.arxiv.org/api/query",
			WebBase: "https://arxiv.org/search/advanced",
		},
		Tags: TagsConfig{
			Path:    filepath.Join(homedir, ".papernotify", "data", "tags.db"),
			Default: []string{"cs.AI", "cs.LG", "cs.CL"},
		},
		AI: AIConfig{
			OpenAI: openai.Config{BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
			Gemini: gemini.Config{Model: "gemini-2.0-flash-lite"},
		},
		Schedule: "0 9 * * *",
		Admin:    AdminConfig{Addr: ":8787"},
	}

	body, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("序列化默认配置失败: %w", err)
	}

	header := "# PaperNotify 配置文件\n# slack.token / slack.channel は必須。AI キーはどちらか一方で十分。\n\n"
	if err := os.WriteFile(configFile, append([]byte(header), body...), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	logger.Info("已在 %s 中创建配置文件", configFile)
	return nil
}
