package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"PaperNotify/config"
	"PaperNotify/internal/admin"
	"PaperNotify/internal/core"
	"PaperNotify/internal/notify"
	"PaperNotify/internal/notify/slack"
	"PaperNotify/internal/platform/arxiv"
	"PaperNotify/internal/tagstore"
	"PaperNotify/internal/translate"
	_ "PaperNotify/internal/translate/disabled"
	_ "PaperNotify/internal/translate/gemini"
	_ "PaperNotify/internal/translate/openai"
	"PaperNotify/pkg/logger"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:   "papernotify",
		Short: "arXiv 最新論文を選んで翻訳し、Slack スレッドに通知する bot",
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "設定ファイルのパス")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "管道を一回だけ実行する（cron の 1 tick 相当）",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := buildApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.notifier.RunOnce(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "スケジューラと管理エンドポイントを起動する",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := buildApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return serve(app)
		},
	}

	root.AddCommand(runCmd, serveCmd)

	if err := root.Execute(); err != nil {
		logger.Fatal("%v", err)
	}
}

type app struct {
	cfg      *config.AppConfig
	notifier *notify.Notifier
	tags     *tagstore.Store
}

func buildApp() (*app, func(), error) {
	cfg, err := config.Init(configFile)
	if err != nil {
		return nil, nil, err
	}

	logger.Init(cfg.Log.Level, cfg.Env != "prod", cfg.Log.File)

	// 凭证缺失是唯一允许在启动期致命的错误
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	cfg.Diagnostics()

	tags, err := tagstore.Open(cfg.Tags.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open tag store: %w", err)
	}
	if err := tags.Seed(context.Background(), cfg.Tags.Default); err != nil {
		tags.Close()
		return nil, nil, fmt.Errorf("seed tag store: %w", err)
	}

	fetcher, err := arxiv.NewFetcher(&cfg.Arxiv)
	if err != nil {
		tags.Close()
		return nil, nil, fmt.Errorf("create arxiv fetcher: %w", err)
	}

	translator, err := buildTranslator(cfg)
	if err != nil {
		tags.Close()
		return nil, nil, err
	}

	chat, err := slack.NewClient(&cfg.Slack)
	if err != nil {
		tags.Close()
		return nil, nil, fmt.Errorf("create slack client: %w", err)
	}

	notifier := notify.New(fetcher, translator, chat, tags)
	cleanup := func() { tags.Close() }

	return &app{cfg: cfg, notifier: notifier, tags: tags}, cleanup, nil
}

func buildTranslator(cfg *config.AppConfig) (translate.Translator, error) {
	name := cfg.AI.ProviderName()
	provider, ok := core.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown translation provider: %s", name)
	}

	var pcfg translate.Config
	switch name {
	case "openai":
		pcfg = &cfg.AI.OpenAI
	case "gemini":
		pcfg = &cfg.AI.Gemini
	default:
		pcfg = provider.DefaultConfig()
	}

	translator, err := provider.New(pcfg)
	if err != nil {
		return nil, fmt.Errorf("create %s translator: %w", name, err)
	}
	logger.Info("using %s for translation and summarization", translator.Name())
	return translator, nil
}

func serve(a *app) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(a.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := a.notifier.RunOnce(ctx); err != nil {
			logger.Error("pipeline run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", a.cfg.Schedule, err)
	}

	adminSrv := admin.NewServer(a.tags)
	go func() {
		if err := adminSrv.Start(a.cfg.Admin.Addr); err != nil {
			logger.Error("admin server: %v", err)
		}
	}()

	c.Start()
	logger.Info("scheduler started (schedule: %s), admin on %s", a.cfg.Schedule, a.cfg.Admin.Addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	ctx := c.Stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return adminSrv.Shutdown(shutdownCtx)
}
