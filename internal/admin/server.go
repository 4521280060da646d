// Package admin 提供 Slack slash command 风格的管理端点：
// 整体替换 tag 列表，以及一个静态的帮助文本。
package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"PaperNotify/pkg/logger"
)

const helpText = "利用可能なコマンド:\n" +
	"`/set_tags cs.AI, cs.CL, cs.CV` - 通知対象のarXivカテゴリを設定します（カンマ区切り、順番が優先順位）\n" +
	"`/help` - このヘルプを表示します"

// TagStore は admin が tag 列表に対して行う操作。tagstore.Store が実装する。
type TagStore interface {
	List(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, tags []string) error
}

type commandResponse struct {
	Text string `json:"text"`
}

type Server struct {
	echo  *echo.Echo
	store TagStore
	log   *logger.Logger
}

func NewServer(store TagStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:  e,
		store: store,
		log:   logger.WithPrefix("admin"),
	}

	e.POST("/slack/set_tags", s.handleSetTags)
	e.POST("/slack/help", s.handleHelp)

	return s
}

func (s *Server) handleSetTags(c echo.Context) error {
	input := strings.TrimSpace(c.FormValue("text"))
	if input == "" {
		return c.JSON(http.StatusOK, commandResponse{
			Text: "⚠️ 設定するarXivカテゴリを指定してください！例: cs.AI, cs.CL, cs.CV",
		})
	}

	var newTags []string
	for _, tag := range strings.Split(input, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			newTags = append(newTags, tag)
		}
	}

	if err := s.store.Replace(c.Request().Context(), newTags); err != nil {
		s.log.Error("replace tags: %v", err)
		return c.JSON(http.StatusOK, commandResponse{
			Text: "❌ カテゴリの更新に失敗しました。ログを確認してください。",
		})
	}

	s.log.Info("tags updated: %s", strings.Join(newTags, ", "))
	return c.JSON(http.StatusOK, commandResponse{
		Text: "✅ arXivカテゴリを更新しました！\n現在のカテゴリ: `" + strings.Join(newTags, ", ") + "`",
	})
}

func (s *Server) handleHelp(c echo.Context) error {
	return c.JSON(http.StatusOK, commandResponse{Text: helpText})
}

func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
