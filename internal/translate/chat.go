package translate

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"PaperNotify/internal/models"
	"PaperNotify/pkg/logger"
)

// ChatTranslator 把任意 eino ChatModel 包装成 Translator。
// openai / gemini 后端只负责构造各自的 ChatModel，其余逻辑共用这里。
type ChatTranslator struct {
	name string
	cm   model.BaseChatModel
	log  *logger.Logger
}

func NewChatTranslator(name string, cm model.BaseChatModel) *ChatTranslator {
	return &ChatTranslator{
		name: name,
		cm:   cm,
		log:  logger.WithPrefix("translate"),
	}
}

func (t *ChatTranslator) Name() string { return t.name }

func (t *ChatTranslator) Translate(ctx context.Context, paper models.Paper) models.TranslationResult {
	msgs := []*schema.Message{
		schema.SystemMessage(systemInstruction),
		schema.UserMessage(BuildPrompt(paper)),
	}

	out, err := t.cm.Generate(ctx, msgs)
	if err != nil {
		t.log.Error("%s 翻译失败: %v", t.name, err)
		return models.TranslationResult{
			TranslatedTitle:   paper.Title,
			TranslatedSummary: fmt.Sprintf("翻訳・要約中にエラーが発生しました: %v", err),
			KeyQA:             UnavailableQA,
		}
	}

	return ParseResponse(out.Content, paper)
}
