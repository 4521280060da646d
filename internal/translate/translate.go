package translate

import (
	"context"

	"PaperNotify/internal/models"
)

// Translator 翻译后端的统一接口。后端在启动时选定一次，调用方不感知具体实现。
// Translate never returns an error: every backend failure degrades into a
// fully populated TranslationResult so the pipeline can always post.
type Translator interface {
	Name() string

	Translate(ctx context.Context, paper models.Paper) models.TranslationResult
}

type Config interface {
	Validate() error
}
