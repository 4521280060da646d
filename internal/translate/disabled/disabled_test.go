package disabled

import (
	"context"
	"strings"
	"testing"

	"PaperNotify/internal/models"
)

func TestDisabledTranslator(t *testing.T) {
	tr, err := New(nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if tr.Name() != "disabled" {
		t.Errorf("unexpected name: %s", tr.Name())
	}

	paper := models.Paper{
		Title:    "Some Paper",
		Abstract: "Short abstract.",
	}
	got := tr.Translate(context.Background(), paper)

	if got.TranslatedTitle != "Some Paper" {
		t.Errorf("title should stay original: %q", got.TranslatedTitle)
	}
	if !strings.HasPrefix(got.TranslatedSummary, "Short abstract.") {
		t.Errorf("summary should carry the abstract: %q", got.TranslatedSummary)
	}
	if !strings.Contains(got.TranslatedSummary, "翻訳機能は無効です") {
		t.Errorf("summary should carry the unavailable notice: %q", got.TranslatedSummary)
	}
	if got.KeyQA != unavailableQA {
		t.Errorf("unexpected qa: %q", got.KeyQA)
	}
}

func TestDisabledTranslatorTruncatesLongAbstract(t *testing.T) {
	long := strings.Repeat("あ", 1000)
	tr, _ := New(nil)

	got := tr.Translate(context.Background(), models.Paper{Title: "t", Abstract: long})

	head := strings.SplitN(got.TranslatedSummary, "\n", 2)[0]
	if want := strings.Repeat("あ", maxSummaryRunes) + "..."; head != want {
		t.Errorf("abstract not truncated to %d runes: len=%d", maxSummaryRunes, len([]rune(head)))
	}
}
