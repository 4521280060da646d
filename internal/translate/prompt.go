package translate

import (
	"fmt"

	"PaperNotify/internal/models"
)

// 三个小节的标题是解析器依赖的微协议，改动任何一个字符都会让
// ParseResponse 静默退回 fallback 文本。改这里必须同步改 parse.go。
const (
	sectionTitle   = "1. 日本語タイトル:"
	sectionSummary = "2. 日本語要約:"
	sectionQA      = "3. 重要なQ&A:"
)

const systemInstruction = "あなたは学術論文の翻訳・要約を行うアシスタントです。指示されたフォーマットを厳密に守って出力してください。"

// BuildPrompt 生成翻译请求的 prompt，三个小节的结构与解析器一一对应。
func BuildPrompt(paper models.Paper) string {
	return fmt.Sprintf(`以下の学術論文の情報を日本語に翻訳し、要約してください。

論文タイトル: %s
著者: %s
出版日: %s

アブストラクト:
%s

以下の3つの部分に分けて出力してください:
%s
（ここに日本語タイトルを記入）

%s
（ここに400-600文字の日本語要約を記入）

%s
Q1: （重要な質問1）
A1: （その回答）
Q2: （重要な質問2）
A2: （その回答）
（3-5個のQ&Aペアを作成してください）
`, paper.Title, paper.AuthorsCSV(), paper.Published, paper.Abstract,
		sectionTitle, sectionSummary, sectionQA)
}
