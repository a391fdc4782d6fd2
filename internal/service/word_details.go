//go:generate mockery --name WordDetailsProvider --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"strings"

	"go_vocab_art/internal/model"
)

// WordDetailsProvider は単語の辞書情報（意味・例文・画像プロンプト等）を外部から取得します。
// レスポンスがJSONとしてパースできない場合は model.ErrUpstreamParse を返す。
type WordDetailsProvider interface {
	FetchDetails(ctx context.Context, word string, scopeType model.ScopeType, scopeKey string) (*model.WordDetails, error)
}

// buildContextSentence はスコープ種別に応じた文脈説明文を組み立てます。
// globalスコープは文脈なし（空文字）。
func buildContextSentence(word string, scopeType model.ScopeType, scopeKey string) string {
	switch scopeType {
	case model.ScopeTypeGrade:
		if strings.HasPrefix(strings.ToLower(scopeKey), "grade") {
			return fmt.Sprintf("The word '%s' is used in the learning context of '%s', which refers to a school grade level.", word, scopeKey)
		}
		return fmt.Sprintf("The word '%s' is used in the context of the grade '%s'.", word, scopeKey)
	case model.ScopeTypeSubject:
		subject := scopeKey
		switch strings.ToLower(scopeKey) {
		case "english":
			subject = "English literature"
		case "political":
			subject = "Political science"
		}
		return fmt.Sprintf("The word '%s' is used in the context of the subject '%s'.", word, subject)
	case model.ScopeTypeExam:
		return fmt.Sprintf("The word '%s' is used in the context of '%s'.", word, scopeKey)
	default:
		return ""
	}
}

// buildWordDetailsPrompt はLLMへ送る辞書情報リクエストのプロンプト全文を組み立てます。
// JSONキー名は model.WordDetails のタグと厳密に一致させること。
func buildWordDetailsPrompt(word string, scopeType model.ScopeType, scopeKey string) string {
	var b strings.Builder

	if sentence := buildContextSentence(word, scopeType, scopeKey); sentence != "" {
		b.WriteString(sentence)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Provide a detailed dictionary-style breakdown of the word: %q in this context.\n\n", word)
	b.WriteString("Format your response as a valid JSON object with these exact keys:\n\n")
	b.WriteString(`{
  "word": string,
  "partOfSpeech": string,
  "pronunciation": string,
  "wordForms": string[],
  "meaning": string,
  "exampleSentence": string,
  "synonyms": string[],
  "antonyms": string[],
  "memoryTrick": string,
  "origin": string,
  "positivePrompt": string,
  "negativePrompt": string
}
`)
	b.WriteString(`
Instructions for "positivePrompt":
- Write a vivid, photorealistic image description that captures the core meaning and essence of the word.
- Make it highly visual, detailed, and rooted in the subject or grade context.
- Describe the scene, objects, mood, setting, lighting, and action.
- Make it easy for an AI model to generate a meaningful image directly from the prompt.

For example, if the word is "eruption", the positivePrompt could be:
"A powerful volcanic eruption with lava spewing into the sky, dark smoke clouds, red-hot molten rocks, and villagers watching from a safe distance, dramatic lighting, National Geographic style."

Format strictly as valid JSON with double quotes and all fields present.
`)
	return b.String()
}
