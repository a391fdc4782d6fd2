// internal/model/word.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList は語形変化・類義語などの文字列リストをJSONカラムとして保存する型です。
// postgres / sqlite どちらでも動くように Valuer / Scanner を実装する。
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("StringList.Value: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("StringList.Scan: unsupported source type")
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// WordRecord はスコープ内の1単語と、その辞書情報・画像生成の進行状態を表します。
// word は小文字に正規化して保存し、同一スコープ内で（大文字小文字を無視して）一意。
// ImageURL が入った時点でその単語のパイプラインは完了扱いとなり、再処理しない。
type WordRecord struct {
	WordID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	ScopeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Word    string    `gorm:"not null;index" json:"word"`

	PartOfSpeech    string     `json:"part_of_speech"`
	Pronunciation   string     `json:"pronunciation"`
	WordForms       StringList `gorm:"type:text" json:"word_forms"`
	Meaning         string     `json:"meaning"`
	ExampleSentence string     `json:"example_sentence"`
	Synonyms        StringList `gorm:"type:text" json:"synonyms"`
	Antonyms        StringList `gorm:"type:text" json:"antonyms"`
	MemoryTrick     string     `json:"memory_trick"`
	Origin          string     `json:"origin"`

	PositivePrompt string `json:"positive_prompt"`
	NegativePrompt string `json:"negative_prompt"`

	// PromptID は画像生成ジョブ投入後に入るジョブハンドル。
	// PromptID あり・ImageURL なし = 生成中（割り当てフェーズで再開可能）
	PromptID string `json:"prompt_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WordRecord) TableName() string {
	return "word_records"
}

// PromptStyle は画像生成プロンプトとして使う辞書フィールドの選択子です
type PromptStyle string

const (
	PromptStyleMeaning         PromptStyle = "meaning"
	PromptStyleExampleSentence PromptStyle = "exampleSentence"
	PromptStylePositivePrompt  PromptStyle = "positivePrompt"
)

// Valid は既知のプロンプトスタイルかどうかを返します
func (s PromptStyle) Valid() bool {
	switch s {
	case PromptStyleMeaning, PromptStyleExampleSentence, PromptStylePositivePrompt:
		return true
	}
	return false
}

// PromptText はスタイルで選択されたフィールドのテキストを返します。
// 選択フィールドが空の場合は positivePrompt にフォールバックする。
func (w *WordRecord) PromptText(style PromptStyle) string {
	var text string
	switch style {
	case PromptStyleMeaning:
		text = w.Meaning
	case PromptStyleExampleSentence:
		text = w.ExampleSentence
	default:
		text = w.PositivePrompt
	}
	if text == "" {
		text = w.PositivePrompt
	}
	return text
}

// WordDetails はLLMから取得する辞書情報のレスポンス契約です。
// キー名はプロンプトで指示するJSONキーと厳密に一致させること。
type WordDetails struct {
	Word            string   `json:"word"`
	PartOfSpeech    string   `json:"partOfSpeech"`
	Pronunciation   string   `json:"pronunciation"`
	WordForms       []string `json:"wordForms"`
	Meaning         string   `json:"meaning"`
	ExampleSentence string   `json:"exampleSentence"`
	Synonyms        []string `json:"synonyms"`
	Antonyms        []string `json:"antonyms"`
	MemoryTrick     string   `json:"memoryTrick"`
	Origin          string   `json:"origin"`
	PositivePrompt  string   `json:"positivePrompt"`
	NegativePrompt  string   `json:"negativePrompt"`
}

// EmptyWordDetails はパース失敗時のフォールバック（全フィールド空）を返します
func EmptyWordDetails(word string) *WordDetails {
	return &WordDetails{
		Word:      word,
		WordForms: []string{},
		Synonyms:  []string{},
		Antonyms:  []string{},
	}
}

// PromptText はスタイルで選択されたフィールドのテキストを返します（フォールバック付き）
func (d *WordDetails) PromptText(style PromptStyle) string {
	var text string
	switch style {
	case PromptStyleMeaning:
		text = d.Meaning
	case PromptStyleExampleSentence:
		text = d.ExampleSentence
	default:
		text = d.PositivePrompt
	}
	if text == "" {
		text = d.PositivePrompt
	}
	return text
}

// NewWordRecord はLLMの辞書情報から永続化用レコードを組み立てます
func NewWordRecord(scopeID uuid.UUID, word string, details *WordDetails, promptID string) *WordRecord {
	return &WordRecord{
		WordID:          uuid.New(),
		ScopeID:         scopeID,
		Word:            word,
		PartOfSpeech:    details.PartOfSpeech,
		Pronunciation:   details.Pronunciation,
		WordForms:       StringList(details.WordForms),
		Meaning:         details.Meaning,
		ExampleSentence: details.ExampleSentence,
		Synonyms:        StringList(details.Synonyms),
		Antonyms:        StringList(details.Antonyms),
		MemoryTrick:     details.MemoryTrick,
		Origin:          details.Origin,
		PositivePrompt:  details.PositivePrompt,
		NegativePrompt:  details.NegativePrompt,
		PromptID:        promptID,
	}
}
