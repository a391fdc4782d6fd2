// internal/model/result.go
package model

// 割り当てフェーズの単語ごとのステータス
const (
	AssignStatusSuccess = "success"
	AssignStatusSkipped = "skipped"
	AssignStatusPending = "pending"
	AssignStatusFailed  = "failed"
	AssignStatusError   = "error"
)

// GenerationEntry は生成フェーズの単語ごとの結果です。
// Error が入っている場合、その単語はスキップされた（バッチは継続）。
type GenerationEntry struct {
	Term     string `json:"term"`
	Word     string `json:"word,omitempty"`
	PromptID string `json:"prompt_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GenerationSummary は生成フェーズ全体の結果です
type GenerationSummary struct {
	Success  bool              `json:"success"`
	ScopeKey string            `json:"scope_key,omitempty"`
	Data     []GenerationEntry `json:"data"`
}

// AssignmentEntry は割り当てフェーズの単語ごとの結果です
type AssignmentEntry struct {
	Word     string `json:"word"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// AssignmentSummary は割り当てフェーズ全体の結果です
type AssignmentSummary struct {
	Success  bool              `json:"success"`
	ScopeKey string            `json:"scope_key,omitempty"`
	Data     []AssignmentEntry `json:"data"`
}

// WordMeaning はページング取得で返す簡略表現（単語と意味のみ）です
type WordMeaning struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// PaginatedWords はスコープ単語のページング取得結果です
type PaginatedWords struct {
	Success    bool          `json:"success"`
	ScopeKey   string        `json:"scope_key"`
	TotalWords int64         `json:"total_words"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Words      []WordMeaning `json:"words"`
}

// AssignWordsRequest は global 単語への画像割り当てAPIのリクエストDTO
type AssignWordsRequest struct {
	Words []string `json:"words" validate:"required,min=1"`
}
