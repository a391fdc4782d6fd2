//go:generate mockery --name EnrichmentService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go_vocab_art/internal/middleware"
	"go_vocab_art/internal/model"
	"go_vocab_art/internal/repository"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PollingPolicy は画像生成完了待ちのポーリング設定です。
// 全フロー共通の1ポリシーとして設定から注入する。
type PollingPolicy struct {
	Attempts uint
	Interval time.Duration
}

// EnrichmentService は単語リストの取り込み・画像生成・画像割り当て・参照を提供します。
type EnrichmentService interface {
	GenerateImages(ctx context.Context, scopeType model.ScopeType, scopeKey string, words []string, style model.PromptStyle) (*model.GenerationSummary, error)
	AssignImages(ctx context.Context, scopeType model.ScopeType, scopeKey string, words []string) (*model.AssignmentSummary, error)
	GetScopedWords(ctx context.Context, scopeType model.ScopeType, scopeKey string, page, limit int, search string) (*model.PaginatedWords, error)
	DeleteGlobalWord(ctx context.Context, word string) error
}

type enrichmentService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	repo     repository.ScopeWordRepository
	provider WordDetailsProvider
	backend  ImageBackend
	store    ImageStore
	polling  PollingPolicy
}

func NewEnrichmentService(
	db *gorm.DB,
	repo repository.ScopeWordRepository,
	provider WordDetailsProvider,
	backend ImageBackend,
	store ImageStore,
	polling PollingPolicy,
) EnrichmentService {
	if polling.Attempts == 0 {
		polling.Attempts = 150
	}
	if polling.Interval <= 0 {
		polling.Interval = 4 * time.Second
	}
	return &enrichmentService{
		db:       db,
		repo:     repo,
		provider: provider,
		backend:  backend,
		store:    store,
		polling:  polling,
	}
}

// normalizeWords は trim + 小文字化 + 空要素除去を行います。
// dedupe が真なら初出順を保ったまま重複を除く。
func normalizeWords(words []string, dedupe bool) []string {
	cleaned := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if dedupe {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
		}
		cleaned = append(cleaned, w)
	}
	return cleaned
}

// ensureScope はスコープを検索し、無ければ作成します。
// globalスコープは予約キーの単一行で表現する。
func (s *enrichmentService) ensureScope(ctx context.Context, scopeType model.ScopeType, scopeKey string) (*model.ScopeDocument, error) {
	logger := middleware.GetLogger(ctx)

	scope, err := s.repo.FindScope(ctx, s.db, scopeType, scopeKey)
	if err == nil {
		return scope, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	logger.Info("Scope not found, creating new entry", "scope_type", string(scopeType), "scope_key", scopeKey)
	scope = &model.ScopeDocument{
		ScopeID:   uuid.New(),
		ScopeType: scopeType,
		ScopeKey:  scopeKey,
	}
	if err := s.repo.CreateScope(ctx, s.db, scope); err != nil {
		// 同時リクエストで先に作られた場合は引き直す
		if errors.Is(err, model.ErrConflict) {
			return s.repo.FindScope(ctx, s.db, scopeType, scopeKey)
		}
		return nil, err
	}
	return scope, nil
}

// GenerateImages は単語リストの取り込みと画像生成ジョブの投入を行います。
// 単語ごとに独立して処理し、失敗した単語はエラーエントリとしてバッチを継続する。
func (s *enrichmentService) GenerateImages(ctx context.Context, scopeType model.ScopeType, scopeKey string, words []string, style model.PromptStyle) (*model.GenerationSummary, error) {
	logger := middleware.GetLogger(ctx)

	if scopeType != model.ScopeTypeGlobal && scopeKey == "" {
		return nil, model.ErrInvalidInput
	}
	if scopeType == model.ScopeTypeGlobal {
		scopeKey = model.GlobalScopeKey
	}
	if !style.Valid() {
		style = model.PromptStylePositivePrompt
	}

	cleaned := normalizeWords(words, true)
	if len(cleaned) == 0 {
		return nil, model.ErrInvalidInput
	}

	scope, err := s.ensureScope(ctx, scopeType, scopeKey)
	if err != nil {
		logger.Error("Error ensuring scope", "error", err, "scope_key", scopeKey)
		return nil, model.ErrInternalServer
	}

	logger.Info("Starting image generation batch",
		"scope_type", string(scopeType),
		"scope_key", scopeKey,
		"word_count", len(cleaned),
		"prompt_style", string(style),
	)

	entries := make([]model.GenerationEntry, 0, len(cleaned))
	for _, term := range cleaned {
		entries = append(entries, s.generateOne(ctx, scope, term, style))
	}

	summary := &model.GenerationSummary{
		Success:  true,
		ScopeKey: scopeKey,
		Data:     entries,
	}
	if scopeType == model.ScopeTypeGlobal {
		summary.ScopeKey = ""
	}
	return summary, nil
}

// generateOne は1単語分の生成フェーズを処理します。
func (s *enrichmentService) generateOne(ctx context.Context, scope *model.ScopeDocument, term string, style model.PromptStyle) model.GenerationEntry {
	logger := middleware.GetLogger(ctx)

	existing, err := s.repo.FindWord(ctx, s.db, scope.ScopeID, term)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Error looking up word", "error", err, "word", term)
		return model.GenerationEntry{Term: term, Error: "Failed to look up word."}
	}

	// 既存かつ画像割り当て済み: 外部呼び出しなしでそのまま返す
	if existing != nil && existing.ImageURL != "" {
		return model.GenerationEntry{Term: term, Word: existing.Word, PromptID: existing.PromptID}
	}

	// 既存だが画像未割り当て: プロンプトを再投入してジョブハンドルを差し替える
	if existing != nil {
		promptID, err := s.backend.SubmitPrompt(ctx, existing.PromptText(style))
		if err != nil {
			logger.Error("Error submitting prompt for existing word", "error", err, "word", term)
			return model.GenerationEntry{Term: term, Error: "Failed to submit image prompt."}
		}
		updates := map[string]interface{}{"prompt_id": promptID}
		if err := s.repo.UpdateWordFields(ctx, s.db, scope.ScopeID, term, updates); err != nil {
			logger.Error("Error updating prompt ID", "error", err, "word", term)
			return model.GenerationEntry{Term: term, Error: "Failed to save prompt ID."}
		}
		return model.GenerationEntry{Term: term, Word: existing.Word, PromptID: promptID}
	}

	// 新規単語: 辞書情報を取得してからジョブ投入・保存
	details, err := s.provider.FetchDetails(ctx, term, scope.ScopeType, scope.ScopeKey)
	if err != nil {
		if errors.Is(err, model.ErrUpstreamParse) && scope.ScopeType != model.ScopeTypeGlobal {
			// スコープ付きフローではパース失敗を空レコードに格下げして処理を続ける
			logger.Warn("Word details could not be parsed, falling back to empty record", "word", term)
			details = model.EmptyWordDetails(term)
		} else {
			logger.Error("Error fetching word details", "error", err, "word", term)
			return model.GenerationEntry{Term: term, Error: "Word details could not be fetched."}
		}
	}

	promptID, err := s.backend.SubmitPrompt(ctx, details.PromptText(style))
	if err != nil {
		logger.Error("Error submitting prompt for new word", "error", err, "word", term)
		return model.GenerationEntry{Term: term, Error: "Failed to submit image prompt."}
	}

	record := model.NewWordRecord(scope.ScopeID, term, details, promptID)
	if err := s.repo.CreateWord(ctx, s.db, record); err != nil {
		logger.Error("Error creating word record", "error", err, "word", term)
		return model.GenerationEntry{Term: term, Error: "Failed to save word record."}
	}
	return model.GenerationEntry{Term: term, Word: record.Word, PromptID: promptID}
}

// AssignImages は生成済み画像を取得してS3に保存し、単語レコードにURLを割り当てます。
// スコープが存在しない場合は ErrNotFound でリクエスト全体を失敗させる。
func (s *enrichmentService) AssignImages(ctx context.Context, scopeType model.ScopeType, scopeKey string, words []string) (*model.AssignmentSummary, error) {
	logger := middleware.GetLogger(ctx)

	if scopeType != model.ScopeTypeGlobal && scopeKey == "" {
		return nil, model.ErrInvalidInput
	}
	if scopeType == model.ScopeTypeGlobal {
		scopeKey = model.GlobalScopeKey
	}

	// globalフローは入力順をそのまま尊重する（重複除去なし）
	cleaned := normalizeWords(words, scopeType != model.ScopeTypeGlobal)
	if len(cleaned) == 0 {
		return nil, model.ErrInvalidInput
	}

	scope, err := s.repo.FindScope(ctx, s.db, scopeType, scopeKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding scope for assignment", "error", err, "scope_key", scopeKey)
		return nil, model.ErrInternalServer
	}

	logger.Info("Starting image assignment batch",
		"scope_type", string(scopeType),
		"scope_key", scopeKey,
		"word_count", len(cleaned),
	)

	entries := make([]model.AssignmentEntry, 0, len(cleaned))
	for _, word := range cleaned {
		entries = append(entries, s.assignOne(ctx, scope, word))
	}

	summary := &model.AssignmentSummary{
		Success:  true,
		ScopeKey: scopeKey,
		Data:     entries,
	}
	if scopeType == model.ScopeTypeGlobal {
		summary.ScopeKey = ""
	}
	return summary, nil
}

// assignOne は1単語分の割り当てフェーズを処理します。
func (s *enrichmentService) assignOne(ctx context.Context, scope *model.ScopeDocument, word string) model.AssignmentEntry {
	logger := middleware.GetLogger(ctx)

	record, err := s.repo.FindWord(ctx, s.db, scope.ScopeID, word)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AssignmentEntry{Word: word, Status: model.AssignStatusSkipped, Reason: "Image already exists"}
		}
		logger.Error("Error looking up word for assignment", "error", err, "word", word)
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusError, Reason: "Failed to look up word."}
	}

	if record.ImageURL != "" {
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusSkipped, Reason: "Image already exists"}
	}
	if record.PromptID == "" {
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusSkipped, Reason: "promptId not found"}
	}

	filename, err := s.waitForOutput(ctx, record.PromptID)
	if err != nil {
		if errors.Is(err, model.ErrNotReady) {
			return model.AssignmentEntry{Word: word, Status: model.AssignStatusPending, Reason: "Image not ready"}
		}
		logger.Error("Error polling image output", "error", err, "word", word, "prompt_id", record.PromptID)
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusError, Reason: "Failed to poll image output."}
	}

	data, err := s.backend.FetchImage(ctx, filename)
	if err != nil {
		logger.Error("Error fetching rendered image", "error", err, "word", word, "filename", filename)
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusFailed, Reason: "Failed to retrieve image"}
	}

	key := storageKey(scope, word)
	imageURL, err := s.store.Store(ctx, key, data)
	if err != nil {
		logger.Error("Error storing image", "error", err, "word", word, "key", key)
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusFailed, Reason: "Failed to store image"}
	}

	updates := map[string]interface{}{"image_url": imageURL}
	if err := s.repo.UpdateWordFields(ctx, s.db, scope.ScopeID, word, updates); err != nil {
		logger.Error("Error saving image URL", "error", err, "word", word)
		return model.AssignmentEntry{Word: word, Status: model.AssignStatusError, Reason: "Failed to save image URL."}
	}

	return model.AssignmentEntry{Word: word, Status: model.AssignStatusSuccess, ImageURL: imageURL}
}

// storageKey はS3オブジェクトキーを導出します。
// スコープ付きは "{scopeKey}-{word}"、globalは空白をアンダースコアに置換した "{word}.png"。
func storageKey(scope *model.ScopeDocument, word string) string {
	if scope.ScopeType == model.ScopeTypeGlobal {
		return strings.ReplaceAll(strings.ToLower(word), " ", "_") + ".png"
	}
	return scope.ScopeKey + "-" + word
}

// waitForOutput は固定間隔のポーリングで出力ファイル名を待ちます。
// 試行回数を使い切った場合は ErrNotReady（保留。失敗ではない）。
func (s *enrichmentService) waitForOutput(ctx context.Context, promptID string) (string, error) {
	var filename string
	err := retry.Do(
		func() error {
			var err error
			filename, err = s.backend.FetchOutput(ctx, promptID)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.polling.Attempts),
		retry.Delay(s.polling.Interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, model.ErrNotReady) || errors.Is(err, context.DeadlineExceeded) {
			return "", model.ErrNotReady
		}
		return "", fmt.Errorf("enrichmentService.waitForOutput: %w", err)
	}
	return filename, nil
}

// GetScopedWords はスコープ内の単語を登録順でページングして返します。
func (s *enrichmentService) GetScopedWords(ctx context.Context, scopeType model.ScopeType, scopeKey string, page, limit int, search string) (*model.PaginatedWords, error) {
	logger := middleware.GetLogger(ctx)

	if scopeType != model.ScopeTypeGlobal && scopeKey == "" {
		return nil, model.ErrInvalidInput
	}
	if scopeType == model.ScopeTypeGlobal {
		scopeKey = model.GlobalScopeKey
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	scope, err := s.repo.FindScope(ctx, s.db, scopeType, scopeKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding scope for listing", "error", err, "scope_key", scopeKey)
		return nil, model.ErrInternalServer
	}

	total, err := s.repo.CountWords(ctx, s.db, scope.ScopeID, search)
	if err != nil {
		logger.Error("Error counting words", "error", err, "scope_key", scopeKey)
		return nil, model.ErrInternalServer
	}

	offset := (page - 1) * limit
	records, err := s.repo.ListWords(ctx, s.db, scope.ScopeID, offset, limit, search)
	if err != nil {
		logger.Error("Error listing words", "error", err, "scope_key", scopeKey)
		return nil, model.ErrInternalServer
	}

	wordMeanings := make([]model.WordMeaning, 0, len(records))
	for _, r := range records {
		wordMeanings = append(wordMeanings, model.WordMeaning{Word: r.Word, Meaning: r.Meaning})
	}

	return &model.PaginatedWords{
		Success:    true,
		ScopeKey:   scope.ScopeKey,
		TotalWords: total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Words:      wordMeanings,
	}, nil
}

// DeleteGlobalWord はglobalコレクションから単語を論理削除します。
func (s *enrichmentService) DeleteGlobalWord(ctx context.Context, word string) error {
	logger := middleware.GetLogger(ctx)

	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return model.ErrInvalidInput
	}

	scope, err := s.repo.FindScope(ctx, s.db, model.ScopeTypeGlobal, model.GlobalScopeKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		logger.Error("Error finding global scope for deletion", "error", err)
		return model.ErrInternalServer
	}

	if err := s.repo.DeleteWord(ctx, s.db, scope.ScopeID, word); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		logger.Error("Error deleting global word", "error", err, "word", word)
		return model.ErrInternalServer
	}
	return nil
}
