// internal/handlers/scope_word_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_vocab_art/internal/model"
	"go_vocab_art/internal/service"
	"go_vocab_art/internal/webutil"
)

// ScopeWordHandler はスコープ付き単語リスト（試験・学年・教科）のエンドポイント群です。
// 1つのハンドラをスコープ種別とフォームフィールド名でパラメータ化して3系統に使い回す。
type ScopeWordHandler struct {
	service   service.EnrichmentService
	scopeType model.ScopeType
	fieldName string // "exam" / "grade" / "subject"
	logger    *slog.Logger
}

func NewScopeWordHandler(s service.EnrichmentService, scopeType model.ScopeType, fieldName string, logger *slog.Logger) *ScopeWordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScopeWordHandler{
		service:   s,
		scopeType: scopeType,
		fieldName: fieldName,
		logger:    logger,
	}
}

// parseUpload はmultipartリクエストからスコープキーと単語リストを取り出します。
func (h *ScopeWordHandler) parseUpload(r *http.Request) (string, []string, *model.AppError) {
	// ファイル本体はストリームで読むため、メモリ上限は控えめで良い
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return "", nil, model.NewAppError("INVALID_REQUEST_BODY", "multipart形式のリクエストではありません。", "", model.ErrInvalidInput)
	}

	scopeKey := r.FormValue(h.fieldName)
	if scopeKey == "" {
		return "", nil, model.NewAppError("VALIDATION_ERROR", h.fieldName+"は必須項目です。", h.fieldName, model.ErrInvalidInput)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return "", nil, model.NewAppError("VALIDATION_ERROR", "単語リストのファイルが指定されていません。", "file", model.ErrInvalidInput)
	}

	words, err := webutil.ReadWordList(file)
	if err != nil {
		return "", nil, model.NewAppError("INVALID_REQUEST_BODY", "ファイルの読み取りに失敗しました。", "file", model.ErrInvalidInput)
	}
	if len(words) == 0 {
		return "", nil, model.NewAppError("VALIDATION_ERROR", "ファイルに有効な単語がありません。", "file", model.ErrInvalidInput)
	}
	return scopeKey, words, nil
}

// UploadWords は単語リストを取り込み、画像生成ジョブを投入するハンドラ
func (h *ScopeWordHandler) UploadWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UploadWords"), slog.String("scope_type", string(h.scopeType)))

	scopeKey, words, appErr := h.parseUpload(r)
	if appErr != nil {
		logger.Warn("Invalid upload request", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	style := model.PromptStyle(r.FormValue("prompt_style"))
	if style != "" && !style.Valid() {
		appErr := model.NewAppError("VALIDATION_ERROR", "プロンプトスタイルが不正です。", "prompt_style", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	summary, err := h.service.GenerateImages(r.Context(), h.scopeType, scopeKey, words, style)
	if err != nil {
		logger.Error("Error generating images in service", slog.Any("error", err), slog.String("scope_key", scopeKey))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word upload processed", slog.String("scope_key", scopeKey), slog.Int("count", len(summary.Data)))
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// AssignImages は生成済み画像の取得とS3保存・URL割り当てを行うハンドラ
func (h *ScopeWordHandler) AssignImages(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AssignImages"), slog.String("scope_type", string(h.scopeType)))

	scopeKey, words, appErr := h.parseUpload(r)
	if appErr != nil {
		logger.Warn("Invalid assignment request", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	summary, err := h.service.AssignImages(r.Context(), h.scopeType, scopeKey, words)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			appErr := model.NewAppError("NOT_FOUND", "指定されたスコープが見つかりません。", h.fieldName, model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error assigning images in service", slog.Any("error", err), slog.String("scope_key", scopeKey))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Image assignment processed", slog.String("scope_key", scopeKey), slog.Int("count", len(summary.Data)))
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// GetWords は単語と意味のページング一覧を返すハンドラ
func (h *ScopeWordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"), slog.String("scope_type", string(h.scopeType)))

	scopeKey := r.URL.Query().Get(h.fieldName)
	if scopeKey == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", h.fieldName+"は必須項目です。", h.fieldName, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 10)

	result, err := h.service.GetScopedWords(r.Context(), h.scopeType, scopeKey, page, limit, "")
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			appErr := model.NewAppError("NOT_FOUND", "指定されたスコープが見つかりません。", h.fieldName, model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error listing words in service", slog.Any("error", err), slog.String("scope_key", scopeKey))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// parseIntQuery はクエリパラメータを整数として読み、不正値はデフォルトに倒します。
func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
