// internal/handlers/global_word_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_vocab_art/internal/model"
	"go_vocab_art/internal/service"
	"go_vocab_art/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// GlobalWordHandler はスコープなし（全体コレクション）の単語エンドポイント群です。
type GlobalWordHandler struct {
	service service.EnrichmentService
	logger  *slog.Logger
}

func NewGlobalWordHandler(s service.EnrichmentService, logger *slog.Logger) *GlobalWordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GlobalWordHandler{
		service: s,
		logger:  logger,
	}
}

// UploadWords は単語リストファイルを取り込み、画像生成ジョブを投入するハンドラ
func (h *GlobalWordHandler) UploadWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UploadWords"), slog.String("scope_type", "global"))

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "multipart形式のリクエストではありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "単語リストのファイルが指定されていません。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	words, err := webutil.ReadWordList(file)
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "ファイルの読み取りに失敗しました。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if len(words) == 0 {
		appErr := model.NewAppError("VALIDATION_ERROR", "ファイルに有効な単語がありません。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	style := model.PromptStyle(r.FormValue("prompt_style"))
	if style != "" && !style.Valid() {
		appErr := model.NewAppError("VALIDATION_ERROR", "プロンプトスタイルが不正です。", "prompt_style", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	summary, err := h.service.GenerateImages(r.Context(), model.ScopeTypeGlobal, model.GlobalScopeKey, words, style)
	if err != nil {
		logger.Error("Error generating images in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Global word upload processed", slog.Int("count", len(summary.Data)))
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// AssignImages はJSONで受けた単語リストに対して画像割り当てを行うハンドラ
func (h *GlobalWordHandler) AssignImages(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AssignImages"), slog.String("scope_type", "global"))

	var req model.AssignWordsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)

			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	summary, err := h.service.AssignImages(r.Context(), model.ScopeTypeGlobal, model.GlobalScopeKey, req.Words)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			appErr := model.NewAppError("NOT_FOUND", "単語コレクションが見つかりません。", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error assigning images in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Global image assignment processed", slog.Int("count", len(summary.Data)))
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// GetWords は全体コレクションのページング一覧を返すハンドラ（searchによる部分一致絞り込み付き）
func (h *GlobalWordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"), slog.String("scope_type", "global"))

	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 10)
	search := r.URL.Query().Get("search")

	result, err := h.service.GetScopedWords(r.Context(), model.ScopeTypeGlobal, model.GlobalScopeKey, page, limit, search)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// コレクション未作成は空の結果として返す
			webutil.RespondWithJSON(w, http.StatusOK, &model.PaginatedWords{
				Success:    true,
				ScopeKey:   model.GlobalScopeKey,
				Page:       page,
				TotalPages: 0,
				Words:      []model.WordMeaning{},
			})
			return
		}
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// DeleteWord は全体コレクションから単語を削除するハンドラ
func (h *GlobalWordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"), slog.String("scope_type", "global"))

	word := r.URL.Query().Get("word")
	if word == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", "wordは必須項目です。", "word", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteGlobalWord(r.Context(), word); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			appErr := model.NewAppError("NOT_FOUND", "指定された単語が見つかりません。", "word", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error deleting word in service", slog.Any("error", err), slog.String("word", word))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully", slog.String("word", word))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
