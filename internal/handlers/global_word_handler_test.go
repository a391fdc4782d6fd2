// internal/handlers/global_word_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_vocab_art/internal/handlers"
	"go_vocab_art/internal/model"
	"go_vocab_art/internal/service/mocks"
)

func newGlobalRouter(svc *mocks.EnrichmentService) http.Handler {
	h := handlers.NewGlobalWordHandler(svc, testLogger)
	r := chi.NewRouter()
	r.Post("/api/v1/words/upload", h.UploadWords)
	r.Post("/api/v1/words/images", h.AssignImages)
	r.Get("/api/v1/words", h.GetWords)
	r.Delete("/api/v1/words", h.DeleteWord)
	return r
}

func TestGlobalWordHandler_UploadWords(t *testing.T) {
	t.Run("正常系: スコープフィールドなしでアップロードできる", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GenerateImages", mock.Anything, model.ScopeTypeGlobal, model.GlobalScopeKey, []string{"apple", "banana"}, model.PromptStyle("")).
			Return(&model.GenerationSummary{Success: true, Data: []model.GenerationEntry{}}, nil).Once()
		router := newGlobalRouter(svc)

		body, contentType := multipartUpload(t, nil, "apple\nbanana\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/words/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: ファイルがない", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		router := newGlobalRouter(svc)

		body, contentType := multipartUpload(t, map[string]string{"prompt_style": "meaning"}, "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/words/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GenerateImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGlobalWordHandler_AssignImages(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(svc *mocks.EnrichmentService)
		expectedStatus int
	}{
		{
			name: "正常系: JSONの単語リストで割り当てを実行する",
			body: `{"words":["apple","banana"]}`,
			setupMock: func(svc *mocks.EnrichmentService) {
				svc.On("AssignImages", mock.Anything, model.ScopeTypeGlobal, model.GlobalScopeKey, []string{"apple", "banana"}).
					Return(&model.AssignmentSummary{Success: true, Data: []model.AssignmentEntry{}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 単語リストが空",
			body:           `{"words":[]}`,
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: 不正なJSON",
			body:           `{"words":`,
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: 未知のフィールド",
			body:           `{"terms":["apple"]}`,
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.EnrichmentService)
			tt.setupMock(svc)
			router := newGlobalRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/words/images", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGlobalWordHandler_GetWords(t *testing.T) {
	t.Run("正常系: searchパラメータが透過される", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GetScopedWords", mock.Anything, model.ScopeTypeGlobal, model.GlobalScopeKey, 1, 10, "app").
			Return(&model.PaginatedWords{
				Success:  true,
				ScopeKey: model.GlobalScopeKey,
				Words:    []model.WordMeaning{{Word: "apple", Meaning: "a fruit"}},
			}, nil).Once()
		router := newGlobalRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/words?search=app", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("正常系: コレクション未作成でも空の結果を返す", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GetScopedWords", mock.Anything, model.ScopeTypeGlobal, model.GlobalScopeKey, 1, 10, "").
			Return(nil, model.ErrNotFound).Once()
		router := newGlobalRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/words", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp model.PaginatedWords
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Words)
		svc.AssertExpectations(t)
	})
}

func TestGlobalWordHandler_DeleteWord(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(svc *mocks.EnrichmentService)
		expectedStatus int
	}{
		{
			name:  "正常系: 単語を削除できる",
			query: "?word=apple",
			setupMock: func(svc *mocks.EnrichmentService) {
				svc.On("DeleteGlobalWord", mock.Anything, "apple").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: wordパラメータがない",
			query:          "",
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "異常系: 存在しない単語",
			query: "?word=ghost",
			setupMock: func(svc *mocks.EnrichmentService) {
				svc.On("DeleteGlobalWord", mock.Anything, "ghost").Return(model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.EnrichmentService)
			tt.setupMock(svc)
			router := newGlobalRouter(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/words"+tt.query, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
