// internal/handlers/scope_word_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
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

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// multipartUpload はテスト用のmultipartリクエストボディを組み立てます。
// fileContent が空文字列のときは file パートを付けない。
func multipartUpload(t *testing.T, fields map[string]string, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileContent != "" {
		part, err := writer.CreateFormFile("file", "words.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newScopeRouter(svc *mocks.EnrichmentService) http.Handler {
	h := handlers.NewScopeWordHandler(svc, model.ScopeTypeExam, "exam", testLogger)
	r := chi.NewRouter()
	r.Post("/api/v1/exams/upload", h.UploadWords)
	r.Post("/api/v1/exams/assign", h.AssignImages)
	r.Get("/api/v1/exams", h.GetWords)
	return r
}

func TestScopeWordHandler_UploadWords(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		fileContent    string
		setupMock      func(svc *mocks.EnrichmentService)
		expectedStatus int
	}{
		{
			name:        "正常系: 単語リストをアップロードできる",
			fields:      map[string]string{"exam": "SAT", "prompt_style": "meaning"},
			fileContent: "apple\nbanana\n",
			setupMock: func(svc *mocks.EnrichmentService) {
				svc.On("GenerateImages", mock.Anything, model.ScopeTypeExam, "SAT", []string{"apple", "banana"}, model.PromptStyleMeaning).
					Return(&model.GenerationSummary{Success: true, ScopeKey: "SAT", Data: []model.GenerationEntry{}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: スコープキーがない",
			fields:         map[string]string{},
			fileContent:    "apple\n",
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: ファイルがない",
			fields:         map[string]string{"exam": "SAT"},
			fileContent:    "",
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: ファイルに有効な単語がない",
			fields:         map[string]string{"exam": "SAT"},
			fileContent:    "\n   \n",
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: プロンプトスタイルが不正",
			fields:         map[string]string{"exam": "SAT", "prompt_style": "haiku"},
			fileContent:    "apple\n",
			setupMock:      func(svc *mocks.EnrichmentService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.EnrichmentService)
			tt.setupMock(svc)
			router := newScopeRouter(svc)

			body, contentType := multipartUpload(t, tt.fields, tt.fileContent)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/exams/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestScopeWordHandler_AssignImages(t *testing.T) {
	t.Run("正常系: 割り当て結果を返す", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("AssignImages", mock.Anything, model.ScopeTypeExam, "SAT", []string{"apple"}).
			Return(&model.AssignmentSummary{
				Success:  true,
				ScopeKey: "SAT",
				Data:     []model.AssignmentEntry{{Word: "apple", Status: model.AssignStatusSuccess, ImageURL: "https://example.com/a.png"}},
			}, nil).Once()
		router := newScopeRouter(svc)

		body, contentType := multipartUpload(t, map[string]string{"exam": "SAT"}, "apple\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/exams/assign", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp model.AssignmentSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, model.AssignStatusSuccess, resp.Data[0].Status)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: スコープが存在しない場合は404", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("AssignImages", mock.Anything, model.ScopeTypeExam, "TOEIC", []string{"apple"}).
			Return(nil, model.ErrNotFound).Once()
		router := newScopeRouter(svc)

		body, contentType := multipartUpload(t, map[string]string{"exam": "TOEIC"}, "apple\n")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/exams/assign", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestScopeWordHandler_GetWords(t *testing.T) {
	t.Run("正常系: ページング結果を返す", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GetScopedWords", mock.Anything, model.ScopeTypeExam, "SAT", 2, 5, "").
			Return(&model.PaginatedWords{
				Success:    true,
				ScopeKey:   "SAT",
				TotalWords: 15,
				Page:       2,
				TotalPages: 3,
				Words:      []model.WordMeaning{{Word: "apple", Meaning: "a fruit"}},
			}, nil).Once()
		router := newScopeRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exams?exam=SAT&page=2&limit=5", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp model.PaginatedWords
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(15), resp.TotalWords)
		assert.Equal(t, 3, resp.TotalPages)
		svc.AssertExpectations(t)
	})

	t.Run("正常系: 不正なページ番号はデフォルトに倒す", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GetScopedWords", mock.Anything, model.ScopeTypeExam, "SAT", 1, 10, "").
			Return(&model.PaginatedWords{Success: true, ScopeKey: "SAT", Words: []model.WordMeaning{}}, nil).Once()
		router := newScopeRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exams?exam=SAT&page=abc", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("異常系: スコープキーがない", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		router := newScopeRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exams", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetScopedWords", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: スコープが存在しない場合は404", func(t *testing.T) {
		svc := new(mocks.EnrichmentService)
		svc.On("GetScopedWords", mock.Anything, model.ScopeTypeExam, "TOEIC", 1, 10, "").
			Return(nil, model.ErrNotFound).Once()
		router := newScopeRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exams?exam=TOEIC", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})
}
