// internal/webutil/webutil_test.go
package webutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_vocab_art/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringFile は multipart.File の最小実装です
type stringFile struct {
	*strings.Reader
}

func (f *stringFile) Close() error { return nil }

func newStringFile(s string) *stringFile {
	return &stringFile{strings.NewReader(s)}
}

func TestReadWordList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "正常系: 1行1単語で読み取る",
			content: "apple\nbanana\ncherry\n",
			want:    []string{"apple", "banana", "cherry"},
		},
		{
			name:    "正常系: 空行と前後の空白を除去する",
			content: "  apple  \n\n\tbanana\n   \n",
			want:    []string{"apple", "banana"},
		},
		{
			name:    "正常系: CRLF改行も扱える",
			content: "apple\r\nbanana\r\n",
			want:    []string{"apple", "banana"},
		},
		{
			name:    "正常系: 空ファイル",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWordList(newStringFile(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFoundは404", model.ErrNotFound, http.StatusNotFound},
		{"InvalidInputは400", model.ErrInvalidInput, http.StatusBadRequest},
		{"Conflictは409", model.ErrConflict, http.StatusConflict},
		{"ラップされたNotFoundも404", fmt.Errorf("lookup: %w", model.ErrNotFound), http.StatusNotFound},
		{"AppErrorは内包エラーで判定", model.NewAppError("NOT_FOUND", "見つかりません", "", model.ErrNotFound), http.StatusNotFound},
		{"未知のエラーは500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("AppErrorは詳細をそのまま返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		appErr := model.NewAppError("VALIDATION_ERROR", "単語は必須項目です。", "word", model.ErrInvalidInput)

		HandleError(rec, logger, appErr)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, rec.Body.String(), "単語は必須項目です。")
	})

	t.Run("未知のエラーは汎用メッセージの500", func(t *testing.T) {
		rec := httptest.NewRecorder()

		HandleError(rec, logger, errors.New("unexpected"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "INTERNAL_SERVER_ERROR")
		assert.NotContains(t, rec.Body.String(), "unexpected")
	})
}
