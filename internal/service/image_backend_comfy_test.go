// internal/service/image_backend_comfy_test.go
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_vocab_art/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComfyBackend_SubmitPrompt(t *testing.T) {
	t.Run("正常系: ワークフローを投入してprompt_idを得る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/prompt", r.URL.Path)

			var payload struct {
				Prompt   map[string]json.RawMessage `json:"prompt"`
				ClientID string                     `json:"client_id"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.NotEmpty(t, payload.ClientID)
			// 出力ノードがワークフローに含まれていること
			assert.Contains(t, payload.Prompt, "9")

			json.NewEncoder(w).Encode(map[string]string{"prompt_id": "abc-123"})
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		promptID, err := backend.SubmitPrompt(context.Background(), "a shiny red apple")

		require.NoError(t, err)
		assert.Equal(t, "abc-123", promptID)
	})

	t.Run("異常系: サーバエラー", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		_, err := backend.SubmitPrompt(context.Background(), "text")

		assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
	})
}

func TestComfyBackend_FetchOutput(t *testing.T) {
	t.Run("正常系: 出力ノードからファイル名を得る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/history/abc-123", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"abc-123": map[string]interface{}{
					"outputs": map[string]interface{}{
						"9": map[string]interface{}{
							"images": []map[string]string{
								{"filename": "vocab_00001.png", "subfolder": "", "type": "output"},
							},
						},
					},
				},
			})
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		filename, err := backend.FetchOutput(context.Background(), "abc-123")

		require.NoError(t, err)
		assert.Equal(t, "vocab_00001.png", filename)
	})

	t.Run("正常系: 履歴がまだ無い場合はErrNotReady", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		_, err := backend.FetchOutput(context.Background(), "abc-123")

		assert.ErrorIs(t, err, model.ErrNotReady)
	})

	t.Run("正常系: 出力ノードに画像が無い場合はErrNotReady", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"abc-123": map[string]interface{}{
					"outputs": map[string]interface{}{},
				},
			})
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		_, err := backend.FetchOutput(context.Background(), "abc-123")

		assert.ErrorIs(t, err, model.ErrNotReady)
	})
}

func TestComfyBackend_FetchImage(t *testing.T) {
	t.Run("正常系: 画像バイト列を取得できる", func(t *testing.T) {
		imageBytes := []byte("png-bytes")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/view", r.URL.Path)
			assert.Equal(t, "vocab_00001.png", r.URL.Query().Get("filename"))
			assert.Equal(t, "output", r.URL.Query().Get("type"))
			w.Write(imageBytes)
		}))
		defer server.Close()

		backend := NewComfyBackend(server.URL, server.Client())
		data, err := backend.FetchImage(context.Background(), "vocab_00001.png")

		require.NoError(t, err)
		assert.Equal(t, imageBytes, data)
	})
}
