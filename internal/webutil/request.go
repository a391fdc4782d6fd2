package webutil

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"go_vocab_art/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		slog.Debug("Error decoding JSON body", "error", err)
		return model.ErrInvalidInput
	}
	return nil
}

// ReadWordList はアップロードされたテキストファイルから単語リストを読み取ります。
// 改行区切りで1行1単語。前後の空白を除去し、空行は捨てる。
// ストリームから直接読むため一時ファイルは作らない。
func ReadWordList(file multipart.File) ([]string, error) {
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ReadWordList: %w", err)
	}
	return words, nil
}
