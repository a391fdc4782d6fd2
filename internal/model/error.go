// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用

	// 画像生成パイプライン固有のエラー
	ErrUpstreamParse       = errors.New("upstream response could not be parsed")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrNotReady            = errors.New("image not ready yet") // ポーリング上限到達。エラーではなく「保留」扱い
)

// ErrorDetail はクライアントに返すエラーの詳細です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// AppError はHTTPレスポンスに変換可能なアプリケーションエラーです。
// Detail がクライアント向け、Err がステータスコード判定用のセンチネルエラー。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
