// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "VocabArtGen"
	AppVersion = "0.3.1"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultRequestTimeoutMin = 15
	DefaultLogLevel          = "info"
	DefaultPageLimit         = 10
	DefaultOpenAIModel       = "gpt-4.1-nano"
	DefaultComfyUIBaseURL    = "http://127.0.0.1:8188"
	DefaultPollingAttempts   = 150
	DefaultPollingIntervalMs = 4000
)
