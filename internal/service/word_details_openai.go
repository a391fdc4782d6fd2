package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go_vocab_art/internal/middleware"
	"go_vocab_art/internal/model"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDetailsDefaultModel = "gpt-4.1-nano"

// OpenAIDetailsConfig はOpenAIクライアントの設定です。
type OpenAIDetailsConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
	BaseURL    string       // テスト用（省略可）
	HTTPClient *http.Client // テスト用（省略可）
}

type openAIDetailsProvider struct {
	model  string
	client openai.Client
}

// NewOpenAIDetailsProvider はChat Completionsで辞書情報を取得するプロバイダを生成します。
func NewOpenAIDetailsProvider(cfg OpenAIDetailsConfig) WordDetailsProvider {
	if cfg.Model == "" {
		cfg.Model = openAIDetailsDefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAIDetailsProvider{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

func (p *openAIDetailsProvider) FetchDetails(ctx context.Context, word string, scopeType model.ScopeType, scopeKey string) (*model.WordDetails, error) {
	logger := middleware.GetLogger(ctx)

	prompt := buildWordDetailsPrompt(word, scopeType, scopeKey)

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		logger.Error("Error calling chat completion API", "error", err, "word", word)
		return nil, fmt.Errorf("openAIDetailsProvider.FetchDetails: %w", model.ErrUpstreamUnavailable)
	}
	if len(completion.Choices) == 0 {
		logger.Error("Chat completion returned no choices", "word", word)
		return nil, fmt.Errorf("openAIDetailsProvider.FetchDetails: %w", model.ErrUpstreamParse)
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	// モデルがコードフェンスで囲んで返すことがあるため剥がす
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var details model.WordDetails
	if err := json.Unmarshal([]byte(content), &details); err != nil {
		logger.Warn("Failed to parse word details response as JSON", "error", err, "word", word)
		return nil, fmt.Errorf("openAIDetailsProvider.FetchDetails: %w", model.ErrUpstreamParse)
	}
	if details.Word == "" {
		details.Word = word
	}
	return &details, nil
}
