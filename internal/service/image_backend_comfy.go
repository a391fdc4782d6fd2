package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_vocab_art/internal/middleware"
	"go_vocab_art/internal/model"

	"github.com/google/uuid"
)

// outputNodeID は画像を保存するワークフローノード（SaveImage）のIDです。
// 履歴レスポンスの outputs はこのキーで引く。
const outputNodeID = "9"

type comfyBackend struct {
	baseURL    string
	httpClient *http.Client
	clientID   string
}

// NewComfyBackend はComfyUI互換APIを叩く ImageBackend を生成します。
func NewComfyBackend(baseURL string, httpClient *http.Client) ImageBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &comfyBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		clientID:   uuid.NewString(),
	}
}

// buildWorkflow はポジティブプロンプト1本からtext-to-imageワークフローを組み立てます。
// ノードIDは固定（"9" = SaveImage）。
func buildWorkflow(text string) map[string]interface{} {
	return map[string]interface{}{
		"3": map[string]interface{}{
			"class_type": "KSampler",
			"inputs": map[string]interface{}{
				"seed":         time.Now().UnixNano() % 1_000_000_000,
				"steps":        20,
				"cfg":          8,
				"sampler_name": "euler",
				"scheduler":    "normal",
				"denoise":      1,
				"model":        []interface{}{"4", 0},
				"positive":     []interface{}{"6", 0},
				"negative":     []interface{}{"7", 0},
				"latent_image": []interface{}{"5", 0},
			},
		},
		"4": map[string]interface{}{
			"class_type": "CheckpointLoaderSimple",
			"inputs": map[string]interface{}{
				"ckpt_name": "sd_xl_base_1.0.safetensors",
			},
		},
		"5": map[string]interface{}{
			"class_type": "EmptyLatentImage",
			"inputs": map[string]interface{}{
				"width":      1024,
				"height":     1024,
				"batch_size": 1,
			},
		},
		"6": map[string]interface{}{
			"class_type": "CLIPTextEncode",
			"inputs": map[string]interface{}{
				"text": text,
				"clip": []interface{}{"4", 1},
			},
		},
		"7": map[string]interface{}{
			"class_type": "CLIPTextEncode",
			"inputs": map[string]interface{}{
				"text": "blurry, low quality, distorted, watermark, text",
				"clip": []interface{}{"4", 1},
			},
		},
		"8": map[string]interface{}{
			"class_type": "VAEDecode",
			"inputs": map[string]interface{}{
				"samples": []interface{}{"3", 0},
				"vae":     []interface{}{"4", 2},
			},
		},
		outputNodeID: map[string]interface{}{
			"class_type": "SaveImage",
			"inputs": map[string]interface{}{
				"filename_prefix": "vocab",
				"images":          []interface{}{"8", 0},
			},
		},
	}
}

func (b *comfyBackend) SubmitPrompt(ctx context.Context, text string) (string, error) {
	logger := middleware.GetLogger(ctx)

	payload := map[string]interface{}{
		"prompt":    buildWorkflow(text),
		"client_id": b.clientID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/prompt", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		logger.Error("Error submitting prompt to image backend", "error", err)
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: %w", model.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Image backend returned non-OK status for prompt submission", "status", resp.StatusCode)
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: status %d: %w", resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	var submitResp struct {
		PromptID string `json:"prompt_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: %w", model.ErrUpstreamParse)
	}
	if submitResp.PromptID == "" {
		return "", fmt.Errorf("comfyBackend.SubmitPrompt: empty prompt_id: %w", model.ErrUpstreamParse)
	}
	return submitResp.PromptID, nil
}

// historyEntry は /history/{prompt_id} レスポンスの必要部分です
type historyEntry struct {
	Outputs map[string]struct {
		Images []struct {
			Filename  string `json:"filename"`
			Subfolder string `json:"subfolder"`
			Type      string `json:"type"`
		} `json:"images"`
	} `json:"outputs"`
}

func (b *comfyBackend) FetchOutput(ctx context.Context, promptID string) (string, error) {
	logger := middleware.GetLogger(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/history/"+url.PathEscape(promptID), nil)
	if err != nil {
		return "", fmt.Errorf("comfyBackend.FetchOutput: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		logger.Error("Error fetching prompt history from image backend", "error", err, "prompt_id", promptID)
		return "", fmt.Errorf("comfyBackend.FetchOutput: %w", model.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("comfyBackend.FetchOutput: status %d: %w", resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	var history map[string]historyEntry
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return "", fmt.Errorf("comfyBackend.FetchOutput: %w", model.ErrUpstreamParse)
	}

	entry, ok := history[promptID]
	if !ok {
		return "", model.ErrNotReady
	}
	node, ok := entry.Outputs[outputNodeID]
	if !ok || len(node.Images) == 0 || node.Images[0].Filename == "" {
		return "", model.ErrNotReady
	}
	return node.Images[0].Filename, nil
}

func (b *comfyBackend) FetchImage(ctx context.Context, filename string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	q := url.Values{}
	q.Set("filename", filename)
	q.Set("type", "output")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/view?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("comfyBackend.FetchImage: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		logger.Error("Error fetching image from image backend", "error", err, "filename", filename)
		return nil, fmt.Errorf("comfyBackend.FetchImage: %w", model.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("comfyBackend.FetchImage: status %d: %w", resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("comfyBackend.FetchImage: %w", err)
	}
	return data, nil
}
