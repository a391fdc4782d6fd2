//go:generate mockery --name ImageBackend --output ./mocks --outpkg mocks --case=underscore
package service

import "context"

// ImageBackend は非同期の画像生成バックエンド（ComfyUI互換API）とのやりとりを抽象化します。
//
// SubmitPrompt はテキストをワークフローに組み込んでジョブ投入し、prompt_id を返す。
// FetchOutput は履歴を1回だけ照会し、出力がまだ無ければ model.ErrNotReady を返す
// （ポーリングは呼び出し側の責務）。
// FetchImage は生成済みファイルの中身（PNGバイト列）を取得する。
type ImageBackend interface {
	SubmitPrompt(ctx context.Context, text string) (string, error)
	FetchOutput(ctx context.Context, promptID string) (string, error)
	FetchImage(ctx context.Context, filename string) ([]byte, error)
}
