//go:generate mockery --name ImageStore --output ./mocks --outpkg mocks --case=underscore
package service

import "context"

// ImageStore は生成画像をオブジェクトストレージに保存し、公開URLを返します。
// 同じキーへの再保存は上書き（冪等）。
type ImageStore interface {
	Store(ctx context.Context, key string, body []byte) (string, error)
}
