package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go_vocab_art/internal/config"
	"go_vocab_art/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ImageStore は AWS S3 に画像をアップロードする実装です
type S3ImageStore struct {
	uploader      *manager.Uploader
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3ImageStore は設定に応じて認証方法を切り替えてS3クライアントを生成します
func NewS3ImageStore(cfg *config.Config) ImageStore {
	var awsCfgOpts []func(*awsconfig.LoadOptions) error

	awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.S3.Region))

	// 設定ファイルに基づき、認証方法を決定
	switch cfg.S3.AuthType {
	case "static_credentials":
		slog.Info("Configuring S3 with static credentials.")
		if cfg.S3.AccessKeyID == "" || cfg.S3.SecretAccessKey == "" {
			slog.Error("S3 auth_type is 'static_credentials' but access_key_id or secret_access_key is missing in config.")
			// 起動時にpanicさせることで、設定ミスに即座に気づけるようにする
			panic("missing static credentials for S3")
		}
		creds := credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		)
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))

	case "default":
		// IAMロールや環境変数など、SDKのデフォルトの解決順序に任せる
		slog.Info("Configuring S3 with default credential chain.")

	default:
		slog.Warn("Unknown S3 auth_type specified, defaulting to default credential chain.", "type", cfg.S3.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsCfgOpts...)
	if err != nil {
		slog.Error("Failed to load AWS config for S3", "error", err)
		panic(err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3ImageStore{
		uploader:      manager.NewUploader(client),
		bucket:        cfg.S3.Bucket,
		region:        cfg.S3.Region,
		publicBaseURL: strings.TrimRight(cfg.S3.PublicBaseURL, "/"),
	}
}

// Store は画像をS3にアップロードし、公開URLを返します。
// 同一キーは上書きされるため再実行しても安全。
func (s *S3ImageStore) Store(ctx context.Context, key string, body []byte) (string, error) {
	logger := middleware.GetLogger(ctx)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		logger.Error("Failed to upload image to S3", "error", err, "key", key)
		return "", fmt.Errorf("S3ImageStore.Store: %w", err)
	}

	url := s.publicURL(key)
	logger.Info("Image uploaded to S3", "key", key, "url", url)
	return url, nil
}

func (s *S3ImageStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
