// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
		// 割り当てフェーズはポーリングで数分かかるため、リクエストタイムアウトは分単位
		RequestTimeoutMin int `mapstructure:"request_timeout_min"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		PageLimit int `mapstructure:"page_limit"`
	} `mapstructure:"app"`
	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		BaseURL string `mapstructure:"base_url"` // テスト用（省略可）
	} `mapstructure:"openai"`
	ComfyUI struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"comfyui"`
	S3 struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "default"
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		PublicBaseURL   string `mapstructure:"public_base_url"` // 省略時は bucket/region から組み立て
	} `mapstructure:"s3"`
	Polling struct {
		Attempts   int `mapstructure:"attempts"`
		IntervalMs int `mapstructure:"interval_ms"`
	} `mapstructure:"polling"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_OPENAI_API_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("s3.access_key_id", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("s3.secret_access_key", "AWS_SECRET_ACCESS_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Server.RequestTimeoutMin <= 0 {
		Cfg.Server.RequestTimeoutMin = DefaultRequestTimeoutMin
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.PageLimit <= 0 {
		log.Printf("App page limit not set or invalid, using default '%d'", DefaultPageLimit)
		Cfg.App.PageLimit = DefaultPageLimit
	}
	if Cfg.OpenAI.Model == "" {
		Cfg.OpenAI.Model = DefaultOpenAIModel
	}
	if Cfg.ComfyUI.BaseURL == "" {
		log.Printf("ComfyUI base URL not set, using default '%s'", DefaultComfyUIBaseURL)
		Cfg.ComfyUI.BaseURL = DefaultComfyUIBaseURL
	}
	if Cfg.S3.AuthType == "" {
		Cfg.S3.AuthType = "default"
	}
	// ポーリング回数と間隔は全フローで共通の1ポリシーに統一
	if Cfg.Polling.Attempts <= 0 {
		Cfg.Polling.Attempts = DefaultPollingAttempts
	}
	if Cfg.Polling.IntervalMs <= 0 {
		Cfg.Polling.IntervalMs = DefaultPollingIntervalMs
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OpenAI API key is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Polling: %d attempts x %dms", Cfg.Polling.Attempts, Cfg.Polling.IntervalMs)

	return nil
}
