// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// MongoDB設定
	MongoURL      string // MongoDB接続URL
	MongoDatabase string // 使用するデータベース名

	// セッション設定
	SessionSecret   string // セッションクッキー署名用の秘密鍵
	SessionTTLHours int    // セッションの有効期間（時間）

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 静的ファイル設定
	StaticDir string // フロントエンドの静的ファイル置き場
	ImagesDir string // 選手画像の置き場
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// MongoDB設定
		MongoURL:      getEnv("MONGO_URL", "mongodb://localhost:27017/"),
		MongoDatabase: getEnv("MONGO_DATABASE", "ipl_team_hub"),

		// セッション設定
		SessionSecret:   getEnv("SESSION_SECRET", "ipl-team-hub-secret"),
		SessionTTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// 静的ファイル設定
		StaticDir: getEnv("STATIC_DIR", "public"),
		ImagesDir: getEnv("IMAGES_DIR", "images"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発ではデフォルト値で動作する
	// 本番環境では秘密鍵と接続先を厳格にチェックする
	if c.GinMode == "release" {
		if c.SessionSecret == "" || c.SessionSecret == "ipl-team-hub-secret" {
			return fmt.Errorf("SESSION_SECRET must be set to a non-default value in release mode")
		}
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required in release mode")
		}
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
