// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/team-hub/internal/account"
	"github.com/yourusername/team-hub/internal/bootstrap"
	"github.com/yourusername/team-hub/internal/catalog"
	"github.com/yourusername/team-hub/internal/config"
	"github.com/yourusername/team-hub/internal/session"
	"github.com/yourusername/team-hub/internal/store"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// MongoDBへの接続
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := store.ConnectMongo(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v (make sure mongod is running)", err)
	}
	log.Printf("Connected to MongoDB: %s", cfg.MongoDatabase)

	// スキーマ初期化。完了するまでリクエストは受け付けない。
	// 失敗した場合はリスナーを起動せず、エラーを1度だけ出力して終了する。
	if err := bootstrap.New(st, log.Default()).Run(ctx); err != nil {
		log.Fatalf("Bootstrap failed, refusing to start: %v", err)
	}

	sessionManager := session.NewManager(time.Duration(cfg.SessionTTLHours) * time.Hour)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// セッションストアの設定（クッキー署名鍵は必須）
	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionManager.TTLSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteStrictMode,
	})
	router.Use(sessions.Sessions(session.CookieName, cookieStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, st, sessionManager)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "team-hub-api",
		"version": "0.1.0",
	})
}

// setupRoutes は API グループと静的ファイルの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, st store.Store, sm *session.Manager) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	// フロントエンドと選手画像の静的配信
	router.Static("/pages", cfg.StaticDir+"/pages")
	router.Static("/images", cfg.ImagesDir)

	accountService := account.NewService(st, log.Default())

	api := router.Group("/api")
	{
		api.POST("/register", account.RegisterHandler(accountService))
		api.POST("/login", account.LoginHandler(accountService, sm))
		api.POST("/logout", account.LogoutHandler(sm))

		// 選手カタログは参照データの読み取りのみ（認証不要）
		api.GET("/players", catalog.PlayersHandler(st))

		// ログイン必須のAPIはここにぶら下げる
		protected := api.Group("")
		protected.Use(account.RequireLogin(sm))
		{
			protected.GET("/me", account.MeHandler(accountService))
		}
	}
}
