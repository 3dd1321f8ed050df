package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/team-hub/internal/session"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler は POST /api/register のハンドラーを返します。
func RegisterHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    CodeValidation,
				"message": "firstName, lastName, email, password を JSON で送ってください。",
			})
			return
		}

		if err := svc.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "登録が完了しました。",
		})
	}
}

// LoginHandler は POST /api/login のハンドラーを返します。
// 認証に成功すると、このクライアントのセッションを新しく確立します
// （既存のセッションは破棄されます）。
func LoginHandler(svc *Service, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    CodeValidation,
				"message": "email と password を JSON で送ってください。",
			})
			return
		}

		accountID, profile, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondWithError(c, err)
			return
		}

		if err := sm.Establish(sessions.Default(c), accountID, profile.Email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "SESSION_SAVE_FAILED",
				"message": "セッションの保存に失敗しました。",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "ログインしました。",
			"user":    profile,
		})
	}
}

// LogoutHandler は POST /api/logout のハンドラーを返します。
// ログインしていない状態で呼ばれても成功を返します（冪等）。
func LogoutHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sm.Clear(sessions.Default(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "SESSION_SAVE_FAILED",
				"message": "セッションの削除に失敗しました。",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// MeHandler は GET /api/me のハンドラーを返します。
// RequireLogin の後段で動き、セッションに束縛されたアカウントの
// プロフィールを返します。
func MeHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := c.MustGet(ContextIdentityKey).(session.Identity)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "ログインが必要です。",
			})
			return
		}

		profile, err := svc.FindProfile(c.Request.Context(), identity.AccountID)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": profile})
	}
}

func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		status := http.StatusBadRequest
		switch apiErr.Code {
		case CodeStoreUnavailable:
			status = http.StatusInternalServerError
		case CodeAccountNotFound:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		})
	case errors.Is(err, context.Canceled):
		c.JSON(http.StatusRequestTimeout, gin.H{
			"code":    "REQUEST_CANCELED",
			"message": "リクエストがキャンセルされました。",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "サーバー内部でエラーが発生しました。",
		})
	}
}
