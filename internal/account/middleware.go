package account

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/team-hub/internal/session"
)

// ContextIdentityKey は、ハンドラー間でログイン済みアカウントを共有するためのキーです。
const ContextIdentityKey = "account.identity"

// RequireLogin は有効なセッションを要求するミドルウェアを返します。
// 期限切れのセッションは未ログインと同じ扱いです。
func RequireLogin(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := sm.Current(sessions.Default(c))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "ログインが必要です。",
			})
			return
		}
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}
