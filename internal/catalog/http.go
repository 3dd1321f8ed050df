// Package catalog は選手カタログの読み取りAPIを提供します。
// カタログは起動時に投入される参照データで、このAPIはストアの内容を
// そのまま返すだけの薄い層です。
package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/team-hub/internal/bootstrap"
	"github.com/yourusername/team-hub/internal/store"
)

// PlayersHandler は GET /api/players のハンドラーを返します。
func PlayersHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := st.Find(c.Request.Context(), bootstrap.CollectionCatalog)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_UNAVAILABLE",
				"message": "選手一覧の取得に失敗しました。",
			})
			return
		}
		c.JSON(http.StatusOK, players)
	}
}
