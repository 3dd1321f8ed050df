// Package session はログイン済みアカウントとブラウザを結びつけるセッション状態を管理します。
package session

import (
	"time"

	"github.com/gin-contrib/sessions"
)

const (
	// CookieName はセッションクッキーの名前です。
	CookieName = "hub_session"

	sessionKeyAccountID = "account_id"
	sessionKeyEmail     = "account_email"
	sessionKeyExpiresAt = "expires_at"
)

// Identity はセッションに束縛されたアカウントを表します。
type Identity struct {
	AccountID string
	Email     string
}

// Manager はセッションの発行・検証・破棄を行います。
// セッションの実体はクッキーに署名付きで保存され、有効期限の判定は
// アクセス時に都度行います（バックグラウンドでの掃除は不要）。
type Manager struct {
	ttl time.Duration
	now func() time.Time
}

// NewManager は有効期間 ttl のセッションを発行する Manager を作成します。
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl: ttl,
		now: time.Now,
	}
}

// TTLSeconds はクッキーの MaxAge に利用する秒数を返します。
func (m *Manager) TTLSeconds() int {
	return int(m.ttl.Seconds())
}

// Establish はログイン成功時にセッションを確立します。
// 同じクライアントに既存のセッションがあっても無条件に上書きします。
func (m *Manager) Establish(sess sessions.Session, accountID, email string) error {
	sess.Clear()
	sess.Set(sessionKeyAccountID, accountID)
	sess.Set(sessionKeyEmail, email)
	sess.Set(sessionKeyExpiresAt, m.now().Add(m.ttl).Unix())
	return sess.Save()
}

// Current は有効なセッションがあればその Identity を返します。
// 有効期限切れのセッションは未ログイン扱いになります（遅延無効化）。
func (m *Manager) Current(sess sessions.Session) (Identity, bool) {
	accountID, ok := sess.Get(sessionKeyAccountID).(string)
	if !ok || accountID == "" {
		return Identity{}, false
	}

	expiresAt := readUnix(sess.Get(sessionKeyExpiresAt))
	if expiresAt.IsZero() || !m.now().Before(expiresAt) {
		return Identity{}, false
	}

	email, _ := sess.Get(sessionKeyEmail).(string)
	return Identity{
		AccountID: accountID,
		Email:     email,
	}, true
}

// Clear はセッションを破棄します。
// セッションが存在しない場合も成功扱いです（冪等）。
func (m *Manager) Clear(sess sessions.Session) error {
	sess.Clear()
	return sess.Save()
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}
