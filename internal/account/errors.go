package account

import (
	"errors"
	"fmt"

	"github.com/yourusername/team-hub/internal/store"
)

// エラーコードの一覧。HTTPレスポンスの code フィールドにそのまま載ります。
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
)

// Error は利用者に返すエラーを表します。
// Code は機械判定用、Message は人間向けの説明です。
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errInvalidCredentials はログイン失敗時に返す唯一のエラー値です。
// 「アカウントが存在しない」と「パスワード不一致」を外部から区別できない
// よう、どちらの場合も同じコード・同じメッセージを返します。
var errInvalidCredentials = &Error{
	Code:    CodeInvalidCredentials,
	Message: "メールアドレスまたはパスワードが正しくありません。",
}

// translateStoreError はストア層の障害をアプリケーションのエラーに変換します。
// インフラ由来の生エラーをこの境界の外へ漏らさないためのものです。
func translateStoreError(err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return &Error{
			Code:    CodeStoreUnavailable,
			Message: "データストアに接続できませんでした。時間をおいて再度お試しください。",
		}
	}
	return err
}
