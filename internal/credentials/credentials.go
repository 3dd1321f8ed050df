// Package credentials はパスワードのハッシュ化と検証を提供します。
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost は bcrypt のコストパラメータです。
const hashCost = 10

// ErrMalformedDigest は Hash が生成し得ない値を Verify に渡した場合に返されます。
var ErrMalformedDigest = errors.New("credentials: malformed digest")

// Hash は平文パスワードを bcrypt でハッシュ化します。
// ソルトは呼び出しごとにランダム生成されるため、同じ平文でも毎回異なる
// ダイジェストになります。比較は必ず Verify で行ってください。
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify は平文パスワードとダイジェストの一致を検証します。
// 不一致は (false, nil) であってエラーではありません。ダイジェストが
// bcrypt 形式として解釈できない場合のみ ErrMalformedDigest を返します。
func Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedDigest
	}
}
