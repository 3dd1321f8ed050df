// Package account はアカウント登録・ログイン・ログアウトの業務ロジックを提供します。
package account

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yourusername/team-hub/internal/credentials"
	"github.com/yourusername/team-hub/internal/store"
)

const collectionAccounts = "accounts"

// Profile はログイン成功時に返すアカウント情報の投影です。
// passwordHash と id はこの境界の外には出しません。
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Service はアカウント操作を提供します。
// パスワードの強度やメールアドレスの形式は検証しません（空チェックのみ）。
// より厳格なバリデーションはプロダクト判断であり、この層の責務外です。
type Service struct {
	store  store.Store
	logger *log.Logger
}

// NewService は Service を作成します。
func NewService(st store.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:  st,
		logger: logger,
	}
}

// Register は新規アカウントを登録します。
// メールアドレスは保存時のままの大文字小文字で厳密に比較します。
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string) error {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return &Error{
			Code:    CodeValidation,
			Message: "すべての項目を入力してください。",
		}
	}

	s.logger.Printf("registration attempt: %s", email)

	_, err := s.store.FindOne(ctx, collectionAccounts, store.Filter{"email": email})
	switch {
	case err == nil:
		return &Error{
			Code:    CodeDuplicateAccount,
			Message: "このメールアドレスはすでに登録されています。",
		}
	case !errors.Is(err, store.ErrNotFound):
		return translateStoreError(err)
	}

	digest, err := credentials.Hash(password)
	if err != nil {
		return err
	}

	doc := store.Document{
		"firstName":    firstName,
		"lastName":     lastName,
		"email":        email,
		"passwordHash": digest,
		"createdAt":    time.Now().UTC(),
	}
	if _, err := s.store.InsertOne(ctx, collectionAccounts, doc); err != nil {
		// 存在チェックと挿入はアトミックではないため、同じメールアドレスの
		// 同時登録はユニークインデックスに弾かせ、敗者には重複として返す。
		if errors.Is(err, store.ErrDuplicateKey) {
			return &Error{
				Code:    CodeDuplicateAccount,
				Message: "このメールアドレスはすでに登録されています。",
			}
		}
		return translateStoreError(err)
	}

	s.logger.Printf("account registered: %s", email)
	return nil
}

// Login は資格情報を検証し、成功時はアカウントIDとプロフィールを返します。
func (s *Service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	if email == "" || password == "" {
		return "", nil, &Error{
			Code:    CodeValidation,
			Message: "メールアドレスとパスワードを入力してください。",
		}
	}

	s.logger.Printf("login attempt: %s", email)

	doc, err := s.store.FindOne(ctx, collectionAccounts, store.Filter{"email": email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 外部へはパスワード不一致と同じエラーを返す（情報漏えい防止）
			s.logger.Printf("login failed, account not found: %s", email)
			return "", nil, errInvalidCredentials
		}
		return "", nil, translateStoreError(err)
	}

	ok, err := credentials.Verify(password, stringField(doc, "passwordHash"))
	if err != nil {
		return "", nil, err
	}
	if !ok {
		s.logger.Printf("login failed, wrong password: %s", email)
		return "", nil, errInvalidCredentials
	}

	s.logger.Printf("login succeeded: %s", email)
	return documentID(doc), &Profile{
		FirstName: stringField(doc, "firstName"),
		LastName:  stringField(doc, "lastName"),
		Email:     stringField(doc, "email"),
	}, nil
}

// FindProfile はアカウントIDからプロフィールを引きます。
func (s *Service) FindProfile(ctx context.Context, accountID string) (*Profile, error) {
	doc, err := s.store.FindOne(ctx, collectionAccounts, store.Filter{"_id": accountID})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{
				Code:    CodeAccountNotFound,
				Message: "アカウントが見つかりませんでした。",
			}
		}
		return nil, translateStoreError(err)
	}
	return &Profile{
		FirstName: stringField(doc, "firstName"),
		LastName:  stringField(doc, "lastName"),
		Email:     stringField(doc, "email"),
	}, nil
}

func stringField(doc store.Document, key string) string {
	value, _ := doc[key].(string)
	return value
}

func documentID(doc store.Document) string {
	switch id := doc["_id"].(type) {
	case string:
		return id
	case interface{ Hex() string }:
		return id.Hex()
	default:
		return ""
	}
}
