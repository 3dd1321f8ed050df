// Package bootstrap は起動時のスキーマ初期化を行います。
// 必要なコレクションの作成と参照データの投入を冪等に実行し、
// 完了するまでサービスはリクエストを受け付けません。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/yourusername/team-hub/internal/store"
)

const (
	// CollectionAccounts はアカウントを保存するコレクションです。
	CollectionAccounts = "accounts"

	// CollectionCatalog は選手カタログを保存するコレクションです。
	CollectionCatalog = "catalog"
)

// ErrFailed は初期化に失敗したことを表します。
// このエラーが返った場合、サービスを起動してはいけません。
var ErrFailed = errors.New("bootstrap: failed")

// Bootstrapper はスキーマ初期化を実行します。
type Bootstrapper struct {
	store  store.Store
	logger *log.Logger

	// SeedEntries はカタログ新規作成時に投入する参照データです。
	// 未設定の場合は既定の選手データを使います。
	SeedEntries []store.Document
}

// New は Bootstrapper を作成します。
func New(st store.Store, logger *log.Logger) *Bootstrapper {
	if logger == nil {
		logger = log.Default()
	}
	return &Bootstrapper{
		store:  st,
		logger: logger,
	}
}

// Run はスキーマ初期化を実行します。
// 2回連続で実行しても2回目は追加の書き込みを行いません：コレクションの
// 作成もシードの投入も存在チェックで抑止されます。
func (b *Bootstrapper) Run(ctx context.Context) error {
	names, err := b.store.ListCollectionNames(ctx)
	if err != nil {
		return fmt.Errorf("%w: list collections: %v", ErrFailed, err)
	}

	if !slices.Contains(names, CollectionAccounts) {
		if err := b.store.CreateCollection(ctx, CollectionAccounts); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrFailed, CollectionAccounts, err)
		}
		b.logger.Printf("created collection: %s", CollectionAccounts)
	}

	// メールアドレスの一意性はストア層で保証する。同一定義のインデックス
	// 作成は冪等なので、毎回実行して構わない。
	if err := b.store.EnsureUniqueIndex(ctx, CollectionAccounts, "email"); err != nil {
		return fmt.Errorf("%w: ensure unique index on %s.email: %v", ErrFailed, CollectionAccounts, err)
	}

	if !slices.Contains(names, CollectionCatalog) {
		if err := b.store.CreateCollection(ctx, CollectionCatalog); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrFailed, CollectionCatalog, err)
		}
		seed := b.SeedEntries
		if seed == nil {
			seed = defaultSeedEntries()
		}
		if err := b.store.InsertMany(ctx, CollectionCatalog, seed); err != nil {
			return fmt.Errorf("%w: seed %s: %v", ErrFailed, CollectionCatalog, err)
		}
		b.logger.Printf("created collection %s with %d seed entries", CollectionCatalog, len(seed))
	}

	return nil
}
