// Package store はドキュメントストアへのアクセスを抽象化するレイヤーを提供します。
package store

import (
	"context"
	"errors"
)

// Document はコレクションに格納される1件のレコードを表します。
type Document map[string]any

// Filter は検索条件を表します（フィールド名 → 完全一致する値）。
type Filter map[string]any

var (
	// ErrNotFound は条件に一致するドキュメントが存在しない場合に返されます。
	ErrNotFound = errors.New("store: document not found")

	// ErrDuplicateKey はユニークインデックスに違反する挿入を行った場合に返されます。
	ErrDuplicateKey = errors.New("store: duplicate key")

	// ErrUnavailable は接続断などストア側の障害を表します。
	// 個別のインフラエラーはこのエラーにラップして呼び出し元へ伝搬します。
	ErrUnavailable = errors.New("store: unavailable")
)

// Store はコレクション単位の読み書き操作を提供します。
// 各操作はリトライせず、失敗をそのまま呼び出し元へ返します。
type Store interface {
	// FindOne は条件に一致する最初のドキュメントを返します。
	// 一致するものがなければ ErrNotFound を返します。
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)

	// Find はコレクション内の全ドキュメントを返します。
	Find(ctx context.Context, collection string) ([]Document, error)

	// InsertOne はドキュメントを1件挿入し、ストアが採番したIDを返します。
	// ユニークインデックス違反の場合は ErrDuplicateKey を返します。
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)

	// InsertMany は複数のドキュメントをまとめて挿入します。
	InsertMany(ctx context.Context, collection string, docs []Document) error

	// ListCollectionNames は存在するコレクション名の一覧を返します。
	ListCollectionNames(ctx context.Context) ([]string, error)

	// CreateCollection はコレクションを作成します。
	CreateCollection(ctx context.Context, name string) error

	// EnsureUniqueIndex は指定フィールドのユニークインデックスを作成します。
	// すでに存在する場合は何もしません。
	EnsureUniqueIndex(ctx context.Context, collection string, field string) error
}
