package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemStore はテストとローカル開発用のインメモリ Store 実装です。
// ユニークインデックスの挙動も再現し、MongoDB なしで利用できます。
type MemStore struct {
	mu          sync.Mutex
	collections map[string][]Document
	uniqueIndex map[string][]string // collection → ユニーク制約のあるフィールド
}

// NewMemStore は空の MemStore を作成します。
func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string][]Document),
		uniqueIndex: make(map[string][]string),
	}
}

// FindOne は条件に一致する最初のドキュメントを返します。
func (s *MemStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			return cloneDocument(doc), nil
		}
	}
	return nil, ErrNotFound
}

// Find はコレクション内の全ドキュメントを返します。
func (s *MemStore) Find(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, cloneDocument(doc))
	}
	return docs, nil
}

// InsertOne はドキュメントを1件挿入し、採番したIDを返します。
func (s *MemStore) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(collection, doc); err != nil {
		return "", err
	}

	stored := cloneDocument(doc)
	id := uuid.NewString()
	stored["_id"] = id
	s.collections[collection] = append(s.collections[collection], stored)
	return id, nil
}

// InsertMany は複数のドキュメントをまとめて挿入します。
func (s *MemStore) InsertMany(ctx context.Context, collection string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		if err := s.checkUnique(collection, doc); err != nil {
			return err
		}
		stored := cloneDocument(doc)
		stored["_id"] = uuid.NewString()
		s.collections[collection] = append(s.collections[collection], stored)
	}
	return nil
}

// ListCollectionNames は存在するコレクション名の一覧を返します。
func (s *MemStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// CreateCollection はコレクションを作成します。
func (s *MemStore) CreateCollection(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		s.collections[name] = nil
	}
	return nil
}

// EnsureUniqueIndex は指定フィールドのユニーク制約を登録します。
func (s *MemStore) EnsureUniqueIndex(ctx context.Context, collection string, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.uniqueIndex[collection], field) {
		s.uniqueIndex[collection] = append(s.uniqueIndex[collection], field)
	}
	return nil
}

func (s *MemStore) checkUnique(collection string, doc Document) error {
	for _, field := range s.uniqueIndex[collection] {
		value, ok := doc[field]
		if !ok {
			continue
		}
		for _, existing := range s.collections[collection] {
			if existing[field] == value {
				return ErrDuplicateKey
			}
		}
	}
	return nil
}

func matches(doc Document, filter Filter) bool {
	for key, want := range filter {
		if doc[key] != want {
			return false
		}
	}
	return true
}

func cloneDocument(doc Document) Document {
	clone := make(Document, len(doc))
	for key, value := range doc {
		clone[key] = value
	}
	return clone
}
