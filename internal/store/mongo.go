package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore は MongoDB を使った Store の実装です。
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo は MongoDB へ接続し、疎通確認のうえ MongoStore を返します。
func ConnectMongo(ctx context.Context, url, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close は接続を閉じます。
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// FindOne は条件に一致する最初のドキュメントを返します。
func (s *MongoStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	var doc Document
	err := s.db.Collection(collection).FindOne(ctx, normalizeFilter(filter)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return doc, nil
}

// Find はコレクション内の全ドキュメントを返します。
func (s *MongoStore) Find(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return docs, nil
}

// InsertOne はドキュメントを1件挿入し、採番されたIDを返します。
func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	result, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", result.InsertedID), nil
}

// InsertMany は複数のドキュメントをまとめて挿入します。
func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []Document) error {
	payload := make([]any, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, bson.M(doc))
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, payload); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ListCollectionNames は存在するコレクション名の一覧を返します。
func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return names, nil
}

// CreateCollection はコレクションを作成します。
func (s *MongoStore) CreateCollection(ctx context.Context, name string) error {
	if err := s.db.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// normalizeFilter は Store の境界では不透明な文字列として扱っているIDを
// MongoDB の ObjectID へ変換します。
func normalizeFilter(filter Filter) bson.M {
	normalized := make(bson.M, len(filter))
	for key, value := range filter {
		if key == "_id" {
			if hex, ok := value.(string); ok {
				if oid, err := bson.ObjectIDFromHex(hex); err == nil {
					normalized[key] = oid
					continue
				}
			}
		}
		normalized[key] = value
	}
	return normalized
}

// EnsureUniqueIndex は指定フィールドのユニークインデックスを作成します。
// MongoDB側で同一定義のインデックス作成は冪等なので、毎回呼んで問題ありません。
func (s *MongoStore) EnsureUniqueIndex(ctx context.Context, collection string, field string) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
