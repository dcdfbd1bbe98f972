package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"complaints/internal/core"
	"complaints/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a client, pings it and returns the named database.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

type categoryDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// Store reads the complaints and categories collections. Documents are
// returned in _id order, which for ObjectIDs is insertion order.
type Store struct {
	complaints *mongo.Collection
	categories *mongo.Collection
}

var _ store.Gateway = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{
		complaints: db.Collection(store.ComplaintsCollection),
		categories: db.Collection(store.CategoriesCollection),
	}
}

// EnsureIndexes creates the category index used by ad-hoc queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.complaints.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func byInsertion() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}

// ListSubmissions implements store.SubmissionLister
func (s *Store) ListSubmissions(ctx context.Context) ([]core.Submission, error) {
	cursor, err := s.complaints.Find(ctx, bson.M{}, byInsertion())
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Submission
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode complaints: %w", err)
	}
	return out, nil
}

// ListCategories implements store.CategoryLister
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	cursor, err := s.categories.Find(ctx, bson.M{}, byInsertion())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categoryNames(docs), nil
}

// AppendCategory implements store.CategoryAppender
func (s *Store) AppendCategory(ctx context.Context, name string) error {
	res, err := s.categories.InsertOne(ctx, categoryDoc{Name: name})
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	slog.InfoContext(ctx, "Category saved to MongoDB", "id", res.InsertedID, "category", name)
	return nil
}

// InsertSubmission records a complaint document.
func (s *Store) InsertSubmission(ctx context.Context, sub core.Submission) error {
	if _, err := s.complaints.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

func categoryNames(docs []categoryDoc) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}
