package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katakonsumen/review-service/internal/domain"
)

// WishlistRepository stores wishlist entries in the wishlist collection.
type WishlistRepository struct {
	collection *mongo.Collection
}

// NewWishlistRepository returns a repository bound to the wishlist
// collection of the given database.
func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{collection: db.Collection(wishlistCollection)}
}

func (r *WishlistRepository) Create(ctx context.Context, entry *domain.WishlistEntry) (string, error) {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("inserting wishlist entry: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (r *WishlistRepository) Search(ctx context.Context, filter domain.WishlistFilter) ([]domain.WishlistEntry, int64, error) {
	query := BuildWishlistQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("counting wishlist entries: %w", err)
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("searching wishlist entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.WishlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decoding wishlist entries: %w", err)
	}
	return entries, total, nil
}

func (r *WishlistRepository) DeleteByUsernameAndTitle(ctx context.Context, username, title string) (int64, error) {
	return r.deleteAll(ctx, bson.M{
		"username":       username,
		"wishlist_title": exactRegex(title),
	})
}

func (r *WishlistRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	return r.deleteAll(ctx, bson.M{"username": username})
}

func (r *WishlistRepository) deleteAll(ctx context.Context, query bson.M) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("deleting wishlist entries: %w", err)
	}
	return result.DeletedCount, nil
}
