package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katakonsumen/review-service/internal/domain"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

// ReviewRepository stores reviews in the reviews collection.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository returns a repository bound to the reviews collection
// of the given database.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(reviewCollection)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (string, error) {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return "", fmt.Errorf("inserting review: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("review", id)
	}

	var review domain.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("review", id)
	}
	if err != nil {
		return nil, fmt.Errorf("finding review %s: %w", id, err)
	}
	return &review, nil
}

func (r *ReviewRepository) FindByUsername(ctx context.Context, username string) ([]domain.Review, error) {
	return r.findAll(ctx, bson.M{"username": username})
}

func (r *ReviewRepository) FindBySource(ctx context.Context, source string) ([]domain.Review, error) {
	return r.findAll(ctx, bson.M{"source": source})
}

func (r *ReviewRepository) Search(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	query := BuildReviewQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("counting reviews: %w", err)
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("searching reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("decoding reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *ReviewRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("review", id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting review %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("review", id)
	}
	return nil
}

func (r *ReviewRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	return r.deleteAll(ctx, bson.M{"username": username})
}

func (r *ReviewRepository) DeleteBySource(ctx context.Context, source string) (int64, error) {
	return r.deleteAll(ctx, bson.M{"source": source})
}

func (r *ReviewRepository) findAll(ctx context.Context, query bson.M) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finding reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decoding reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) deleteAll(ctx context.Context, query bson.M) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("deleting reviews: %w", err)
	}
	return result.DeletedCount, nil
}
