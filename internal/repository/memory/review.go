// Package memory provides in-memory repository implementations with the
// same matching semantics as the mongo package. They back local development
// and tests that do not need a running database.
package memory

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katakonsumen/review-service/internal/domain"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

// ReviewRepository keeps reviews in a slice guarded by a mutex. Insertion
// order is preserved.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

// NewReviewRepository returns an empty in-memory review store.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *review
	stored.ID = primitive.NewObjectID()
	r.reviews = append(r.reviews, stored)
	return stored.ID.Hex(), nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.reviews {
		if r.reviews[i].ID.Hex() == id {
			review := r.reviews[i]
			return &review, nil
		}
	}
	return nil, apperrors.NotFound("review", id)
}

func (r *ReviewRepository) FindByUsername(_ context.Context, username string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := []domain.Review{}
	for _, review := range r.reviews {
		if review.Username == username {
			found = append(found, review)
		}
	}
	return found, nil
}

func (r *ReviewRepository) FindBySource(_ context.Context, source string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := []domain.Review{}
	for _, review := range r.reviews {
		if review.Source == source {
			found = append(found, review)
		}
	}
	return found, nil
}

func (r *ReviewRepository) Search(_ context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Review{}
	for _, review := range r.reviews {
		if matchesReview(review, filter) {
			matched = append(matched, review)
		}
	}

	total := int64(len(matched))
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *ReviewRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ID.Hex() == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("review", id)
}

func (r *ReviewRepository) DeleteByUsername(_ context.Context, username string) (int64, error) {
	return r.deleteWhere(func(review domain.Review) bool {
		return review.Username == username
	}), nil
}

func (r *ReviewRepository) DeleteBySource(_ context.Context, source string) (int64, error) {
	return r.deleteWhere(func(review domain.Review) bool {
		return review.Source == source
	}), nil
}

func (r *ReviewRepository) deleteWhere(match func(domain.Review) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.reviews[:0]
	var deleted int64
	for _, review := range r.reviews {
		if match(review) {
			deleted++
			continue
		}
		kept = append(kept, review)
	}
	r.reviews = kept
	return deleted
}

func matchesReview(review domain.Review, filter domain.ReviewFilter) bool {
	text := []struct{ value, criterion string }{
		{review.Username, filter.Username},
		{review.CreatedBy, filter.CreatedBy},
		{review.Source, filter.Source},
		{review.ReviewTitle, filter.ReviewTitle},
		{review.Category, filter.Category},
		{review.Specifications, filter.Specifications},
		{review.StoreName, filter.StoreName},
		{review.PurchaseType, filter.PurchaseType},
		{review.PurchaseLink, filter.PurchaseLink},
		{review.ReviewContent, filter.ReviewContent},
	}
	for _, tc := range text {
		if tc.criterion != "" && !containsFold(tc.value, tc.criterion) {
			return false
		}
	}

	if len(filter.Tags) > 0 {
		matched := false
	tags:
		for _, criterion := range filter.Tags {
			for _, tag := range review.Tags {
				if containsFold(tag, criterion) {
					matched = true
					break tags
				}
			}
		}
		if !matched {
			return false
		}
	}

	if filter.PriceMin != nil && review.Price < *filter.PriceMin {
		return false
	}
	if filter.PriceMax != nil && review.Price > *filter.PriceMax {
		return false
	}
	if filter.RatingMin != nil && review.Rating < *filter.RatingMin {
		return false
	}
	if filter.RatingMax != nil && review.Rating > *filter.RatingMax {
		return false
	}

	if filter.PurchaseDateFrom != nil || filter.PurchaseDateTo != nil {
		if review.PurchaseDate == nil {
			return false
		}
		if filter.PurchaseDateFrom != nil && review.PurchaseDate.Before(*filter.PurchaseDateFrom) {
			return false
		}
		if filter.PurchaseDateTo != nil && review.PurchaseDate.After(*filter.PurchaseDateTo) {
			return false
		}
	}
	if filter.CreatedAtFrom != nil && review.CreatedAt.Before(*filter.CreatedAtFrom) {
		return false
	}
	if filter.CreatedAtTo != nil && review.CreatedAt.After(*filter.CreatedAtTo) {
		return false
	}

	return true
}

func containsFold(value, criterion string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(criterion))
}
