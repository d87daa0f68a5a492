// Package service holds the business logic for reviews and wishlist
// entries, between the HTTP handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/katakonsumen/review-service/internal/domain"
	"github.com/katakonsumen/review-service/internal/event"
	"github.com/katakonsumen/review-service/internal/image"
	"github.com/katakonsumen/review-service/internal/repository"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

// CreateReviewResult reports the outcome of a review submission.
type CreateReviewResult struct {
	ReviewID      string
	SkippedImages []image.Skipped
}

// ReviewService orchestrates the review ingestion pipeline and the review
// query and deletion operations.
type ReviewService struct {
	repo   repository.ReviewRepository
	images image.Pipeline
	events *event.Publisher
	logger *slog.Logger
}

// NewReviewService wires a ReviewService.
func NewReviewService(repo repository.ReviewRepository, images image.Pipeline, events *event.Publisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		images: images,
		events: events,
		logger: logger,
	}
}

// Create runs the ingestion pipeline: normalize, validate, relocate images,
// persist. Validation failures abort before any side effect. Image failures
// degrade to per-URL skips and never fail the submission. The store write
// happens only after every relocation attempt has resolved.
func (s *ReviewService) Create(ctx context.Context, payload *domain.ReviewPayload) (*CreateReviewResult, error) {
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	stored, skipped := s.images.Relocate(ctx, payload.Username, payload.ImageURLs)

	review := payload.ToReview()
	review.ImageURLs = stored
	review.CreatedAt = time.Now().UTC()

	id, err := s.repo.Create(ctx, review)
	if err != nil {
		// Relocated images are orphaned here; reconciliation is out of scope.
		return nil, fmt.Errorf("creating review: %w", err)
	}

	s.events.ReviewCreated(ctx, event.ReviewCreatedData{
		ReviewID: id,
		Username: review.Username,
		Source:   review.Source,
		Category: review.Category,
		Rating:   review.Rating,
	})

	return &CreateReviewResult{ReviewID: id, SkippedImages: skipped}, nil
}

// Search returns reviews matching the filter and the total match count. The
// limit defaults to 30 and is capped at 100.
func (s *ReviewService) Search(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultReviewLimit
	}
	if filter.Limit > domain.MaxSearchLimit {
		filter.Limit = domain.MaxSearchLimit
	}
	return s.repo.Search(ctx, filter)
}

// GetByID returns one review by its hex ID.
func (s *ReviewService) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.InvalidInput("review_id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns every review submitted for the username.
func (s *ReviewService) GetByUsername(ctx context.Context, username string) ([]domain.Review, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}
	return s.repo.FindByUsername(ctx, username)
}

// DeleteByID removes one review. Stored images are deleted best-effort
// before the record; a storage failure never blocks the record deletion.
func (s *ReviewService) DeleteByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.InvalidInput("review_id is required")
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.images.Remove(ctx, review.ImageURLs)

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.events.ReviewDeleted(ctx, event.ReviewDeletedData{
		ReviewID: id,
		Username: review.Username,
		Deleted:  1,
	})
	return nil
}

// DeleteAllByUsername removes every review for the username and returns the
// number deleted. Stored images are deleted best-effort first.
func (s *ReviewService) DeleteAllByUsername(ctx context.Context, username string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperrors.InvalidInput("username is required")
	}

	reviews, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	s.removeImages(ctx, reviews)

	deleted, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.events.ReviewDeleted(ctx, event.ReviewDeletedData{
			Username: username,
			Deleted:  deleted,
		})
	}
	return deleted, nil
}

// DeleteAllBySource removes every review from the source and returns the
// number deleted. The source must be a known enum value.
func (s *ReviewService) DeleteAllBySource(ctx context.Context, source string) (int64, error) {
	source = strings.TrimSpace(source)
	if !domain.IsValidSource(source) {
		return 0, apperrors.InvalidInput(fmt.Sprintf(
			"source must be one of: %s", strings.Join(domain.ValidSources(), ", "),
		))
	}

	reviews, err := s.repo.FindBySource(ctx, source)
	if err != nil {
		return 0, err
	}
	s.removeImages(ctx, reviews)

	deleted, err := s.repo.DeleteBySource(ctx, source)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.events.ReviewDeleted(ctx, event.ReviewDeletedData{
			Source:  source,
			Deleted: deleted,
		})
	}
	return deleted, nil
}

func (s *ReviewService) removeImages(ctx context.Context, reviews []domain.Review) {
	for _, review := range reviews {
		s.images.Remove(ctx, review.ImageURLs)
	}
}
