// Package repository defines the persistence contracts for reviews and
// wishlist entries. Implementations live in the mongo and memory
// subpackages.
package repository

import (
	"context"

	"github.com/katakonsumen/review-service/internal/domain"
)

// ReviewRepository persists and queries review records.
type ReviewRepository interface {
	// Create inserts the review and returns the generated ID as a hex string.
	Create(ctx context.Context, review *domain.Review) (string, error)

	// GetByID returns the review with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// FindByUsername returns all reviews submitted for the given username.
	FindByUsername(ctx context.Context, username string) ([]domain.Review, error)

	// FindBySource returns all reviews that entered through the given source.
	FindBySource(ctx context.Context, source string) ([]domain.Review, error)

	// Search returns reviews matching the filter plus the total match count
	// before the limit was applied.
	Search(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error)

	// DeleteByID removes a single review. Returns ErrNotFound when no review
	// has the given ID.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUsername removes all reviews for the username and returns the
	// number deleted.
	DeleteByUsername(ctx context.Context, username string) (int64, error)

	// DeleteBySource removes all reviews from the source and returns the
	// number deleted.
	DeleteBySource(ctx context.Context, source string) (int64, error)
}

// WishlistRepository persists and queries wishlist entries.
type WishlistRepository interface {
	// Create inserts the entry and returns the generated ID as a hex string.
	Create(ctx context.Context, entry *domain.WishlistEntry) (string, error)

	// Search returns entries matching the filter plus the total match count
	// before the limit was applied.
	Search(ctx context.Context, filter domain.WishlistFilter) ([]domain.WishlistEntry, int64, error)

	// DeleteByUsernameAndTitle removes entries whose title matches exactly,
	// ignoring case, and returns the number deleted.
	DeleteByUsernameAndTitle(ctx context.Context, username, title string) (int64, error)

	// DeleteByUsername removes all entries for the username and returns the
	// number deleted.
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}
