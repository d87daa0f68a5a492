package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/katakonsumen/review-service/internal/domain"
	"github.com/katakonsumen/review-service/internal/event"
	"github.com/katakonsumen/review-service/internal/repository"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

// WishlistService handles wishlist entry creation, search, and deletion.
type WishlistService struct {
	repo   repository.WishlistRepository
	events *event.Publisher
	logger *slog.Logger
}

// NewWishlistService wires a WishlistService.
func NewWishlistService(repo repository.WishlistRepository, events *event.Publisher, logger *slog.Logger) *WishlistService {
	return &WishlistService{repo: repo, events: events, logger: logger}
}

// Create validates and persists a wishlist entry, returning its ID.
func (s *WishlistService) Create(ctx context.Context, payload *domain.WishlistPayload) (string, error) {
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return "", err
	}

	entry := payload.ToEntry()
	entry.CreatedAt = time.Now().UTC()

	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("creating wishlist entry: %w", err)
	}

	s.events.WishlistCreated(ctx, event.WishlistCreatedData{
		EntryID:  id,
		Username: entry.Username,
		Title:    entry.WishlistTitle,
	})
	return id, nil
}

// Search returns entries matching the filter and the total match count. The
// limit defaults to 10 and is capped at 100.
func (s *WishlistService) Search(ctx context.Context, filter domain.WishlistFilter) ([]domain.WishlistEntry, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultWishlistLimit
	}
	if filter.Limit > domain.MaxSearchLimit {
		filter.Limit = domain.MaxSearchLimit
	}
	return s.repo.Search(ctx, filter)
}

// DeleteByUsernameAndTitle removes entries matching the exact title,
// ignoring case, and returns the number deleted.
func (s *WishlistService) DeleteByUsernameAndTitle(ctx context.Context, username, title string) (int64, error) {
	username = strings.TrimSpace(username)
	title = strings.TrimSpace(title)
	if username == "" {
		return 0, apperrors.InvalidInput("username is required")
	}
	if title == "" {
		return 0, apperrors.InvalidInput("wishlist_title is required")
	}

	deleted, err := s.repo.DeleteByUsernameAndTitle(ctx, username, title)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.events.WishlistDeleted(ctx, event.WishlistDeletedData{
			Username: username,
			Title:    title,
			Deleted:  deleted,
		})
	}
	return deleted, nil
}

// DeleteAllByUsername removes every entry for the username and returns the
// number deleted.
func (s *WishlistService) DeleteAllByUsername(ctx context.Context, username string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperrors.InvalidInput("username is required")
	}

	deleted, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.events.WishlistDeleted(ctx, event.WishlistDeletedData{
			Username: username,
			Deleted:  deleted,
		})
	}
	return deleted, nil
}
