package memory

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katakonsumen/review-service/internal/domain"
)

// WishlistRepository keeps wishlist entries in a slice guarded by a mutex.
type WishlistRepository struct {
	mu      sync.RWMutex
	entries []domain.WishlistEntry
}

// NewWishlistRepository returns an empty in-memory wishlist store.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

func (r *WishlistRepository) Create(_ context.Context, entry *domain.WishlistEntry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	stored.ID = primitive.NewObjectID()
	r.entries = append(r.entries, stored)
	return stored.ID.Hex(), nil
}

func (r *WishlistRepository) Search(_ context.Context, filter domain.WishlistFilter) ([]domain.WishlistEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.WishlistEntry{}
	for _, entry := range r.entries {
		if filter.Username != "" && !containsFold(entry.Username, filter.Username) {
			continue
		}
		if filter.Title != "" && !containsFold(entry.WishlistTitle, filter.Title) {
			continue
		}
		matched = append(matched, entry)
	}

	total := int64(len(matched))
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *WishlistRepository) DeleteByUsernameAndTitle(_ context.Context, username, title string) (int64, error) {
	return r.deleteWhere(func(entry domain.WishlistEntry) bool {
		return entry.Username == username && strings.EqualFold(entry.WishlistTitle, title)
	}), nil
}

func (r *WishlistRepository) DeleteByUsername(_ context.Context, username string) (int64, error) {
	return r.deleteWhere(func(entry domain.WishlistEntry) bool {
		return entry.Username == username
	}), nil
}

func (r *WishlistRepository) deleteWhere(match func(domain.WishlistEntry) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var deleted int64
	for _, entry := range r.entries {
		if match(entry) {
			deleted++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return deleted
}
