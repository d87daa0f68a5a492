package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katakonsumen/review-service/pkg/validator"
)

// WishlistEntry represents a lightweight saved-interest marker.
type WishlistEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	WishlistTitle string             `bson:"wishlist_title" json:"wishlist_title"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// WishlistPayload is the incoming request body for creating a wishlist entry.
type WishlistPayload struct {
	Username      string `json:"username" validate:"required"`
	WishlistTitle string `json:"wishlist_title" validate:"required"`
}

// Normalize trims surrounding whitespace from string fields. Best-effort, no
// error conditions.
func (p *WishlistPayload) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.WishlistTitle = strings.TrimSpace(p.WishlistTitle)
}

// Validate applies the schema rules to the normalized payload.
func (p *WishlistPayload) Validate() error {
	return validator.Validate(p)
}

// ToEntry returns the canonical wishlist entry. CreatedAt is left unset; it
// is assigned by the service at submission time.
func (p *WishlistPayload) ToEntry() *WishlistEntry {
	return &WishlistEntry{
		Username:      p.Username,
		WishlistTitle: p.WishlistTitle,
	}
}
