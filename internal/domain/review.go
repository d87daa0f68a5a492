package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review sources.
const (
	SourcePusakaChat     = "pusaka_chat"
	SourceInternalSystem = "internal_system"
)

// Review categories.
const (
	CategoryProduct = "product"
	CategoryService = "service"
)

// Purchase types.
const (
	PurchaseOnline  = "online"
	PurchaseOffline = "offline"
)

// ValidSources returns the set of valid review sources.
func ValidSources() []string {
	return []string{SourcePusakaChat, SourceInternalSystem}
}

// IsValidSource checks whether the given source is valid.
func IsValidSource(source string) bool {
	for _, s := range ValidSources() {
		if s == source {
			return true
		}
	}
	return false
}

// Review represents a user-authored evaluation of a product or service.
// ImageURLs only ever contains URLs of images that were verified and copied
// into managed object storage.
type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	CreatedBy      string             `bson:"created_by" json:"created_by"`
	Source         string             `bson:"source" json:"source"`
	ReviewTitle    string             `bson:"review_title" json:"review_title"`
	Category       string             `bson:"category" json:"category"`
	Price          int64              `bson:"price" json:"price"`
	Specifications string             `bson:"specifications,omitempty" json:"specifications,omitempty"`
	PurchaseType   string             `bson:"purchase_type" json:"purchase_type"`
	StoreName      string             `bson:"store_name,omitempty" json:"store_name,omitempty"`
	PurchaseDate   *time.Time         `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	PurchaseLink   string             `bson:"purchase_link,omitempty" json:"purchase_link,omitempty"`
	ReviewContent  string             `bson:"review_content" json:"review_content"`
	Rating         int                `bson:"rating" json:"rating"`
	Tags           []string           `bson:"tags" json:"tags"`
	ImageURLs      []string           `bson:"image_urls" json:"image_urls"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
