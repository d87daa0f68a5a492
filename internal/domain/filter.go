package domain

import "time"

// Default and maximum page sizes for search operations.
const (
	DefaultReviewLimit   = 30
	DefaultWishlistLimit = 10
	MaxSearchLimit       = 100
)

// ReviewFilter is the set of optional search criteria for reviews. String
// fields match as case-insensitive substrings, Tags match if any one tag
// matches, and the numeric and date pairs are inclusive ranges. A zero-value
// filter matches everything.
type ReviewFilter struct {
	Username       string
	CreatedBy      string
	Source         string
	ReviewTitle    string
	Category       string
	Specifications string
	StoreName      string
	PurchaseType   string
	PurchaseLink   string
	ReviewContent  string
	Tags           []string

	PriceMin  *int64
	PriceMax  *int64
	RatingMin *int
	RatingMax *int

	PurchaseDateFrom *time.Time
	PurchaseDateTo   *time.Time
	CreatedAtFrom    *time.Time
	CreatedAtTo      *time.Time

	Limit int
}

// WishlistFilter narrows a wishlist search. Username is required by the
// service layer; both fields match as case-insensitive substrings.
type WishlistFilter struct {
	Username string
	Title    string
	Limit    int
}
