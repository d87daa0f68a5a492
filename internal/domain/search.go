package domain

import (
	"strings"
	"time"

	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

// ReviewSearchPayload is the decoded body of a review search request. All
// criteria are optional; date range bounds must be supplied in pairs.
type ReviewSearchPayload struct {
	Username       string     `json:"username"`
	CreatedBy      string     `json:"created_by"`
	Source         string     `json:"source"`
	ReviewTitle    string     `json:"review_title"`
	Category       string     `json:"category"`
	Specifications string     `json:"specifications"`
	StoreName      string     `json:"store_name"`
	PurchaseType   string     `json:"purchase_type"`
	PurchaseLink   string     `json:"purchase_link"`
	ReviewContent  string     `json:"review_content"`
	Tags           StringList `json:"tags"`

	PriceMin  *FlexInt `json:"price_min"`
	PriceMax  *FlexInt `json:"price_max"`
	RatingMin *FlexInt `json:"rating_min"`
	RatingMax *FlexInt `json:"rating_max"`

	PurchaseDateStart *FlexTime `json:"purchase_date_start"`
	PurchaseDateEnd   *FlexTime `json:"purchase_date_end"`
	CreatedAtStart    *FlexTime `json:"created_at_start"`
	CreatedAtEnd      *FlexTime `json:"created_at_end"`

	Limit *FlexInt `json:"limit"`
}

// ToFilter converts the payload into a ReviewFilter. Date bounds are only
// accepted in pairs; a single-sided date bound is invalid input.
func (p *ReviewSearchPayload) ToFilter() (ReviewFilter, error) {
	if (p.PurchaseDateStart == nil) != (p.PurchaseDateEnd == nil) {
		return ReviewFilter{}, apperrors.InvalidInput("purchase_date_start and purchase_date_end must be provided together")
	}
	if (p.CreatedAtStart == nil) != (p.CreatedAtEnd == nil) {
		return ReviewFilter{}, apperrors.InvalidInput("created_at_start and created_at_end must be provided together")
	}

	filter := ReviewFilter{
		Username:       p.Username,
		CreatedBy:      p.CreatedBy,
		Source:         p.Source,
		ReviewTitle:    p.ReviewTitle,
		Category:       p.Category,
		Specifications: p.Specifications,
		StoreName:      p.StoreName,
		PurchaseType:   p.PurchaseType,
		PurchaseLink:   p.PurchaseLink,
		ReviewContent:  p.ReviewContent,
		Tags:           p.Tags,
	}

	if p.PriceMin != nil {
		v := int64(*p.PriceMin)
		filter.PriceMin = &v
	}
	if p.PriceMax != nil {
		v := int64(*p.PriceMax)
		filter.PriceMax = &v
	}
	if p.RatingMin != nil {
		v := int(*p.RatingMin)
		filter.RatingMin = &v
	}
	if p.RatingMax != nil {
		v := int(*p.RatingMax)
		filter.RatingMax = &v
	}

	filter.PurchaseDateFrom = timePtr(p.PurchaseDateStart)
	filter.PurchaseDateTo = timePtr(p.PurchaseDateEnd)
	filter.CreatedAtFrom = timePtr(p.CreatedAtStart)
	filter.CreatedAtTo = timePtr(p.CreatedAtEnd)

	if p.Limit != nil {
		filter.Limit = int(*p.Limit)
	}
	return filter, nil
}

// WishlistSearchPayload is the decoded body of a wishlist search request.
// Username is required.
type WishlistSearchPayload struct {
	Username      string   `json:"username"`
	WishlistTitle string   `json:"wishlist_title"`
	Limit         *FlexInt `json:"limit"`
}

// ToFilter converts the payload into a WishlistFilter.
func (p *WishlistSearchPayload) ToFilter() (WishlistFilter, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return WishlistFilter{}, apperrors.InvalidInput("username is required")
	}

	filter := WishlistFilter{
		Username: username,
		Title:    strings.TrimSpace(p.WishlistTitle),
	}
	if p.Limit != nil {
		filter.Limit = int(*p.Limit)
	}
	return filter, nil
}

func timePtr(t *FlexTime) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
