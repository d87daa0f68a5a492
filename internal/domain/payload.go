package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/katakonsumen/review-service/pkg/validator"
)

// StringList absorbs the two shapes list fields arrive in: a JSON array of
// strings, or a single comma-separated string. Elements are trimmed either
// way. An array containing non-string elements is rejected at decode time.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = SplitCommaSeparated(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or an array of strings")
	}
	for i := range many {
		many[i] = strings.TrimSpace(many[i])
	}
	*l = many
	return nil
}

// SplitCommaSeparated converts a comma-separated string to a list of trimmed
// strings. An empty input yields an empty list.
func SplitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", s)
		}
		*n = FlexInt(v)
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected an integer")
	}
	*n = FlexInt(v)
	return nil
}

// flexTimeLayouts are the accepted timestamp shapes, tried in order. Naive
// timestamps are interpreted as UTC.
var flexTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FlexTime accepts an RFC3339 timestamp, a naive ISO-8601 timestamp, or a
// bare date.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a timestamp string")
	}

	s = strings.TrimSpace(s)
	for _, layout := range flexTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// ReviewPayload is the strongly-typed intermediate structure the raw review
// body is decoded into. The custom field types absorb the loosely-typed
// shapes (string vs list, number vs numeric string) so downstream logic never
// re-derives them.
type ReviewPayload struct {
	Username       string     `json:"username" validate:"required"`
	CreatedBy      string     `json:"created_by" validate:"required"`
	Source         string     `json:"source" validate:"required,oneof=pusaka_chat internal_system"`
	ReviewTitle    string     `json:"review_title" validate:"required"`
	Category       string     `json:"category" validate:"required,oneof=product service"`
	Price          *FlexInt   `json:"price" validate:"required,gte=0"`
	Specifications string     `json:"specifications"`
	PurchaseType   string     `json:"purchase_type" validate:"required,oneof=online offline"`
	StoreName      string     `json:"store_name"`
	PurchaseDate   *FlexTime  `json:"purchase_date"`
	PurchaseLink   string     `json:"purchase_link"`
	ReviewContent  string     `json:"review_content" validate:"required"`
	Rating         *FlexInt   `json:"rating" validate:"required,gte=1,lte=5"`
	Tags           StringList `json:"tags"`
	ImageURLs      StringList `json:"image_urls"`
}

// Normalize trims surrounding whitespace from the scalar string fields and
// from list elements. Best-effort and permissive; anything the trim pass
// cannot improve is left for Validate to reject.
func (p *ReviewPayload) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.CreatedBy = strings.TrimSpace(p.CreatedBy)
	p.Source = strings.TrimSpace(p.Source)
	p.ReviewTitle = strings.TrimSpace(p.ReviewTitle)
	p.Category = strings.TrimSpace(p.Category)
	p.Specifications = strings.TrimSpace(p.Specifications)
	p.PurchaseType = strings.TrimSpace(p.PurchaseType)
	p.StoreName = strings.TrimSpace(p.StoreName)
	p.PurchaseLink = strings.TrimSpace(p.PurchaseLink)
	p.ReviewContent = strings.TrimSpace(p.ReviewContent)

	for i := range p.Tags {
		p.Tags[i] = strings.TrimSpace(p.Tags[i])
	}
	for i := range p.ImageURLs {
		p.ImageURLs[i] = strings.TrimSpace(p.ImageURLs[i])
	}
}

// Validate applies the schema rules to the normalized payload: required
// fields, enum membership, and numeric ranges. On failure it returns a
// field-level ValidationError and no side effects have occurred.
func (p *ReviewPayload) Validate() error {
	return validator.Validate(p)
}

// ToReview returns the canonical Review record. Tags and ImageURLs default
// to empty lists when absent. CreatedAt is left unset; the service assigns
// it at submission time so timestamps are always server-controlled.
func (p *ReviewPayload) ToReview() *Review {
	review := &Review{
		Username:       p.Username,
		CreatedBy:      p.CreatedBy,
		Source:         p.Source,
		ReviewTitle:    p.ReviewTitle,
		Category:       p.Category,
		Price:          int64(*p.Price),
		Specifications: p.Specifications,
		PurchaseType:   p.PurchaseType,
		StoreName:      p.StoreName,
		PurchaseLink:   p.PurchaseLink,
		ReviewContent:  p.ReviewContent,
		Rating:         int(*p.Rating),
		Tags:           []string{},
		ImageURLs:      []string{},
	}

	if p.PurchaseDate != nil {
		t := p.PurchaseDate.Time
		review.PurchaseDate = &t
	}
	if len(p.Tags) > 0 {
		review.Tags = append(review.Tags, p.Tags...)
	}
	if len(p.ImageURLs) > 0 {
		review.ImageURLs = append(review.ImageURLs, p.ImageURLs...)
	}

	return review
}
