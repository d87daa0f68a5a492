package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/katakonsumen/review-service/internal/domain"
)

// containsRegex builds a case-insensitive substring match. The value is
// quoted so user input never acts as a pattern.
func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// exactRegex builds a case-insensitive whole-string match.
func exactRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// BuildReviewQuery translates a review filter into a MongoDB filter
// document. Criteria combine with AND; within tags, any single match
// suffices. Empty criteria contribute nothing, so a zero filter yields an
// empty document that matches every review.
func BuildReviewQuery(filter domain.ReviewFilter) bson.M {
	query := bson.M{}

	text := map[string]string{
		"username":       filter.Username,
		"created_by":     filter.CreatedBy,
		"source":         filter.Source,
		"review_title":   filter.ReviewTitle,
		"category":       filter.Category,
		"specifications": filter.Specifications,
		"store_name":     filter.StoreName,
		"purchase_type":  filter.PurchaseType,
		"purchase_link":  filter.PurchaseLink,
		"review_content": filter.ReviewContent,
	}
	for field, value := range text {
		if value != "" {
			query[field] = containsRegex(value)
		}
	}

	if len(filter.Tags) > 0 {
		clauses := make([]bson.M, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			clauses = append(clauses, bson.M{"tags": containsRegex(tag)})
		}
		query["$or"] = clauses
	}

	if rng := rangeClause(filter.PriceMin, filter.PriceMax); rng != nil {
		query["price"] = rng
	}
	if rng := rangeClause(filter.RatingMin, filter.RatingMax); rng != nil {
		query["rating"] = rng
	}
	if rng := rangeClause(filter.PurchaseDateFrom, filter.PurchaseDateTo); rng != nil {
		query["purchase_date"] = rng
	}
	if rng := rangeClause(filter.CreatedAtFrom, filter.CreatedAtTo); rng != nil {
		query["created_at"] = rng
	}

	return query
}

// BuildWishlistQuery translates a wishlist filter into a MongoDB filter
// document. Username and title both match as case-insensitive substrings.
func BuildWishlistQuery(filter domain.WishlistFilter) bson.M {
	query := bson.M{}
	if filter.Username != "" {
		query["username"] = containsRegex(filter.Username)
	}
	if filter.Title != "" {
		query["wishlist_title"] = containsRegex(filter.Title)
	}
	return query
}

// rangeClause builds an inclusive $gte/$lte clause from optional bounds.
// Returns nil when both bounds are absent.
func rangeClause[T any](min, max *T) bson.M {
	if min == nil && max == nil {
		return nil
	}
	clause := bson.M{}
	if min != nil {
		clause["$gte"] = *min
	}
	if max != nil {
		clause["$lte"] = *max
	}
	return clause
}
