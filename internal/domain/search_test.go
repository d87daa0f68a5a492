package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

func TestReviewSearchPayload_ToFilter(t *testing.T) {
	raw := []byte(`{
		"review_title": "Gadget",
		"specifications": "ram",
		"purchase_link": "shop.example",
		"tags": "phone,laptop",
		"price_min": "1000",
		"price_max": 5000,
		"rating_min": 4,
		"limit": 2
	}`)

	var p ReviewSearchPayload
	require.NoError(t, json.Unmarshal(raw, &p))

	filter, err := p.ToFilter()
	require.NoError(t, err)

	assert.Equal(t, "Gadget", filter.ReviewTitle)
	assert.Equal(t, "ram", filter.Specifications)
	assert.Equal(t, "shop.example", filter.PurchaseLink)
	assert.Equal(t, []string{"phone", "laptop"}, []string(filter.Tags))
	require.NotNil(t, filter.PriceMin)
	assert.Equal(t, int64(1000), *filter.PriceMin)
	require.NotNil(t, filter.PriceMax)
	assert.Equal(t, int64(5000), *filter.PriceMax)
	require.NotNil(t, filter.RatingMin)
	assert.Equal(t, 4, *filter.RatingMin)
	assert.Nil(t, filter.RatingMax)
	assert.Equal(t, 2, filter.Limit)
}

func TestReviewSearchPayload_SingleSidedDateBound(t *testing.T) {
	var p ReviewSearchPayload
	require.NoError(t, json.Unmarshal([]byte(`{"purchase_date_start": "2024-01-01"}`), &p))

	_, err := p.ToFilter()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestReviewSearchPayload_DatePair(t *testing.T) {
	var p ReviewSearchPayload
	raw := []byte(`{"created_at_start": "2024-01-01", "created_at_end": "2024-06-30"}`)
	require.NoError(t, json.Unmarshal(raw, &p))

	filter, err := p.ToFilter()
	require.NoError(t, err)
	require.NotNil(t, filter.CreatedAtFrom)
	require.NotNil(t, filter.CreatedAtTo)
	assert.True(t, filter.CreatedAtFrom.Before(*filter.CreatedAtTo))
}

func TestWishlistSearchPayload_UsernameRequired(t *testing.T) {
	p := WishlistSearchPayload{WishlistTitle: "Keyboard"}

	_, err := p.ToFilter()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWishlistSearchPayload_Trims(t *testing.T) {
	p := WishlistSearchPayload{Username: " anita ", WishlistTitle: " keyboard "}

	filter, err := p.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, "anita", filter.Username)
	assert.Equal(t, "keyboard", filter.Title)
}
