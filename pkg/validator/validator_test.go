package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `json:"username" validate:"required"`
	Source   string `json:"source" validate:"required,oneof=pusaka_chat internal_system"`
	Rating   *int   `json:"rating" validate:"required,gte=1,lte=5"`
}

func intPtr(i int) *int { return &i }

func TestValidate_Success(t *testing.T) {
	s := sample{Username: "alice", Source: "pusaka_chat", Rating: intPtr(5)}
	assert.NoError(t, Validate(&s))
}

func TestValidate_RequiredFields(t *testing.T) {
	s := sample{}
	err := Validate(&s)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["username"])
	assert.Equal(t, "is required", fields["source"])
	assert.Equal(t, "is required", fields["rating"])
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	s := sample{Username: "alice", Source: "facebook", Rating: intPtr(3)}
	err := Validate(&s)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Contains(t, fields, "source")
	assert.NotContains(t, fields, "Source")
	assert.Equal(t, "must be one of: pusaka_chat internal_system", fields["source"])
}

func TestValidate_RangeBounds(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		valid  bool
	}{
		{"below lower bound", 0, false},
		{"lower bound", 1, true},
		{"upper bound", 5, true},
		{"above upper bound", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sample{Username: "alice", Source: "pusaka_chat", Rating: intPtr(tt.rating)}
			err := Validate(&s)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	s := sample{Username: "alice", Source: "pusaka_chat", Rating: intPtr(9)}
	err := Validate(&s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'rating' must be less than or equal to 5")
}
