package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/validation"
)

type entryRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Slug     string `json:"slug" validate:"required,slug"`
	Category string `json:"category" validate:"required,oneof=glass stone metal pearl novelty mixed general"`
}

func TestValidate_Success(t *testing.T) {
	v := validation.New()

	err := v.Validate(entryRequest{
		Title:    "Venetian Glass Beads",
		Slug:     "venetian-glass",
		Category: "glass",
	})
	assert.NoError(t, err)
}

func TestValidate_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       entryRequest
		wantField string
	}{
		{
			name:      "missing title",
			req:       entryRequest{Slug: "venetian-glass", Category: "glass"},
			wantField: "title",
		},
		{
			name:      "uppercase slug",
			req:       entryRequest{Title: "x", Slug: "Venetian-Glass", Category: "glass"},
			wantField: "slug",
		},
		{
			name:      "trailing hyphen slug",
			req:       entryRequest{Title: "x", Slug: "venetian-", Category: "glass"},
			wantField: "slug",
		},
		{
			name:      "unknown category",
			req:       entryRequest{Title: "x", Slug: "venetian-glass", Category: "resin"},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *errors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(entryRequest{Slug: "ok-slug", Category: "glass"})
	require.Error(t, err)

	var domainErr *errors.Error
	require.True(t, errors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)
	assert.Contains(t, details, "title")
	assert.NotContains(t, details, "Title")
}
