package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/beadfanatic/server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search the encyclopedia",
		Description: "Full-text search over entries with fuzzy matching and facets",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching the encyclopedia.
type SearchInput struct {
	Query    string `query:"q" validate:"omitempty,max=200" doc:"Search query"`
	Category string `query:"category" validate:"omitempty,max=50" doc:"Exact category filter"`
	Tags     string `query:"tags" validate:"omitempty,max=200" doc:"Comma-separated tag filter (any match)"`
	Limit    int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset   int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset"`
	Facets   bool   `query:"facets" doc:"Include facet counts in response"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.Result
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Category = input.Category
	params.IncludeFacets = input.Facets
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	if input.Tags != "" {
		for tag := range strings.SplitSeq(input.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				params.Tags = append(params.Tags, tag)
			}
		}
	}

	result, err := s.contentService.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}
