package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/beadfanatic/server/internal/content"
)

func (s *Server) registerContentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/content",
		Summary:     "List encyclopedia entries",
		Description: "Returns entry summaries, optionally filtered by category",
		Tags:        []string{"Content"},
	}, s.handleListEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEntry",
		Method:      http.MethodGet,
		Path:        "/api/v1/content/{slug}",
		Summary:     "Get encyclopedia entry",
		Description: "Returns one full entry including the article body",
		Tags:        []string{"Content"},
	}, s.handleGetEntry)
}

// === DTOs ===

// ListEntriesInput contains parameters for listing entries.
type ListEntriesInput struct {
	Category string `query:"category" validate:"omitempty,max=50" doc:"Filter by category slug"`
}

// ListEntriesResponse contains entry summaries.
type ListEntriesResponse struct {
	Entries []content.Summary `json:"entries" doc:"Entry summaries"`
	Total   int               `json:"total" doc:"Number of entries returned"`
}

// ListEntriesOutput wraps the list response for Huma.
type ListEntriesOutput struct {
	Body ListEntriesResponse
}

// GetEntryInput identifies one entry.
type GetEntryInput struct {
	Slug string `path:"slug" validate:"required,slug" doc:"Entry slug"`
}

// GetEntryOutput wraps a full entry for Huma.
type GetEntryOutput struct {
	Body *content.Entry
}

// === Handlers ===

func (s *Server) handleListEntries(_ context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	entries := s.contentService.List(input.Category)
	return &ListEntriesOutput{
		Body: ListEntriesResponse{
			Entries: entries,
			Total:   len(entries),
		},
	}, nil
}

func (s *Server) handleGetEntry(_ context.Context, input *GetEntryInput) (*GetEntryOutput, error) {
	entry, err := s.contentService.Get(input.Slug)
	if err != nil {
		return nil, err
	}
	return &GetEntryOutput{Body: entry}, nil
}
