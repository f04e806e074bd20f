package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/beadfanatic/server/internal/domain"
	"github.com/beadfanatic/server/internal/store"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminReindex",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reindex",
		Summary:     "Rebuild search index",
		Description: "Drops the search index and rebuilds it from loaded content",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReindex)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListIdentifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/identifications",
		Summary:     "List identification history",
		Description: "Returns recent identification requests, newest first",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListIdentifications)
}

// === DTOs ===

// ReindexInput carries the admin token.
type ReindexInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// ReindexResponse reports the rebuild outcome.
type ReindexResponse struct {
	Documents int `json:"documents" doc:"Number of documents indexed"`
}

// ReindexOutput wraps the reindex response for Huma.
type ReindexOutput struct {
	Body ReindexResponse
}

// ListIdentificationsInput contains history paging parameters.
type ListIdentificationsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Limit         int    `query:"limit" validate:"omitempty,gte=1,lte=200" doc:"Max results (default 50)"`
	Offset        int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset"`
}

// ListIdentificationsResponse contains a page of history records.
type ListIdentificationsResponse struct {
	Items []*domain.Identification `json:"items" doc:"Identification records"`
	Total int64                    `json:"total" doc:"Total records stored"`
}

// ListIdentificationsOutput wraps the history response for Huma.
type ListIdentificationsOutput struct {
	Body ListIdentificationsResponse
}

// === Handlers ===

func (s *Server) handleReindex(ctx context.Context, input *ReindexInput) (*ReindexOutput, error) {
	if err := s.authorize(input.Authorization); err != nil {
		return nil, err
	}

	count, err := s.contentService.Reindex(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin reindex complete", "documents", count)
	return &ReindexOutput{Body: ReindexResponse{Documents: count}}, nil
}

func (s *Server) handleListIdentifications(ctx context.Context, input *ListIdentificationsInput) (*ListIdentificationsOutput, error) {
	if err := s.authorize(input.Authorization); err != nil {
		return nil, err
	}

	items, total, err := s.identifyService.History(ctx, store.ListParams{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &ListIdentificationsOutput{
		Body: ListIdentificationsResponse{Items: items, Total: total},
	}, nil
}
