package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/beadfanatic/server/internal/search"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	contentHealth := s.checkContent()
	components["content"] = contentHealth
	if contentHealth.Status == "degraded" {
		overall = "degraded"
	}

	searchHealth := s.checkSearchIndex(ctx)
	components["search"] = searchHealth
	if searchHealth.Status == "unhealthy" {
		overall = "unhealthy"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkContent reports how many encyclopedia entries are loaded. An empty
// collection is degraded, not unhealthy: the identify pipeline still works.
func (s *Server) checkContent() ComponentHealth {
	if count := s.contentService.Count(); count == 0 {
		return ComponentHealth{Status: "degraded", Message: "no content entries loaded"}
	}
	return ComponentHealth{Status: "healthy"}
}

// checkSearchIndex runs a trivial query to verify the index responds.
func (s *Server) checkSearchIndex(ctx context.Context) ComponentHealth {
	start := time.Now()

	params := search.DefaultParams()
	params.Limit = 1
	params.IncludeFacets = false
	params.Highlight = false
	if _, err := s.contentService.Search(ctx, params); err != nil {
		return ComponentHealth{Status: "unhealthy", Message: err.Error()}
	}
	return ComponentHealth{Status: "healthy", Latency: time.Since(start).String()}
}
