package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
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

// Component statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

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
	components := map[string]ComponentHealth{
		"database":  s.checkDatabase(ctx),
		"archive":   s.checkArchiveIndex(),
		"discovery": s.checkDiscovery(),
	}

	overall := statusHealthy
	for _, c := range components {
		switch {
		case c.Status == statusUnhealthy:
			overall = statusUnhealthy
		case c.Status == statusDegraded && overall == statusHealthy:
			overall = statusDegraded
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDatabase verifies Badger answers a read.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "database not configured",
		}
	}

	start := time.Now()
	err := s.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "database read failed",
		}
	}

	return ComponentHealth{
		Status:  statusHealthy,
		Latency: latency.String(),
	}
}

// checkArchiveIndex verifies the Bleve index is accessible.
// An empty archive is healthy: nothing has been discovered yet.
func (s *Server) checkArchiveIndex() ComponentHealth {
	if s.services == nil || s.services.Archive == nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "archive not configured",
		}
	}

	start := time.Now()
	docCount, err := s.services.Archive.DocumentCount()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "archive index unreachable",
		}
	}

	return ComponentHealth{
		Status:  statusHealthy,
		Latency: latency.String(),
		Message: formatPostCount(docCount),
	}
}

// checkDiscovery reports whether a provider key is configured.
// Without one the dashboard still works but discovery returns nothing.
func (s *Server) checkDiscovery() ComponentHealth {
	if s.services == nil || s.services.Discovery == nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "discovery not configured",
		}
	}
	if !s.services.Discovery.ProviderConfigured() {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "no provider API key",
		}
	}
	return ComponentHealth{Status: statusHealthy}
}

func formatPostCount(n uint64) string {
	if n == 1 {
		return "1 archived post"
	}
	return strconv.FormatUint(n, 10) + " archived posts"
}
