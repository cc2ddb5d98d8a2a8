package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/httpserver/deps"
)

type componentStatus struct {
	OK       bool              `json:"ok"`
	Mode     string            `json:"mode,omitempty"`
	Impact   string            `json:"impact,omitempty"`
	Error    string            `json:"error,omitempty"`
	Resolved map[string]string `json:"resolved,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports component status for operators: which endpoints have been
// resolved so far and whether Redis is answering.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		resolved := make(map[string]string)
		for _, op := range endpoint.Operations() {
			if url, ok := d.Resolver.Resolved(op); ok {
				resolved[string(op)] = url
			}
		}

		components := map[string]componentStatus{
			"resolver": {
				OK:       true,
				Mode:     "probe+memoize",
				Resolved: resolved,
			},
			"redis": checkRedis(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	// Redis down means no sessions: users cannot sign in, but anonymous
	// game browsing still works.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}
	return "optimal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "sessions-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "sessions-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "sessions-enabled",
		Error:  "none",
	}
}
