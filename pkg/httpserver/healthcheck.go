package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

// Check is a named dependency check.
type Check struct {
	Name string
	Ping func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler serves liveness and readiness checks.
//
// With no checks it always answers 200 {"status":"alive"}. Otherwise every
// check runs with the given timeout; the handler answers 200 {"status":"ready"}
// when all pass and 503 {"status":"not_ready"} with per-check results when any fails.
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "alive"}
		status := http.StatusOK

		if len(checks) > 0 {
			ctx := r.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			resp.Status = "ready"
			resp.Checks = make(map[string]string, len(checks))
			for _, c := range checks {
				if err := c.Ping(ctx); err != nil {
					log.ErrorContext(ctx, "readiness check failed",
						slog.String("check", c.Name),
						logger.Error(err),
					)
					resp.Checks[c.Name] = "fail"
					resp.Status = "not_ready"
					status = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[c.Name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
