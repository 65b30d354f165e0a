package server

import (
	"context"
	"net/http"

	"github.com/trivio-games/trivio/internal/logging"
)

// HandleHealth reports liveness for probes and monitoring.
func HandleHealth(ctx context.Context) http.Handler {
	logger := logging.FromContext(ctx).Named("server.health")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			logger.Warnf("write health response: %v", err)
		}
	})
}
