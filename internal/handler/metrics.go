package handler

import (
	"fmt"
	"net/http"

	"github.com/platekeep/platekeep/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "platekeep_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "platekeep_tokens_issued_total %d\n", snap.TokensIssued)

	writeMetric(w, "platekeep_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "platekeep_auth_cache_misses_total %d\n", snap.AuthCacheMisses)

	writeMetric(w, "platekeep_recipes_created_total %d\n", snap.RecipesCreated)
	writeMetric(w, "platekeep_recipes_updated_total %d\n", snap.RecipesUpdated)
	writeMetric(w, "platekeep_recipes_deleted_total %d\n", snap.RecipesDeleted)
	writeMetric(w, "platekeep_recipe_images_uploaded_total %d\n", snap.ImagesUploaded)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
