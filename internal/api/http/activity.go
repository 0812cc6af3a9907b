package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mind-engage/snapstudy/internal/activity"
)

type ActivityLister interface {
	Recent(ctx context.Context, limit int) ([]activity.Event, error)
}

// GET /admin/activity?limit=N
func ListActivityHandler(repo ActivityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		list, err := repo.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
