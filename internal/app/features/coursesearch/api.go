// internal/app/features/coursesearch/api.go
package coursesearch

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const (
	defaultAPILimit = 10
	maxAPILimit     = 50
)

// apiResponse is the JSON search payload. Count is the number of
// results returned, after the limit is applied.
type apiResponse struct {
	Results []CourseResult `json:"results"`
	Query   string         `json:"query"`
	Count   int            `json:"count"`
}

// ServeSearchAPI answers JSON search requests. The endpoint always
// returns 200: an empty query or a storage failure both produce an
// empty result set so widget callers never have to branch on status.
// GET /api/search?q=...&limit=N
func (h *Handler) ServeSearchAPI(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "q")

	resp := apiResponse{Results: []CourseResult{}, Query: q}

	if q != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
		defer cancel()

		results, err := h.runSearch(ctx, r, q)
		if err != nil {
			h.Log.Error("course search api failed",
				zap.String("query", q),
				zap.Error(err))
		} else {
			limit := parseLimit(r)
			if len(results) > limit {
				results = results[:limit]
			}
			resp.Results = results
			resp.Count = len(results)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parseLimit reads the limit parameter, defaulting to defaultAPILimit
// and capping at maxAPILimit. Garbage values get the default.
func parseLimit(r *http.Request) int {
	s := query.Get(r, "limit")
	if s == "" {
		return defaultAPILimit
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultAPILimit
	}
	if n > maxAPILimit {
		return maxAPILimit
	}
	return n
}
