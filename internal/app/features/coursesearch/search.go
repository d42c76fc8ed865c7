// internal/app/features/coursesearch/search.go
package coursesearch

import (
	"context"
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/access"
	"github.com/chalix/coursehub/internal/app/system/authz"
	"go.uber.org/zap"
)

// runSearch executes a catalog search for the requesting user: match,
// per-course access check, enrollment annotation. A course whose access
// check errors is skipped with a warning rather than failing the whole
// page; one bad course record must not take search down.
func (h *Handler) runSearch(ctx context.Context, r *http.Request, query string) ([]CourseResult, error) {
	matches, err := h.Courses.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	viewer := access.Anonymous
	if _, _, userID, ok := authz.UserCtx(r); ok {
		viewer = access.Viewer{
			ID:            userID,
			Authenticated: true,
			IsSuperuser:   authz.IsSuperuser(r),
		}
	}

	enrolled := map[string]bool{}
	if viewer.Authenticated {
		enrolled, err = h.Enrollments.ActiveCourseIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	results := make([]CourseResult, 0, len(matches))
	for _, c := range matches {
		ok, err := viewer.CanLoad(ctx, h.Roles, &c)
		if err != nil {
			h.Log.Warn("course access check failed, skipping result",
				zap.String("course_id", c.ID),
				zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		results = append(results, newCourseResult(c, enrolled[c.ID]))
	}
	return results, nil
}
