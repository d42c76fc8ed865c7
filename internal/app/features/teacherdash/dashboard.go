// internal/app/features/teacherdash/dashboard.go
package teacherdash

import (
	"context"
	"net/http"

	uierrors "github.com/chalix/coursehub/internal/app/features/errors"
	coursestore "github.com/chalix/coursehub/internal/app/store/courses"
	enrollstore "github.com/chalix/coursehub/internal/app/store/enrollments"
	rolestore "github.com/chalix/coursehub/internal/app/store/roles"
	"github.com/chalix/coursehub/internal/app/system/access"
	"github.com/chalix/coursehub/internal/app/system/authz"
	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/chalix/coursehub/internal/app/system/viewdata"
	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
	Courses     *coursestore.Store
	Enrollments *enrollstore.Store
	Roles       *rolestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Courses:     coursestore.New(db),
		Enrollments: enrollstore.New(db),
		Roles:       rolestore.New(db),
	}
}

type dashboardData struct {
	viewdata.BaseVM
	Courses []CourseCard
}

// ServeDashboard renders the teacher dashboard: every course the user
// teaches, newest first. Users with no teaching role anywhere get the
// standard 404 page, so the URL reveals nothing about the feature to
// students probing it.
// GET /teacher/
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	teaches, err := h.Roles.HasAnyTeachingRole(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "teaching role check failed", err, "A database error occurred.", "/")
		return
	}
	if !teaches {
		uierrors.RenderNotFound(w, r)
		return
	}

	cards, err := h.loadCourses(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load teacher courses failed", err, "A database error occurred.", "/")
		return
	}

	data := dashboardData{
		BaseVM:  viewdata.NewBaseVM(r, "Trang giảng viên", "/"),
		Courses: cards,
	}
	templates.Render(w, r, "teacher_dashboard", data)
}

// loadCourses expands the user's grants to concrete courses, verifies
// each one, and builds sorted cards. Org-wide grants are resolved
// against the catalog here, so a course created after the grant shows
// up without any re-granting.
func (h *Handler) loadCourses(ctx context.Context, userID primitive.ObjectID) ([]CourseCard, error) {
	grants, err := h.Roles.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Collect candidate courses, deduped by id. A user can reach the
	// same course through several grants.
	candidates := map[string]models.CourseOverview{}

	var directIDs []string
	for _, g := range grants {
		if !g.IsOrgWide() {
			directIDs = append(directIDs, g.CourseID)
		}
	}
	direct, err := h.Courses.GetByIDs(ctx, directIDs)
	if err != nil {
		return nil, err
	}
	for id, c := range direct {
		candidates[id] = c
	}

	seenOrgs := map[string]bool{}
	for _, g := range grants {
		if !g.IsOrgWide() || seenOrgs[g.Org] {
			continue
		}
		seenOrgs[g.Org] = true
		orgCourses, err := h.Courses.ByOrg(ctx, g.Org)
		if err != nil {
			return nil, err
		}
		for _, c := range orgCourses {
			candidates[c.ID] = c
		}
	}

	// Re-verify each candidate. A grant list is a hint, not a
	// decision: stale grants for deleted courses and role rows that no
	// longer hold up are dropped here, with a warning rather than a
	// failed page.
	cards := make([]CourseCard, 0, len(candidates))
	for id := range candidates {
		c := candidates[id]
		role, err := access.TeachingRole(ctx, h.Roles, userID, &c)
		if err != nil {
			h.Log.Warn("course role verification failed, skipping course",
				zap.String("course_id", id),
				zap.Error(err))
			continue
		}
		if role == "" {
			continue
		}

		count, err := h.Enrollments.CountActive(ctx, id)
		if err != nil {
			h.Log.Warn("enrollment count failed",
				zap.String("course_id", id),
				zap.Error(err))
			count = 0
		}
		cards = append(cards, newCourseCard(&c, role, count))
	}

	sortCards(cards)
	return cards, nil
}
