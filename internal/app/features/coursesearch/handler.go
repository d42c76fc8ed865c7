// internal/app/features/coursesearch/handler.go
package coursesearch

import (
	"context"
	"net/http"

	uierrors "github.com/chalix/coursehub/internal/app/features/errors"
	coursestore "github.com/chalix/coursehub/internal/app/store/courses"
	enrollstore "github.com/chalix/coursehub/internal/app/store/enrollments"
	rolestore "github.com/chalix/coursehub/internal/app/store/roles"
	"github.com/chalix/coursehub/internal/app/system/paging"
	"github.com/chalix/coursehub/internal/app/system/timeouts"
	"github.com/chalix/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
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

type searchPageData struct {
	viewdata.BaseVM
	Query   string
	Results []CourseResult
	Page    paging.Page
}

// ServeSearchPage renders the HTML search page with paginated results.
// GET /search/?q=...&page=N
func (h *Handler) ServeSearchPage(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "q")

	data := searchPageData{
		BaseVM: viewdata.NewBaseVM(r, "Tìm khóa học", "/"),
		Query:  q,
	}

	if q != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
		defer cancel()

		results, err := h.runSearch(ctx, r, q)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "course search failed", err, "A database error occurred.", "/")
			return
		}

		page := paging.Paginate(len(results), paging.CoursePageSize, paging.ParsePage(r))
		data.Results = paging.Slice(results, page)
		data.Page = page
	}

	templates.Render(w, r, "course_search", data)
}
