// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the standard 404 page. It is installed as the
// router's NotFound handler and is also rendered deliberately for
// pages a user is not allowed to know exist, so the two cases are
// indistinguishable from outside.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r)
}

// Forbidden renders a friendly "access denied" page. Installed as the
// CSRF failure handler, so rejected form posts get a page instead of
// the middleware's plain-text error.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "/")
}
