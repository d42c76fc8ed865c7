// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type homeData struct {
	viewdata.BaseVM
}

// ServeHome renders the landing page.
// GET /
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		BaseVM: viewdata.NewBaseVM(r, "", "/"),
	}
	templates.Render(w, r, "home", data)
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeHome)
	return r
}
