// internal/app/features/coursesearch/templates.go
package coursesearch

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "coursesearch",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
