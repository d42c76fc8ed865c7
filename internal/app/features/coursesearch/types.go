// internal/app/features/coursesearch/types.go
package coursesearch

import (
	"github.com/chalix/coursehub/internal/app/system/htmlsanitize"
	"github.com/chalix/coursehub/internal/domain/models"
)

// CourseResult is one search hit, shaped for both the JSON API and the
// HTML result list.
type CourseResult struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	ShortDescription string `json:"short_description"`
	CourseImageURL   string `json:"course_image_url"`
	CourseURL        string `json:"course_url"`
	EnrollmentURL    string `json:"enrollment_url"`
	IsEnrolled       bool   `json:"is_enrolled"`
	Org              string `json:"org"`
	CourseNumber     string `json:"course_number"`
}

// newCourseResult shapes a catalog entry for display. The short
// description is stripped of markup; course bodies are authored HTML.
func newCourseResult(c models.CourseOverview, enrolled bool) CourseResult {
	return CourseResult{
		ID:               c.ID,
		DisplayName:      c.DisplayName,
		ShortDescription: htmlsanitize.Text(c.ShortDescription),
		CourseImageURL:   c.CourseImageURL,
		CourseURL:        "/courses/" + c.ID + "/",
		EnrollmentURL:    "/courses/" + c.ID + "/enroll",
		IsEnrolled:       enrolled,
		Org:              c.Org,
		CourseNumber:     c.Number,
	}
}
