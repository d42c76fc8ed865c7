// internal/app/features/teacherdash/types.go
package teacherdash

import (
	"sort"

	"github.com/chalix/coursehub/internal/app/system/htmlsanitize"
	"github.com/chalix/coursehub/internal/domain/models"
)

// CourseCard is one course on the teacher dashboard.
type CourseCard struct {
	ID               string
	DisplayName      string
	Org              string
	Number           string
	Role             string // instructor or staff
	ShortDescription string
	CourseImageURL   string
	ScheduleLabel    string
	HasStarted       bool
	HasEnded         bool
	Enrollments      int64
	CourseURL        string

	course *models.CourseOverview
}

func newCourseCard(c *models.CourseOverview, role string, enrollments int64) CourseCard {
	return CourseCard{
		ID:               c.ID,
		DisplayName:      c.DisplayName,
		Org:              c.Org,
		Number:           c.Number,
		Role:             role,
		ShortDescription: htmlsanitize.Text(c.ShortDescription),
		CourseImageURL:   c.CourseImageURL,
		ScheduleLabel:    ScheduleLabel(c),
		HasStarted:       c.HasStarted(),
		HasEnded:         c.HasEnded(),
		Enrollments:      enrollments,
		CourseURL:        "/courses/" + c.ID + "/",
		course:           c,
	}
}

// sortCards orders cards newest first by start date, falling back to
// enrollment start. Courses with no dates sink to the end. Ties and
// undated courses order by course id so the layout is stable between
// reloads.
func sortCards(cards []CourseCard) {
	sort.Slice(cards, func(i, j int) bool {
		ki, iOK := sortKey(cards[i].course)
		kj, jOK := sortKey(cards[j].course)
		switch {
		case iOK && !jOK:
			return true
		case !iOK && jOK:
			return false
		case iOK && jOK && !ki.Equal(kj):
			return ki.After(kj)
		default:
			return cards[i].ID < cards[j].ID
		}
	})
}
