// internal/app/features/teacherdash/schedule.go
package teacherdash

import (
	"fmt"
	"time"

	"github.com/chalix/coursehub/internal/domain/models"
)

// dateLayout renders dates the Vietnamese way, day first.
const dateLayout = "02/01/2006"

// ScheduleLabel builds the Vietnamese schedule line for a course card.
//
//	start and end set:    "Thời gian: 01/09/2026 - 20/12/2026"
//	only start set:       "Bắt đầu: 01/09/2026"
//	only enrollment open: "Đăng ký từ: 15/08/2026"
//	nothing set:          "Thời gian: Chưa xác định"
func ScheduleLabel(c *models.CourseOverview) string {
	switch {
	case c.Start != nil && c.End != nil:
		return fmt.Sprintf("Thời gian: %s - %s",
			c.Start.Format(dateLayout), c.End.Format(dateLayout))
	case c.Start != nil:
		return fmt.Sprintf("Bắt đầu: %s", c.Start.Format(dateLayout))
	case c.EnrollmentStart != nil:
		return fmt.Sprintf("Đăng ký từ: %s", c.EnrollmentStart.Format(dateLayout))
	default:
		return "Thời gian: Chưa xác định"
	}
}

// sortKey picks the timestamp a course sorts by: start date when set,
// otherwise enrollment start. Courses with neither sort last.
func sortKey(c *models.CourseOverview) (time.Time, bool) {
	if c.Start != nil {
		return *c.Start, true
	}
	if c.EnrollmentStart != nil {
		return *c.EnrollmentStart, true
	}
	return time.Time{}, false
}
