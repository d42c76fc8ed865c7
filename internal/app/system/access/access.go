// internal/app/system/access/access.go
//
// Per-course access decisions. Search results and dashboard cards are
// filtered through CanLoad so a course that looks public in the catalog
// but is gated (staff-only, unpublished) never reaches a viewer who
// cannot open it.
package access

import (
	"context"

	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleSource answers role questions for one (user, course) pair.
// Implemented by the roles store.
type RoleSource interface {
	RolesForCourse(ctx context.Context, userID primitive.ObjectID, courseID, org string) ([]string, error)
}

// Viewer is the identity an access check runs against.
type Viewer struct {
	ID            primitive.ObjectID
	IsSuperuser   bool
	Authenticated bool
}

// Anonymous is the viewer for requests with no session.
var Anonymous = Viewer{}

// CanLoad reports whether the viewer may open the course. Courses
// hidden from non-staff require a teaching role on that course (or
// platform superuser). Ended courses stay loadable; archived content
// remains readable.
func (v Viewer) CanLoad(ctx context.Context, roles RoleSource, course *models.CourseOverview) (bool, error) {
	if !course.VisibleToStaffOnly {
		return true, nil
	}
	if v.IsSuperuser {
		return true, nil
	}
	if !v.Authenticated {
		return false, nil
	}
	role, err := TeachingRole(ctx, roles, v.ID, course)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// TeachingRole returns the strongest teaching role the user holds on
// the course: "instructor" wins over "staff", "" means neither. Both a
// direct grant on the course and an org-wide grant for the course's
// organization count.
func TeachingRole(ctx context.Context, roles RoleSource, userID primitive.ObjectID, course *models.CourseOverview) (string, error) {
	held, err := roles.RolesForCourse(ctx, userID, course.ID, course.Org)
	if err != nil {
		return "", err
	}
	best := ""
	for _, r := range held {
		switch r {
		case models.RoleInstructor:
			return models.RoleInstructor, nil
		case models.RoleStaff:
			best = models.RoleStaff
		}
	}
	return best, nil
}
