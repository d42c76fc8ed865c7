// internal/domain/models/courseaccessrole.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Teaching role names, in order of precedence.
const (
	RoleInstructor = "instructor"
	RoleStaff      = "staff"
)

// CourseAccessRole grants a user a teaching role either on one course
// (CourseID set) or across every course in an organization (CourseID
// empty, Org set). Org-wide grants are resolved against the catalog at
// query time, so they cover courses created after the grant.
type CourseAccessRole struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role     string             `bson:"role" json:"role"`
	CourseID string             `bson:"course_id,omitempty" json:"course_id,omitempty"`
	Org      string             `bson:"org" json:"org"`
}

// IsOrgWide reports whether the grant applies to a whole organization.
func (r *CourseAccessRole) IsOrgWide() bool {
	return r.CourseID == "" && r.Org != ""
}
