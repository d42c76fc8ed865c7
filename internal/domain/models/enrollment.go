// internal/domain/models/enrollment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseEnrollment links a user to a course. One record per (user, course);
// unenrolling flips IsActive rather than deleting the record.
type CourseEnrollment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID string             `bson:"course_id" json:"course_id"`
	IsActive bool               `bson:"is_active" json:"is_active"`
	Created  time.Time          `bson:"created" json:"created"`
}
