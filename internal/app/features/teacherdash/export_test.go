package teacherdash

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoadCoursesForTest exposes loadCourses to the external test package.
func (h *Handler) LoadCoursesForTest(ctx context.Context, userID primitive.ObjectID) ([]CourseCard, error) {
	return h.loadCourses(ctx, userID)
}
