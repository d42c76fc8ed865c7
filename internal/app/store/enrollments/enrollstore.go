// internal/app/store/enrollments/enrollstore.go
package enrollstore

import (
	"context"
	"time"

	"github.com/chalix/coursehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("course_enrollments")}
}

// IsActivelyEnrolled reports whether the user has an active enrollment
// in the course.
func (s *Store) IsActivelyEnrolled(ctx context.Context, userID primitive.ObjectID, courseID string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"course_id": courseID,
		"is_active": true,
	}, options.Count().SetLimit(1))
	return n > 0, err
}

// ActiveCourseIDs returns the set of course ids the user is actively
// enrolled in, for annotating result lists in one round trip.
func (s *Store) ActiveCourseIDs(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"user_id": userID, "is_active": true},
		options.Find().SetProjection(bson.M{"course_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]bool{}
	for cur.Next(ctx) {
		var e models.CourseEnrollment
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out[e.CourseID] = true
	}
	return out, cur.Err()
}

// CountActive returns the number of active enrollments in a course.
func (s *Store) CountActive(ctx context.Context, courseID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"course_id": courseID, "is_active": true})
}

// Enroll creates or reactivates the user's enrollment in a course.
func (s *Store) Enroll(ctx context.Context, userID primitive.ObjectID, courseID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "course_id": courseID},
		bson.M{
			"$set": bson.M{"is_active": true},
			"$setOnInsert": bson.M{
				"_id":     primitive.NewObjectID(),
				"created": time.Now(),
			},
		},
		options.Update().SetUpsert(true))
	if wafflemongo.IsDup(err) {
		// Concurrent enroll hit the unique (user, course) index; the
		// record exists now, which is the state we wanted.
		return nil
	}
	return err
}

// Unenroll deactivates the enrollment; the record is kept for history.
func (s *Store) Unenroll(ctx context.Context, userID primitive.ObjectID, courseID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "course_id": courseID},
		bson.M{"$set": bson.M{"is_active": false}})
	return err
}
