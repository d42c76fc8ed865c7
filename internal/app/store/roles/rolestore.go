// internal/app/store/roles/rolestore.go
package rolestore

import (
	"context"

	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("course_access_roles")}
}

// ListForUser returns the user's teaching grants (instructor or staff),
// both per-course and org-wide.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CourseAccessRole, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"user_id": userID,
		"role":    bson.M{"$in": bson.A{models.RoleInstructor, models.RoleStaff}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CourseAccessRole
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HasAnyTeachingRole reports whether the user holds at least one
// instructor or staff grant anywhere.
func (s *Store) HasAnyTeachingRole(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"role":    bson.M{"$in": bson.A{models.RoleInstructor, models.RoleStaff}},
	}, options.Count().SetLimit(1))
	return n > 0, err
}

// RolesForCourse returns the roles the user holds on one course,
// counting both a direct grant on the course and an org-wide grant for
// the course's organization.
func (s *Store) RolesForCourse(ctx context.Context, userID primitive.ObjectID, courseID, org string) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"user_id": userID,
		"role":    bson.M{"$in": bson.A{models.RoleInstructor, models.RoleStaff}},
		"$or": bson.A{
			bson.M{"course_id": courseID},
			bson.M{"course_id": "", "org": org},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	seen := map[string]bool{}
	var out []string
	for cur.Next(ctx) {
		var grant models.CourseAccessRole
		if err := cur.Decode(&grant); err != nil {
			return nil, err
		}
		if !seen[grant.Role] {
			seen[grant.Role] = true
			out = append(out, grant.Role)
		}
	}
	return out, cur.Err()
}

// Grant records a role for a user on a course (or org-wide when
// courseID is empty). Duplicate grants are collapsed.
func (s *Store) Grant(ctx context.Context, userID primitive.ObjectID, role, courseID, org string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "role": role, "course_id": courseID, "org": org},
		bson.M{"$setOnInsert": bson.M{"_id": primitive.NewObjectID()}},
		options.Update().SetUpsert(true))
	return err
}

// Revoke removes a grant.
func (s *Store) Revoke(ctx context.Context, userID primitive.ObjectID, role, courseID, org string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{
		"user_id": userID, "role": role, "course_id": courseID, "org": org,
	})
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return err
}
