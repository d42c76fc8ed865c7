// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"regexp"

	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("course_overviews")}
}

// GetByID loads one course overview by course key.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, courseID string) (*models.CourseOverview, error) {
	var c models.CourseOverview
	if err := s.c.FindOne(ctx, bson.M{"_id": courseID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDs loads course overviews for the given keys, keyed by id.
func (s *Store) GetByIDs(ctx context.Context, courseIDs []string) (map[string]models.CourseOverview, error) {
	out := make(map[string]models.CourseOverview, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": courseIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var c models.CourseOverview
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, cur.Err()
}

// ByOrg returns every course in the given organization, any visibility.
// Used to expand org-wide role grants at query time.
func (s *Store) ByOrg(ctx context.Context, org string) ([]models.CourseOverview, error) {
	cur, err := s.c.Find(ctx, bson.M{"org": org})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CourseOverview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns catalog-listed courses whose display name, short
// description, or overview contains the query as a case-insensitive
// substring, newest-modified first. Courses hidden from the catalog
// never match; staff-only courses are returned and left to the
// per-viewer access check, so their own staff still find them.
func (s *Store) Search(ctx context.Context, query string) ([]models.CourseOverview, error) {
	// Treat the query as a literal, not a pattern.
	pattern := regexp.QuoteMeta(query)
	re := bson.M{"$regex": pattern, "$options": "i"}

	filter := bson.M{
		"catalog_visibility": models.CatalogVisibilityBoth,
		"$or": bson.A{
			bson.M{"display_name": re},
			bson.M{"short_description": re},
			bson.M{"overview": re},
		},
	}

	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "modified", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CourseOverview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
