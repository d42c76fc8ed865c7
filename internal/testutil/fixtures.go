// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a user directly, bypassing store validation so
// tests can set up legacy/bad data (e.g. empty emails) as needed.
func CreateUser(t *testing.T, db *mongo.Database, username, email string) models.User {
	t.Helper()
	now := time.Now()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		FullName:   username,
		Email:      email,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.Collection("users").InsertOne(context.Background(), u); err != nil {
		t.Fatalf("insert user %s: %v", username, err)
	}
	return u
}

// CourseOpt mutates a course fixture before insertion.
type CourseOpt func(*models.CourseOverview)

// WithVisibility sets catalog_visibility.
func WithVisibility(v string) CourseOpt {
	return func(c *models.CourseOverview) { c.CatalogVisibility = v }
}

// WithStaffOnly marks the course visible to staff only.
func WithStaffOnly() CourseOpt {
	return func(c *models.CourseOverview) { c.VisibleToStaffOnly = true }
}

// WithDates sets start / enrollment start.
func WithDates(start, enrollmentStart *time.Time) CourseOpt {
	return func(c *models.CourseOverview) {
		c.Start = start
		c.EnrollmentStart = enrollmentStart
	}
}

// WithModified sets the modified timestamp.
func WithModified(ts time.Time) CourseOpt {
	return func(c *models.CourseOverview) { c.Modified = ts }
}

// WithOverview sets the long-form overview HTML.
func WithOverview(html string) CourseOpt {
	return func(c *models.CourseOverview) { c.Overview = html }
}

// WithShortDescription sets the catalog blurb.
func WithShortDescription(s string) CourseOpt {
	return func(c *models.CourseOverview) { c.ShortDescription = s }
}

// WithOrg overrides the owning organization.
func WithOrg(org string) CourseOpt {
	return func(c *models.CourseOverview) { c.Org = org }
}

// CreateCourse inserts a course overview with sane defaults: publicly
// visible, modified now.
func CreateCourse(t *testing.T, db *mongo.Database, id, displayName string, opts ...CourseOpt) models.CourseOverview {
	t.Helper()
	c := models.CourseOverview{
		ID:                id,
		DisplayName:       displayName,
		DisplayNameCI:     text.Fold(displayName),
		CatalogVisibility: models.CatalogVisibilityBoth,
		Org:               "ChalixX",
		Number:            "CH101",
		Modified:          time.Now(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if _, err := db.Collection("course_overviews").InsertOne(context.Background(), c); err != nil {
		t.Fatalf("insert course %s: %v", id, err)
	}
	return c
}

// CreateEnrollment enrolls a user in a course.
func CreateEnrollment(t *testing.T, db *mongo.Database, userID primitive.ObjectID, courseID string, active bool) {
	t.Helper()
	e := models.CourseEnrollment{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		CourseID: courseID,
		IsActive: active,
		Created:  time.Now(),
	}
	if _, err := db.Collection("course_enrollments").InsertOne(context.Background(), e); err != nil {
		t.Fatalf("insert enrollment: %v", err)
	}
}

// GrantCourseRole grants role on one course.
func GrantCourseRole(t *testing.T, db *mongo.Database, userID primitive.ObjectID, role, courseID, org string) {
	t.Helper()
	grant := models.CourseAccessRole{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Role:     role,
		CourseID: courseID,
		Org:      org,
	}
	if _, err := db.Collection("course_access_roles").InsertOne(context.Background(), grant); err != nil {
		t.Fatalf("insert role grant: %v", err)
	}
}

// GrantOrgRole grants role across every course in an org.
func GrantOrgRole(t *testing.T, db *mongo.Database, userID primitive.ObjectID, role, org string) {
	t.Helper()
	GrantCourseRole(t, db, userID, role, "", org)
}
