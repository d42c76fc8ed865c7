package access

import (
	"context"
	"errors"
	"testing"

	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRoles returns canned roles per course id.
type fakeRoles struct {
	byCourse map[string][]string
	err      error
}

func (f fakeRoles) RolesForCourse(ctx context.Context, userID primitive.ObjectID, courseID, org string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCourse[courseID], nil
}

func publicCourse(id string) *models.CourseOverview {
	return &models.CourseOverview{ID: id, Org: "ChalixX", CatalogVisibility: models.CatalogVisibilityBoth}
}

func staffOnlyCourse(id string) *models.CourseOverview {
	c := publicCourse(id)
	c.VisibleToStaffOnly = true
	return c
}

func TestCanLoad_PublicCourse(t *testing.T) {
	course := publicCourse("course-v1:ChalixX+CH101+2026")
	roles := fakeRoles{}

	for _, v := range []Viewer{
		Anonymous,
		{ID: primitive.NewObjectID(), Authenticated: true},
	} {
		ok, err := v.CanLoad(context.Background(), roles, course)
		if err != nil {
			t.Fatalf("CanLoad failed: %v", err)
		}
		if !ok {
			t.Errorf("viewer %+v must load a public course", v)
		}
	}
}

func TestCanLoad_StaffOnlyCourse(t *testing.T) {
	const id = "course-v1:ChalixX+CH101+2026"
	course := staffOnlyCourse(id)
	teacherID := primitive.NewObjectID()
	roles := fakeRoles{byCourse: map[string][]string{id: {models.RoleStaff}}}

	tests := []struct {
		name   string
		viewer Viewer
		roles  RoleSource
		want   bool
	}{
		{"anonymous", Anonymous, fakeRoles{}, false},
		{"plain student", Viewer{ID: primitive.NewObjectID(), Authenticated: true}, fakeRoles{}, false},
		{"course staff", Viewer{ID: teacherID, Authenticated: true}, roles, true},
		{"superuser", Viewer{ID: primitive.NewObjectID(), Authenticated: true, IsSuperuser: true}, fakeRoles{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.viewer.CanLoad(context.Background(), tt.roles, course)
			if err != nil {
				t.Fatalf("CanLoad failed: %v", err)
			}
			if ok != tt.want {
				t.Errorf("CanLoad = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestCanLoad_PropagatesError(t *testing.T) {
	course := staffOnlyCourse("course-v1:ChalixX+CH101+2026")
	v := Viewer{ID: primitive.NewObjectID(), Authenticated: true}
	wantErr := errors.New("connection reset")

	_, err := v.CanLoad(context.Background(), fakeRoles{err: wantErr}, course)
	if !errors.Is(err, wantErr) {
		t.Errorf("CanLoad error = %v, want %v", err, wantErr)
	}
}

func TestTeachingRole_InstructorWins(t *testing.T) {
	const id = "course-v1:ChalixX+CH101+2026"
	course := publicCourse(id)
	userID := primitive.NewObjectID()

	tests := []struct {
		name  string
		held  []string
		want  string
	}{
		{"none", nil, ""},
		{"staff only", []string{models.RoleStaff}, models.RoleStaff},
		{"instructor only", []string{models.RoleInstructor}, models.RoleInstructor},
		{"both, staff listed first", []string{models.RoleStaff, models.RoleInstructor}, models.RoleInstructor},
		{"unknown roles ignored", []string{"beta_testers"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := fakeRoles{byCourse: map[string][]string{id: tt.held}}
			got, err := TeachingRole(context.Background(), roles, userID, course)
			if err != nil {
				t.Fatalf("TeachingRole failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("TeachingRole = %q, want %q", got, tt.want)
			}
		})
	}
}
