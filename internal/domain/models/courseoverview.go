// internal/domain/models/courseoverview.go
package models

import "time"

// Catalog visibility values for CourseOverview.
const (
	CatalogVisibilityBoth  = "both"  // listed in catalog and about page visible
	CatalogVisibilityAbout = "about" // about page only, not listed
	CatalogVisibilityNone  = "none"  // hidden entirely
)

// CourseOverview is the read-mostly catalog projection of a course.
// The _id is the course key string (e.g. "course-v1:ChalixX+CS101+2026_T1").
//
// This application only filters, joins, and sorts overviews; the course
// content store owns the underlying data.
type CourseOverview struct {
	ID                 string     `bson:"_id" json:"id"`
	DisplayName        string     `bson:"display_name" json:"display_name"`
	DisplayNameCI      string     `bson:"display_name_ci" json:"-"` // lowercase, diacritics-stripped
	ShortDescription   string     `bson:"short_description,omitempty" json:"short_description"`
	Overview           string     `bson:"overview,omitempty" json:"-"` // long description, HTML
	CatalogVisibility  string     `bson:"catalog_visibility" json:"-"`
	VisibleToStaffOnly bool       `bson:"visible_to_staff_only,omitempty" json:"-"`
	Start              *time.Time `bson:"start,omitempty" json:"start,omitempty"`
	End                *time.Time `bson:"end,omitempty" json:"end,omitempty"`
	EnrollmentStart    *time.Time `bson:"enrollment_start,omitempty" json:"enrollment_start,omitempty"`
	EnrollmentEnd      *time.Time `bson:"enrollment_end,omitempty" json:"enrollment_end,omitempty"`
	CourseImageURL     string     `bson:"course_image_url,omitempty" json:"course_image_url"`
	Org                string     `bson:"org" json:"org"`
	Number             string     `bson:"number" json:"number"`
	Modified           time.Time  `bson:"modified" json:"modified"`
}

// HasStarted reports whether the course start date has passed.
// A course with no start date is considered not started.
func (c *CourseOverview) HasStarted() bool {
	return c.Start != nil && c.Start.Before(time.Now())
}

// HasEnded reports whether the course end date has passed.
// A course with no end date never ends.
func (c *CourseOverview) HasEnded() bool {
	return c.End != nil && c.End.Before(time.Now())
}
