package teacherdash

import (
	"testing"
	"time"

	"github.com/chalix/coursehub/internal/domain/models"
)

func ts(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestScheduleLabel(t *testing.T) {
	tests := []struct {
		name   string
		course models.CourseOverview
		want   string
	}{
		{
			"start and end",
			models.CourseOverview{Start: ts(2026, 9, 1), End: ts(2026, 12, 20)},
			"Thời gian: 01/09/2026 - 20/12/2026",
		},
		{
			"start only",
			models.CourseOverview{Start: ts(2026, 9, 1)},
			"Bắt đầu: 01/09/2026",
		},
		{
			"enrollment start only",
			models.CourseOverview{EnrollmentStart: ts(2026, 8, 15)},
			"Đăng ký từ: 15/08/2026",
		},
		{
			"no dates",
			models.CourseOverview{},
			"Thời gian: Chưa xác định",
		},
		{
			// End without start cannot render a range.
			"end only",
			models.CourseOverview{End: ts(2026, 12, 20)},
			"Thời gian: Chưa xác định",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduleLabel(&tt.course); got != tt.want {
				t.Errorf("ScheduleLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortCards(t *testing.T) {
	mk := func(id string, start, enrollStart *time.Time) CourseCard {
		c := &models.CourseOverview{ID: id, Start: start, EnrollmentStart: enrollStart}
		return newCourseCard(c, models.RoleStaff, 0)
	}

	cards := []CourseCard{
		mk("course-v1:X+undated2+2026", nil, nil),
		mk("course-v1:X+old+2026", ts(2025, 1, 1), nil),
		mk("course-v1:X+new+2026", ts(2026, 9, 1), nil),
		mk("course-v1:X+enrollonly+2026", nil, ts(2026, 10, 1)),
		mk("course-v1:X+undated1+2026", nil, nil),
		mk("course-v1:X+tie+2026", ts(2026, 9, 1), nil),
	}
	sortCards(cards)

	want := []string{
		"course-v1:X+enrollonly+2026", // 2026-10-01
		"course-v1:X+new+2026",        // 2026-09-01, tie broken by id
		"course-v1:X+tie+2026",        // 2026-09-01
		"course-v1:X+old+2026",        // 2025-01-01
		"course-v1:X+undated1+2026",   // undated, id order
		"course-v1:X+undated2+2026",
	}
	for i, id := range want {
		if cards[i].ID != id {
			t.Errorf("cards[%d] = %s, want %s", i, cards[i].ID, id)
		}
	}
}

func TestSortCards_StartBeatsEnrollmentStart(t *testing.T) {
	// A course's start date is its sort key even when enrollment
	// opened earlier.
	mk := func(id string, start, enrollStart *time.Time) CourseCard {
		c := &models.CourseOverview{ID: id, Start: start, EnrollmentStart: enrollStart}
		return newCourseCard(c, models.RoleInstructor, 0)
	}
	cards := []CourseCard{
		mk("course-v1:X+a+2026", ts(2026, 1, 1), ts(2026, 12, 1)),
		mk("course-v1:X+b+2026", ts(2026, 6, 1), nil),
	}
	sortCards(cards)
	if cards[0].ID != "course-v1:X+b+2026" {
		t.Errorf("cards[0] = %s, want the later start date first", cards[0].ID)
	}
}
