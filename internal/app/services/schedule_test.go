package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func scheduleCourse() *models.Course {
	start := date(2025, time.March, 3)
	end := date(2025, time.March, 14)
	return &models.Course{
		StartDate:    &start,
		EndDate:      &end,
		ScheduleDays: []string{"monday", "wednesday"},
		ScheduleTime: "10:00",
		Duration:     "2 horas",
	}
}

func TestParseDurationHours(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     int
	}{
		{"spanish free text", "2 horas", 2},
		{"compact", "3h", 3},
		{"bare number", "4", 4},
		{"no leading number", "dos horas", DefaultDurationHours},
		{"empty", "", DefaultDurationHours},
		{"zero", "0 horas", DefaultDurationHours},
		{"leading whitespace", "  2 horas", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationHours(tt.duration))
		})
	}
}

func TestExpandSchedule(t *testing.T) {
	slots, err := ExpandSchedule(scheduleCourse())
	require.NoError(t, err)
	require.Len(t, slots, 4)

	wantDates := []time.Time{
		date(2025, time.March, 3),
		date(2025, time.March, 5),
		date(2025, time.March, 10),
		date(2025, time.March, 12),
	}
	for i, slot := range slots {
		assert.True(t, slot.Date.Equal(wantDates[i]), "slot %d: got %s want %s", i, slot.Date, wantDates[i])
		assert.Equal(t, "10:00", slot.StartTime)
		assert.Equal(t, "12:00", slot.EndTime)
	}
}

func TestExpandScheduleDeterministic(t *testing.T) {
	course := scheduleCourse()

	first, err := ExpandSchedule(course)
	require.NoError(t, err)
	second, err := ExpandSchedule(course)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandScheduleBoundaryDatesIncluded(t *testing.T) {
	course := scheduleCourse()
	start := date(2025, time.March, 3)  // Monday
	end := date(2025, time.March, 10)   // Monday
	course.StartDate = &start
	course.EndDate = &end
	course.ScheduleDays = []string{"monday"}

	slots, err := ExpandSchedule(course)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Date.Equal(start))
	assert.True(t, slots[1].Date.Equal(end))
}

func TestExpandScheduleNoMatchingDates(t *testing.T) {
	course := scheduleCourse()
	// 2025-03-03 .. 2025-03-07 holds no Saturday or Sunday
	start := date(2025, time.March, 3)
	end := date(2025, time.March, 7)
	course.StartDate = &start
	course.EndDate = &end
	course.ScheduleDays = []string{"saturday", "sunday"}

	slots, err := ExpandSchedule(course)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExpandScheduleMissingRule(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Course)
	}{
		{"no start date", func(c *models.Course) { c.StartDate = nil }},
		{"no end date", func(c *models.Course) { c.EndDate = nil }},
		{"no weekdays", func(c *models.Course) { c.ScheduleDays = nil }},
		{"no time", func(c *models.Course) { c.ScheduleTime = "" }},
		{"malformed time", func(c *models.Course) { c.ScheduleTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := scheduleCourse()
			tt.mutate(course)

			_, err := ExpandSchedule(course)
			assert.ErrorIs(t, err, apperrors.ErrMissingSchedule)
		})
	}
}

func TestExpandScheduleDurationDefaultsToTwoHours(t *testing.T) {
	course := scheduleCourse()
	course.Duration = "taller intensivo"

	slots, err := ExpandSchedule(course)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "12:00", slots[0].EndTime)
}

func TestExpandScheduleWrapsPastMidnight(t *testing.T) {
	course := scheduleCourse()
	course.ScheduleTime = "23:30"
	course.Duration = "2 horas"

	slots, err := ExpandSchedule(course)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "23:30", slots[0].StartTime)
	assert.Equal(t, "01:30", slots[0].EndTime)
}
