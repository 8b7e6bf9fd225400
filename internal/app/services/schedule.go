package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
)

// DefaultDurationHours is assumed when a course duration carries no
// usable leading number.
const DefaultDurationHours = 2

// SessionSlot is one concrete occurrence produced by expanding a
// course's recurrence rule.
type SessionSlot struct {
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// ParseDurationHours extracts the leading whole number of hours from a
// free-text duration such as "2 horas" or "3h". Anything without a
// positive leading number falls back to DefaultDurationHours.
func ParseDurationHours(duration string) int {
	trimmed := strings.TrimSpace(duration)

	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return DefaultDurationHours
	}

	hours, err := strconv.Atoi(trimmed[:end])
	if err != nil || hours <= 0 {
		return DefaultDurationHours
	}
	return hours
}

// ExpandSchedule turns a course's recurrence rule into the ordered
// list of concrete session slots between its start and end dates,
// both inclusive. It is a pure function of the course: expanding the
// same course twice yields the same slots.
//
// A course without dates, weekdays or a start time cannot be expanded
// and yields ErrMissingSchedule. A complete rule that matches no date
// in the range yields an empty slice, which the caller reports
// separately.
func ExpandSchedule(course *models.Course) ([]SessionSlot, error) {
	if course.StartDate == nil || course.EndDate == nil ||
		course.ScheduleTime == "" || len(course.ScheduleDays) == 0 {
		return nil, apperrors.ErrMissingSchedule
	}

	startHour, startMinute, err := helpers.ParseClock(course.ScheduleTime)
	if err != nil {
		return nil, apperrors.ErrMissingSchedule
	}

	wanted := make(map[string]struct{}, len(course.ScheduleDays))
	for _, day := range course.ScheduleDays {
		wanted[strings.ToLower(strings.TrimSpace(day))] = struct{}{}
	}

	// Sessions wrap past midnight rather than overflow the clock
	endHour := (startHour + ParseDurationHours(course.Duration)) % 24
	startTime := helpers.FormatClock(startHour, startMinute)
	endTime := helpers.FormatClock(endHour, startMinute)

	start := course.StartDate.Truncate(24 * time.Hour)
	end := course.EndDate.Truncate(24 * time.Hour)

	var slots []SessionSlot
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		weekday := strings.ToLower(date.Weekday().String())
		if _, ok := wanted[weekday]; !ok {
			continue
		}
		slots = append(slots, SessionSlot{
			Date:      date,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	return slots, nil
}
