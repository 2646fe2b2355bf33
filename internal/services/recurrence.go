package services

import (
	"time"

	"condo_manager/internal/models"
)

// NextOccurrence projects the occurrence that follows from.
// DAILY adds one day, WEEKLY seven days, MONTHLY one calendar month.
func NextOccurrence(from time.Time, pattern string) time.Time {
	switch models.RecurrencePattern(pattern) {
	case models.RecurrenceDaily:
		return from.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return from.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return from.AddDate(0, 1, 0)
	}
	return from
}

// ValidRecurrencePattern reports whether pattern names a known cadence.
func ValidRecurrencePattern(pattern string) bool {
	switch models.RecurrencePattern(pattern) {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
		return true
	}
	return false
}

// DayStart truncates t to local midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last instant before the next local midnight.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MinutesSinceMidnight returns t's wall-clock offset in minutes.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CheckInStatus classifies a check-in time. Exactly the work-start
// minute still counts as PRESENT.
func CheckInStatus(checkIn time.Time, workStartMinutes int) models.AttendanceStatus {
	if MinutesSinceMidnight(checkIn) > workStartMinutes {
		return models.AttendanceLate
	}
	return models.AttendancePresent
}
