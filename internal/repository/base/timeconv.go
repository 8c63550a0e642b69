package base

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

// TimeParam переводит время суток в параметр колонки TIME
func TimeParam(t schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{
		Microseconds: int64(t) * int64(time.Minute/time.Microsecond),
		Valid:        true,
	}
}

// TimeOfDay переводит значение колонки TIME во время суток, секунды отбрасываются
func TimeOfDay(t pgtype.Time) schedule.TimeOfDay {
	return schedule.TimeOfDay(t.Microseconds / int64(time.Minute/time.Microsecond))
}

// Weekdays переводит text[] в дни недели
func Weekdays(raw []string) []schedule.Weekday {
	days := make([]schedule.Weekday, 0, len(raw))
	for _, d := range raw {
		days = append(days, schedule.Weekday(d))
	}
	return days
}

// WeekdayStrings переводит дни недели в text[]
func WeekdayStrings(days []schedule.Weekday) []string {
	raw := make([]string, 0, len(days))
	for _, d := range days {
		raw = append(raw, string(d))
	}
	return raw
}
