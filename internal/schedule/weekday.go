package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday день недели не из monday..sunday
var ErrInvalidWeekday = errors.New("day must be one of monday..sunday")

// Weekday ключ дня недели
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays все дни в порядке отображения (с понедельника)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday разбирает ключ дня недели без учёта регистра
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return d, nil
}

// Valid проверяет что ключ известен
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Index возвращает позицию дня в неделе (0 - понедельник), -1 для неизвестного
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// DayOfWeekFromDate возвращает ключ дня недели для календарной даты
func DayOfWeekFromDate(date time.Time) Weekday {
	if date.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekdays[int(date.Weekday())-1]
}
