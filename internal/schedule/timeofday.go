package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime время не в формате HH:MM или HH:MM:SS
var ErrInvalidTime = errors.New("time must be in HH:MM or HH:MM:SS format")

const minutesPerDay = 24 * 60

// TimeOfDay время суток в минутах от полуночи (секунды отбрасываются)
type TimeOfDay int

// NewTimeOfDay создаёт время суток из часов и минут
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay разбирает "HH:MM" или "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		values[i] = v
	}

	return NewTimeOfDay(values[0], values[1]), nil
}

// Hour возвращает час
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуту
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Valid проверяет что время внутри суток
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// Sub возвращает длительность t - u без перехода через полночь
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(u)) * time.Minute
}

// String форматирует как HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

// Short форматирует как HH:MM
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON кодирует время строкой HH:MM:SS
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON принимает HH:MM или HH:MM:SS
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTime, string(data))
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
