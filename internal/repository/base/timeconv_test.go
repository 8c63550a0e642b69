package base

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

func TestTimeRoundTrip(t *testing.T) {
	for _, v := range []schedule.TimeOfDay{0, schedule.NewTimeOfDay(8, 0), schedule.NewTimeOfDay(23, 59)} {
		p := TimeParam(v)
		assert.True(t, p.Valid)
		assert.Equal(t, v, TimeOfDay(p))
	}
}

func TestTimeOfDay_DropsSeconds(t *testing.T) {
	p := TimeParam(schedule.NewTimeOfDay(13, 0))
	p.Microseconds += 45 * 1_000_000

	assert.Equal(t, schedule.NewTimeOfDay(13, 0), TimeOfDay(p))
}

func TestWeekdays(t *testing.T) {
	days := []schedule.Weekday{schedule.Monday, schedule.Friday}

	assert.Equal(t, []string{"monday", "friday"}, WeekdayStrings(days))
	assert.Equal(t, days, Weekdays([]string{"monday", "friday"}))
}
