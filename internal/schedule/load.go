package schedule

// Ориентиры нагрузки, которые показываются администратору.
// Они не проверяются при сохранении слотов.
const (
	RecommendedDaysPerWeek = 3
	RecommendedHoursPerDay = 5.0
)

// Load сводка недельной нагрузки тренера
type Load struct {
	DaysPerWeek    int     `json:"days_per_week"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}

// ComputeLoad считает число рабочих дней и среднюю длительность рабочего дня
func ComputeLoad(slots []Slot) Load {
	hoursByDay := make(map[Weekday]float64)
	var total float64
	for _, s := range slots {
		h := s.Duration().Hours()
		hoursByDay[s.Day] += h
		total += h
	}

	load := Load{
		DaysPerWeek: len(hoursByDay),
		TotalHours:  total,
	}
	if load.DaysPerWeek > 0 {
		load.AvgHoursPerDay = total / float64(load.DaysPerWeek)
	}
	return load
}
