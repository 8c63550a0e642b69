// Package schedule содержит правила допустимости персональных слотов тренера.
// Все функции чистые: не логируют, не обращаются к БД и безопасны для конкурентного вызова.
package schedule

import (
	"errors"
	"time"
)

// MinSlotDuration минимальная длительность персонального слота
const MinSlotDuration = 5 * time.Hour

// Ошибки валидации слота
var (
	ErrDurationTooShort = errors.New("slot duration must be at least 5 hours")
	ErrOverlap          = errors.New("slot overlaps an existing slot")
)

// Slot интервал [Start, End) тренера в конкретный день недели
type Slot struct {
	ID        int64
	TrainerID int64
	Day       Weekday
	Start     TimeOfDay
	End       TimeOfDay
}

// Duration длительность слота в пределах одних суток
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ValidateDuration проверяет что end - start >= 5 часов.
// end <= start даёт ту же ошибку.
func ValidateDuration(start, end TimeOfDay) error {
	if end.Sub(start) < MinSlotDuration {
		return ErrDurationTooShort
	}
	return nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [s1,e1) и [s2,e2).
// Касание границ пересечением не считается.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

// ValidateNoOverlap проверяет что кандидат не пересекается с existing.
// existing уже отфильтрованы по тренеру и дню; слот с excludeID пропускается.
func ValidateNoOverlap(candidate Slot, existing []Slot, excludeID *int64) error {
	for _, s := range existing {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, s.Start, s.End) {
			return ErrOverlap
		}
	}
	return nil
}

// ValidateSlot сначала проверяет длительность, затем пересечения
func ValidateSlot(candidate Slot, existing []Slot, excludeID *int64) error {
	if err := ValidateDuration(candidate.Start, candidate.End); err != nil {
		return err
	}
	return ValidateNoOverlap(candidate, existing, excludeID)
}
