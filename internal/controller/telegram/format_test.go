package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "500 ₽", formatPrice(500))
	assert.Equal(t, "3 500 ₽", formatPrice(3500))
	assert.Equal(t, "125 000 ₽", formatPrice(125000))
	assert.Equal(t, "1 999,50 ₽", formatPrice(1999.5))
}

func TestFormatSubscriptions(t *testing.T) {
	visits := 8
	text := formatSubscriptions([]*model.SubscriptionType{
		{Name: "Безлимит", Price: 4500, DurationDays: 30},
		{Name: "8 занятий", Price: 3000, DurationDays: 30, VisitsCount: &visits, Description: "<утро>"},
	})

	assert.Contains(t, text, "<b>Безлимит</b> · 4 500 ₽")
	assert.Contains(t, text, "Безлимит на 30 дн.")
	assert.Contains(t, text, "8 посещений за 30 дн.")
	assert.Contains(t, text, "&lt;утро&gt;")

	assert.Equal(t, "🎫 Абонементов пока нет.", formatSubscriptions(nil))
}

func TestFormatSessions(t *testing.T) {
	trainer := "Иван"
	text := formatSessions([]*model.GroupSession{{
		Name:            "Йога",
		Days:            []schedule.Weekday{schedule.Monday, schedule.Wednesday},
		Time:            schedule.NewTimeOfDay(19, 0),
		Duration:        60,
		MaxParticipants: 12,
		TrainerName:     &trainer,
	}})

	assert.Contains(t, text, "Пн, Ср в 19:00, 60 мин")
	assert.Contains(t, text, "Тренер: Иван")
	assert.Contains(t, text, "Мест: 0/12")
}

func TestFormatSchedule(t *testing.T) {
	ts := &service.TrainerSchedule{
		Trainer: &model.TrainerProfile{Name: "Иван"},
		Slots: []*model.TrainerSlot{
			{DayOfWeek: schedule.Thursday, StartTime: schedule.NewTimeOfDay(9, 0), EndTime: schedule.NewTimeOfDay(14, 0), MaxSlots: 1, IsActive: true},
			{DayOfWeek: schedule.Monday, StartTime: schedule.NewTimeOfDay(8, 0), EndTime: schedule.NewTimeOfDay(13, 0), MaxSlots: 2},
		},
		Load: schedule.Load{DaysPerWeek: 1, TotalHours: 5, AvgHoursPerDay: 5},
	}

	text := formatSchedule(ts)

	assert.Contains(t, text, "08:00-13:00, мест: 2 (неактивен)")
	assert.Contains(t, text, "09:00-14:00, мест: 1")
	assert.Less(t, strings.Index(text, "Понедельник"), strings.Index(text, "Четверг"))
	assert.Contains(t, text, "1 дн. в неделю, 5.0 ч всего")

	empty := formatSchedule(&service.TrainerSchedule{})
	assert.Contains(t, empty, "Слотов пока нет")
}
