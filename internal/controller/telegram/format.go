package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

var dayNames = map[schedule.Weekday]string{
	schedule.Monday:    "Понедельник",
	schedule.Tuesday:   "Вторник",
	schedule.Wednesday: "Среда",
	schedule.Thursday:  "Четверг",
	schedule.Friday:    "Пятница",
	schedule.Saturday:  "Суббота",
	schedule.Sunday:    "Воскресенье",
}

var dayShortNames = map[schedule.Weekday]string{
	schedule.Monday:    "Пн",
	schedule.Tuesday:   "Вт",
	schedule.Wednesday: "Ср",
	schedule.Thursday:  "Чт",
	schedule.Friday:    "Пт",
	schedule.Saturday:  "Сб",
	schedule.Sunday:    "Вс",
}

var roleNames = map[model.Role]string{
	model.RoleAdmin:   "администратор",
	model.RoleTrainer: "тренер",
	model.RoleClient:  "клиент",
}

func welcomeText(user *model.User) string {
	return fmt.Sprintf("✅ Аккаунт привязан!\n\n👤 %s\nРоль: %s\n\nКоманды: /help", user.Name, roleNames[user.Role])
}

// formatPrice печатает цену с разделителем тысяч: 12500 -> "12 500 ₽"
func formatPrice(price float64) string {
	rub := strconv.FormatInt(int64(price), 10)
	var b strings.Builder
	for i, r := range rub {
		if i > 0 && (len(rub)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	if kop := int64(price*100+0.5) % 100; kop != 0 {
		fmt.Fprintf(&b, ",%02d", kop)
	}
	return b.String() + " ₽"
}

func formatTrainers(trainers []*model.TrainerProfile) string {
	if len(trainers) == 0 {
		return "🏋️ Тренеров пока нет."
	}

	var b strings.Builder
	b.WriteString("🏋️ Наши тренеры:\n")
	for _, t := range trainers {
		fmt.Fprintf(&b, "\n<b>%s</b>\n", escape(t.Name))
		if t.Specialization != "" {
			fmt.Fprintf(&b, "Специализация: %s\n", escape(t.Specialization))
		}
		fmt.Fprintf(&b, "Стаж: %d лет, рейтинг %.1f\n", t.Experience, t.Rating)
	}
	return b.String()
}

func formatSubscriptions(subs []*model.SubscriptionType) string {
	if len(subs) == 0 {
		return "🎫 Абонементов пока нет."
	}

	var b strings.Builder
	b.WriteString("🎫 Абонементы:\n")
	for _, s := range subs {
		fmt.Fprintf(&b, "\n<b>%s</b> · %s\n", escape(s.Name), formatPrice(s.Price))
		if s.VisitsCount != nil {
			fmt.Fprintf(&b, "%d посещений за %d дн.\n", *s.VisitsCount, s.DurationDays)
		} else {
			fmt.Fprintf(&b, "Безлимит на %d дн.\n", s.DurationDays)
		}
		if s.Description != "" {
			b.WriteString(escape(s.Description) + "\n")
		}
	}
	return b.String()
}

func formatSessions(sessions []*model.GroupSession) string {
	if len(sessions) == 0 {
		return "👥 Групповых занятий пока нет."
	}

	var b strings.Builder
	b.WriteString("👥 Групповые занятия:\n")
	for _, s := range sessions {
		fmt.Fprintf(&b, "\n<b>%s</b>\n%s в %s, %d мин\n", escape(s.Name), formatDays(s.Days), s.Time.Short(), s.Duration)
		if s.TrainerName != nil {
			fmt.Fprintf(&b, "Тренер: %s\n", escape(*s.TrainerName))
		}
		fmt.Fprintf(&b, "Мест: %d/%d\n", s.CurrentParticipants, s.MaxParticipants)
	}
	return b.String()
}

func formatDays(days []schedule.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, dayShortNames[d])
	}
	return strings.Join(names, ", ")
}

// formatSchedule текстовая версия недельного расписания тренера с нагрузкой
func formatSchedule(ts *service.TrainerSchedule) string {
	var b strings.Builder
	b.WriteString("🗓 Ваше расписание персональных тренировок\n")

	if len(ts.Slots) == 0 {
		b.WriteString("\nСлотов пока нет. Расписание составляет администратор.")
		return b.String()
	}

	for _, day := range schedule.Weekdays {
		var lines []string
		for _, slot := range ts.Slots {
			if slot.DayOfWeek != day {
				continue
			}
			line := fmt.Sprintf("  %s-%s, мест: %d", slot.StartTime.Short(), slot.EndTime.Short(), slot.MaxSlots)
			if !slot.IsActive {
				line += " (неактивен)"
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			fmt.Fprintf(&b, "\n<b>%s</b>\n%s\n", dayNames[day], strings.Join(lines, "\n"))
		}
	}

	fmt.Fprintf(&b, "\n📊 Нагрузка: %d дн. в неделю, %.1f ч всего, в среднем %.1f ч в день",
		ts.Load.DaysPerWeek, ts.Load.TotalHours, ts.Load.AvgHoursPerDay)
	fmt.Fprintf(&b, "\nРекомендуется: %d дня по %.0f ч", schedule.RecommendedDaysPerWeek, schedule.RecommendedHoursPerDay)
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
