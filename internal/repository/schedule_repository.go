package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

// SlotCheck проверяет кандидата против активных слотов того же тренера в тот же день.
// Вызывается внутри транзакции, когда строка тренера уже заблокирована.
type SlotCheck func(existing []*model.TrainerSlot) error

const slotColumns = `ts.id, ts.trainer_id, ts.day_of_week, ts.start_time, ts.end_time,
	ts.slot_type, ts.max_slots, ts.is_active, ts.created_by, ts.created_at`

// порядок дней как в неделе, а не по алфавиту
const weekdayOrder = `array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], ts.day_of_week)`

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

func scanSlot(row pgx.Row, extra ...any) (*model.TrainerSlot, error) {
	var (
		slot       model.TrainerSlot
		day        string
		start, end pgtype.Time
	)
	dest := []any{
		&slot.ID,
		&slot.TrainerID,
		&day,
		&start,
		&end,
		&slot.SlotType,
		&slot.MaxSlots,
		&slot.IsActive,
		&slot.CreatedBy,
		&slot.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	slot.DayOfWeek = schedule.Weekday(day)
	slot.StartTime = base.TimeOfDay(start)
	slot.EndTime = base.TimeOfDay(end)
	return &slot, nil
}

func collectSlots(rows pgx.Rows, withTrainer bool) ([]*model.TrainerSlot, error) {
	defer rows.Close()

	var slots []*model.TrainerSlot
	for rows.Next() {
		var (
			slot *model.TrainerSlot
			err  error
		)
		if withTrainer {
			var name, specialization string
			slot, err = scanSlot(rows, &name, &specialization)
			if slot != nil {
				slot.TrainerName = name
				slot.Specialization = specialization
			}
		} else {
			slot, err = scanSlot(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// ListPersonal возвращает персональные слоты всех тренеров с пн по вс и по времени начала
func (r *ScheduleRepository) ListPersonal(ctx context.Context) ([]*model.TrainerSlot, error) {
	query := `
		SELECT ` + slotColumns + `, u.name, t.specialization
		FROM trainer_schedule ts
		JOIN trainers t ON ts.trainer_id = t.id
		JOIN users u ON t.user_id = u.id
		WHERE ts.slot_type = 'personal'
		ORDER BY ` + weekdayOrder + `, ts.start_time
	`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list personal slots: %w", err)
	}
	return collectSlots(rows, true)
}

// ListByTrainer возвращает все слоты тренера
func (r *ScheduleRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]*model.TrainerSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM trainer_schedule ts
		WHERE ts.trainer_id = $1
		ORDER BY ` + weekdayOrder + `, ts.start_time
	`

	rows, err := r.Pool().Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list trainer slots: %w", err)
	}
	return collectSlots(rows, false)
}

func lockTrainer(ctx context.Context, tx pgx.Tx, trainerID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM trainers WHERE id = $1 FOR UPDATE`, trainerID).Scan(&id)
	if err != nil {
		if base.IsNotFound(err) {
			return model.ErrTrainerNotFound
		}
		return fmt.Errorf("lock trainer: %w", err)
	}
	return nil
}

func activeSlotsForDay(ctx context.Context, tx pgx.Tx, trainerID int64, day schedule.Weekday) ([]*model.TrainerSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM trainer_schedule ts
		WHERE ts.trainer_id = $1 AND ts.day_of_week = $2 AND ts.is_active = TRUE
	`

	rows, err := tx.Query(ctx, query, trainerID, string(day))
	if err != nil {
		return nil, fmt.Errorf("load day slots: %w", err)
	}
	return collectSlots(rows, false)
}

// CreateChecked блокирует тренера, проверяет слот через check и сохраняет его.
// Параллельные создания для одного тренера выполняются по очереди.
func (r *ScheduleRepository) CreateChecked(ctx context.Context, slot *model.TrainerSlot, check SlotCheck) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := lockTrainer(ctx, tx, slot.TrainerID); err != nil {
			return err
		}

		existing, err := activeSlotsForDay(ctx, tx, slot.TrainerID, slot.DayOfWeek)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}

		query := `
			INSERT INTO trainer_schedule (trainer_id, day_of_week, start_time, end_time, slot_type, max_slots, is_active, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`
		err = tx.QueryRow(
			ctx, query,
			slot.TrainerID,
			string(slot.DayOfWeek),
			base.TimeParam(slot.StartTime),
			base.TimeParam(slot.EndTime),
			slot.SlotType,
			slot.MaxSlots,
			slot.IsActive,
			slot.CreatedBy,
		).Scan(&slot.ID, &slot.CreatedAt)
		if err != nil {
			return fmt.Errorf("create slot: %w", err)
		}
		return nil
	})
}

// UpdateChecked блокирует слот и целевого тренера, проверяет новые значения через check
// и обновляет слот. Порядок блокировок: слот, затем тренер.
func (r *ScheduleRepository) UpdateChecked(ctx context.Context, slot *model.TrainerSlot, check SlotCheck) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		var (
			createdBy *int64
			createdAt pgtype.Timestamptz
		)
		err := tx.QueryRow(ctx,
			`SELECT created_by, created_at FROM trainer_schedule WHERE id = $1 AND slot_type = 'personal' FOR UPDATE`,
			slot.ID,
		).Scan(&createdBy, &createdAt)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrSlotNotFound
			}
			return fmt.Errorf("lock slot: %w", err)
		}
		slot.CreatedBy = createdBy
		slot.CreatedAt = createdAt.Time

		if err := lockTrainer(ctx, tx, slot.TrainerID); err != nil {
			return err
		}

		existing, err := activeSlotsForDay(ctx, tx, slot.TrainerID, slot.DayOfWeek)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE trainer_schedule
			SET trainer_id = $1, day_of_week = $2, start_time = $3, end_time = $4, max_slots = $5, is_active = $6
			WHERE id = $7
		`,
			slot.TrainerID,
			string(slot.DayOfWeek),
			base.TimeParam(slot.StartTime),
			base.TimeParam(slot.EndTime),
			slot.MaxSlots,
			slot.IsActive,
			slot.ID,
		)
		if err != nil {
			return fmt.Errorf("update slot: %w", err)
		}
		return nil
	})
}

// Delete удаляет слот, false если его нет
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := base.ExecAffected(ctx, r.Pool(), `DELETE FROM trainer_schedule WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}
	return affected > 0, nil
}

// ListAvailableTrainers возвращает активных тренеров, у которых нет активного слота
// в день day, содержащего момент at.
func (r *ScheduleRepository) ListAvailableTrainers(ctx context.Context, day schedule.Weekday, at schedule.TimeOfDay) ([]*model.AvailableTrainer, error) {
	query := `
		SELECT t.id, u.name, t.specialization
		FROM trainers t
		JOIN users u ON t.user_id = u.id
		WHERE t.is_active = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM trainer_schedule ts
			WHERE ts.trainer_id = t.id
			  AND ts.day_of_week = $1
			  AND ts.is_active = TRUE
			  AND ts.start_time <= $2 AND $2 < ts.end_time
		  )
		ORDER BY u.name
	`

	rows, err := r.Pool().Query(ctx, query, string(day), base.TimeParam(at))
	if err != nil {
		return nil, fmt.Errorf("list available trainers: %w", err)
	}
	defer rows.Close()

	var trainers []*model.AvailableTrainer
	for rows.Next() {
		var t model.AvailableTrainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialization); err != nil {
			return nil, fmt.Errorf("scan available trainer: %w", err)
		}
		trainers = append(trainers, &t)
	}
	return trainers, rows.Err()
}
