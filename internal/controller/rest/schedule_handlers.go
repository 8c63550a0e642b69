package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/service"
)

type slotRequest struct {
	TrainerID int64  `json:"trainer_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	MaxSlots  *int   `json:"max_slots"`
	IsActive  *bool  `json:"is_active"`
}

func (r slotRequest) input() service.SlotInput {
	return service.SlotInput{
		TrainerID: r.TrainerID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		MaxSlots:  r.MaxSlots,
		IsActive:  r.IsActive,
	}
}

func (h *Handler) listSlots(c *gin.Context) {
	slots, err := h.svc.Schedule.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"schedule": slots})
}

func (h *Handler) createSlot(c *gin.Context) {
	var req slotRequest
	if !bind(c, &req) {
		return
	}

	slot, err := h.svc.Schedule.Create(c.Request.Context(), currentClaims(c).UserID, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Персональный слот расписания создан", gin.H{"scheduleId": slot.ID, "slot": slot})
}

func (h *Handler) updateSlot(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req slotRequest
	if !bind(c, &req) {
		return
	}

	slot, err := h.svc.Schedule.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Персональный слот расписания обновлен", gin.H{"slot": slot})
}

func (h *Handler) deleteSlot(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.svc.Schedule.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Слот удален", nil)
}

func (h *Handler) availableTrainers(c *gin.Context) {
	trainers, err := h.svc.Schedule.AvailableTrainers(c.Request.Context(), c.Query("date"), c.Query("time"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"trainers": trainers})
}

func (h *Handler) trainerSchedule(c *gin.Context) {
	ts, err := h.svc.Schedule.ForTrainerUser(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"schedule": ts.Slots, "trainer": ts.Trainer, "load": ts.Load})
}
