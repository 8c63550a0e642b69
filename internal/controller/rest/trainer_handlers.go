package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/service"
)

type trainerRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Phone          *string `json:"phone"`
	Experience     int     `json:"experience"`
	Specialization string  `json:"specialization"`
	Bio            string  `json:"bio"`
	IsActive       *bool   `json:"is_active"`
}

func (r trainerRequest) input() service.TrainerInput {
	return service.TrainerInput{
		Name:           r.Name,
		Email:          r.Email,
		Password:       r.Password,
		Phone:          r.Phone,
		Experience:     r.Experience,
		Specialization: r.Specialization,
		Bio:            r.Bio,
		IsActive:       r.IsActive,
	}
}

func (h *Handler) listTrainers(c *gin.Context) {
	trainers, err := h.svc.Trainers.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"trainers": trainers})
}

func (h *Handler) createTrainer(c *gin.Context) {
	var req trainerRequest
	if !bind(c, &req) {
		return
	}

	trainer, err := h.svc.Trainers.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Тренер успешно создан", gin.H{"trainer": trainer})
}

func (h *Handler) updateTrainer(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req trainerRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.Trainers.Update(c.Request.Context(), id, req.input()); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Тренер успешно обновлен", nil)
}

func (h *Handler) deleteTrainer(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.svc.Trainers.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Тренер успешно удален", nil)
}

func (h *Handler) trainerSessions(c *gin.Context) {
	sessions, err := h.svc.Classes.ListTrainerSessions(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"sessions": sessions})
}
