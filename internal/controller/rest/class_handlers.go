package rest

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/service"
)

// dayList принимает дни массивом ["monday","friday"] или строкой "monday,friday"
type dayList []string

func (d *dayList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*d = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*d = nil
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*d = append(*d, part)
		}
	}
	return nil
}

type classTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	IsActive    *bool  `json:"is_active"`
}

func (r classTypeRequest) input() service.ClassTypeInput {
	return service.ClassTypeInput{
		Name:        r.Name,
		Description: r.Description,
		Difficulty:  r.Difficulty,
		IsActive:    r.IsActive,
	}
}

type sessionRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Days            dayList `json:"days"`
	Time            string  `json:"time"`
	Duration        int     `json:"duration"`
	MaxParticipants int     `json:"max_participants"`
	TrainerID       *int64  `json:"trainer_id"`
	IsActive        *bool   `json:"is_active"`
}

func (r sessionRequest) input() service.SessionInput {
	return service.SessionInput{
		Name:            r.Name,
		Description:     r.Description,
		Days:            r.Days,
		Time:            r.Time,
		Duration:        r.Duration,
		MaxParticipants: r.MaxParticipants,
		TrainerID:       r.TrainerID,
		IsActive:        r.IsActive,
	}
}

func (h *Handler) listClassTypes(c *gin.Context) {
	types, err := h.svc.Classes.ListClassTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"classTypes": types})
}

func (h *Handler) createClassType(c *gin.Context) {
	var req classTypeRequest
	if !bind(c, &req) {
		return
	}

	ct, err := h.svc.Classes.CreateClassType(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Тип занятия успешно создан", gin.H{"classType": ct})
}

func (h *Handler) updateClassType(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req classTypeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.Classes.UpdateClassType(c.Request.Context(), id, req.input()); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Тип занятия успешно обновлен", nil)
}

func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := h.svc.Classes.ListSessions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"sessions": sessions})
}

func (h *Handler) sessionSummaries(c *gin.Context) {
	sessions, err := h.svc.Classes.ListSessionSummaries(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"sessions": sessions})
}

func (h *Handler) getSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	gs, err := h.svc.Classes.GetSession(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"session": gs})
}

func (h *Handler) createSession(c *gin.Context) {
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	gs, err := h.svc.Classes.CreateSession(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Групповое занятие создано", gin.H{"sessionId": gs.ID, "session": gs})
}

func (h *Handler) updateSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.Classes.UpdateSession(c.Request.Context(), id, req.input()); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Занятие обновлено", nil)
}

func (h *Handler) deleteSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	gs, err := h.svc.Classes.DeleteSession(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Занятие удалено", gin.H{"session": gs})
}
