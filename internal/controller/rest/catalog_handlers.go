package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/service"
)

func (h *Handler) publicTrainers(c *gin.Context) {
	trainers, err := h.svc.Trainers.ListPublic(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"trainers": trainers})
}

func (h *Handler) publicSubscriptions(c *gin.Context) {
	subs, err := h.svc.Subscriptions.ListPublic(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"subscriptions": subs})
}

func (h *Handler) publicSessions(c *gin.Context) {
	sessions, err := h.svc.Classes.ListPublicSessions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"sessions": sessions})
}

type subscriptionRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	VisitsCount  *int    `json:"visits_count"`
	DurationDays int     `json:"duration_days"`
	IsActive     *bool   `json:"is_active"`
}

func (r subscriptionRequest) input() service.SubscriptionInput {
	return service.SubscriptionInput{
		Name:         r.Name,
		Type:         r.Type,
		Description:  r.Description,
		Price:        r.Price,
		VisitsCount:  r.VisitsCount,
		DurationDays: r.DurationDays,
		IsActive:     r.IsActive,
	}
}

func (h *Handler) listSubscriptions(c *gin.Context) {
	subs, err := h.svc.Subscriptions.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"subscriptions": subs})
}

func (h *Handler) createSubscription(c *gin.Context) {
	var req subscriptionRequest
	if !bind(c, &req) {
		return
	}

	sub, err := h.svc.Subscriptions.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Абонемент создан", gin.H{"subscriptionId": sub.ID, "subscription": sub})
}

func (h *Handler) updateSubscription(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req subscriptionRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.Subscriptions.Update(c.Request.Context(), id, req.input()); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Абонемент обновлен", nil)
}

func (h *Handler) deleteSubscription(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	sub, err := h.svc.Subscriptions.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Абонемент удален", gin.H{"subscription": sub})
}
