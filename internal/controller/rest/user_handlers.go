package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/service"
)

type profileRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"users": users})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	if err := h.svc.Users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Пользователь успешно удален", nil)
}

func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.svc.Users.GetByID(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"user": user})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.svc.Users.UpdateProfile(c.Request.Context(), currentClaims(c).UserID, service.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Профиль успешно обновлен", gin.H{"user": user})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "", gin.H{"stats": stats})
}
