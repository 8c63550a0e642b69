package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

type registerRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.svc.Auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Регистрация успешна!", gin.H{"token": res.Token, "user": res.User})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "Вход выполнен успешно!", gin.H{"token": res.Token, "user": res.User})
}
