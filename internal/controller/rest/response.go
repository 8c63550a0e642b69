package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

const (
	msgServerError   = "Ошибка сервера"
	msgBadRequest    = "Неверный формат запроса"
	msgBadID         = "Неверный идентификатор"
	msgTokenMissing  = "Токен отсутствует"
	msgTokenInvalid  = "Неверный токен"
	msgAccessDenied  = "Доступ запрещен"
	msgRateLimited   = "Слишком много запросов, попробуйте позже"
	msgRouteNotFound = "Маршрут не найден"
)

// ok пишет успешный ответ {"success": true, "message": ..., <payload>}
func ok(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// ErrorStatus сопоставляет ошибку HTTP-статусу и сообщению для пользователя
func ErrorStatus(err error) (int, string) {
	if verr, ok := service.AsValidation(err); ok {
		return http.StatusBadRequest, verr.Message
	}

	switch {
	case errors.Is(err, schedule.ErrDurationTooShort):
		return http.StatusBadRequest, "Продолжительность тренировки должна быть не менее 5 часов"
	case errors.Is(err, schedule.ErrOverlap):
		return http.StatusConflict, "Время пересекается с существующим слотом тренера"
	case errors.Is(err, model.ErrTrainerNotFound):
		return http.StatusNotFound, "Тренер не найден"
	case errors.Is(err, model.ErrSlotNotFound):
		return http.StatusNotFound, "Слот не найден"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "Пользователь не найден"
	case errors.Is(err, model.ErrSubscriptionNotFound):
		return http.StatusNotFound, "Абонемент не найден"
	case errors.Is(err, model.ErrClassTypeNotFound):
		return http.StatusNotFound, "Тип занятия не найден"
	case errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound, "Занятие не найдено"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, "Пользователь с таким email уже существует"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Неверный email или пароль"
	case errors.Is(err, service.ErrRoleNotAllowed):
		return http.StatusForbidden, "Самостоятельная регистрация доступна только клиентам"
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// fail отвечает ошибкой; неожиданные ошибки логируются
func (h *Handler) fail(c *gin.Context, err error) {
	status, message := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	abort(c, status, message)
}

// pathID читает числовой :id; при ошибке уже отвечает 400
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, msgBadID)
		return 0, false
	}
	return id, true
}

// bind разбирает JSON тело; при ошибке уже отвечает 400
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abort(c, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}
