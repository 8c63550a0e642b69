package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram/state"
	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

const (
	textLoginEmail    = "📧 Введите email от аккаунта FitnessHub.\n\nОтмена: /cancel"
	textLoginPassword = "🔑 Введите пароль.\n\nСообщение с паролем будет удалено."
	textLoginBadEmail = "❌ Это не похоже на email. Попробуйте ещё раз или /cancel"
	textLoginFailed   = "❌ Неверный email или пароль.\n\nПопробуйте снова: /login"
	textLoginError    = "❌ Произошла ошибка. Попробуйте позже."
)

type linker interface {
	LinkTelegram(ctx context.Context, email, password string, telegramID int64) (*model.User, error)
}

// LoginDialog пошаговая привязка Telegram к аккаунту: email, затем пароль
type LoginDialog struct {
	states *state.Manager
	linker linker
	logger *zap.Logger
}

func NewLoginDialog(states *state.Manager, linker linker, logger *zap.Logger) *LoginDialog {
	return &LoginDialog{
		states: states,
		linker: linker,
		logger: logger,
	}
}

// Start начинает диалог заново и возвращает первый вопрос
func (d *LoginDialog) Start(telegramID int64) string {
	d.states.ClearState(telegramID)
	d.states.SetState(telegramID, state.StateLoginEmail)
	return textLoginEmail
}

// AwaitsPassword true если следующее сообщение пользователя содержит пароль
func (d *LoginDialog) AwaitsPassword(telegramID int64) bool {
	return d.states.GetState(telegramID) == state.StateLoginPassword
}

// Handle обрабатывает ответ пользователя. handled=false если диалог не активен.
func (d *LoginDialog) Handle(ctx context.Context, telegramID int64, text string) (string, bool) {
	switch d.states.GetState(telegramID) {
	case state.StateLoginEmail:
		email := strings.TrimSpace(text)
		if !strings.Contains(email, "@") {
			return textLoginBadEmail, true
		}
		d.states.SetData(telegramID, state.KeyEmail, email)
		d.states.SetState(telegramID, state.StateLoginPassword)
		return textLoginPassword, true

	case state.StateLoginPassword:
		email, ok := d.states.GetData(telegramID, state.KeyEmail)
		d.states.ClearState(telegramID)
		if !ok {
			return d.Start(telegramID), true
		}
		return d.link(ctx, telegramID, email, text), true
	}
	return "", false
}

func (d *LoginDialog) link(ctx context.Context, telegramID int64, email, password string) string {
	user, err := d.linker.LinkTelegram(ctx, email, password, telegramID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return textLoginFailed
		}
		if verr, ok := service.AsValidation(err); ok {
			return "❌ " + verr.Message + "\n\nПопробуйте снова: /login"
		}
		d.logger.Error("Failed to link telegram account",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return textLoginError
	}
	return welcomeText(user)
}
