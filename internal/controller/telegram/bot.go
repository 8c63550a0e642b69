// Package telegram Telegram-бот клуба: каталог для клиентов и расписание для тренеров.
package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram/state"
)

type BotController struct {
	bot      *bot.Bot
	handlers *Handlers
	logger   *zap.Logger
}

// New создаёт клиента Telegram API и контроллер поверх него
func New(token string, deps Deps, logger *zap.Logger) (*BotController, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, err
	}
	return NewBotController(b, deps, logger), nil
}

func NewBotController(botInstance *bot.Bot, deps Deps, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: NewHandlers(deps, state.NewManager(), logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":         c.handlers.HandleStart,
		"/help":          c.handlers.HandleHelp,
		"/trainers":      c.handlers.HandleTrainers,
		"/subscriptions": c.handlers.HandleSubscriptions,
		"/classes":       c.handlers.HandleClasses,
		"/login":         c.handlers.HandleLogin,
		"/logout":        c.handlers.HandleLogout,
		"/cancel":        c.handlers.HandleCancel,
		"/myschedule":    c.handlers.HandleMySchedule,
	}
	for pattern, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, bot.MatchTypeExact, handler)
	}

	// Текстовые сообщения для диалогов с состояниями
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать"},
		{Command: "trainers", Description: "🏋️ Тренеры"},
		{Command: "subscriptions", Description: "🎫 Абонементы"},
		{Command: "classes", Description: "👥 Групповые занятия"},
		{Command: "myschedule", Description: "🗓 Моё расписание (тренер)"},
		{Command: "login", Description: "🔑 Привязать аккаунт"},
		{Command: "logout", Description: "🚪 Отвязать аккаунт"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
