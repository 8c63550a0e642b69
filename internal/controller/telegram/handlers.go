package telegram

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram/keyboard"
	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram/state"
	"github.com/Freeeeeet/fitnesshub/internal/controller/telegram/weekimage"
	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

// Callback data кнопок каталога
const (
	cbCatalogTrainers      = "catalog:trainers"
	cbCatalogSubscriptions = "catalog:subscriptions"
	cbCatalogClasses       = "catalog:classes"
	cbMySchedule           = "schedule:mine"
)

// Telegram ограничивает подпись к фото
const captionLimit = 1024

const (
	textError        = "❌ Произошла ошибка. Попробуйте позже."
	textNotLinked    = "🔒 Аккаунт не привязан. Войдите через /login"
	textTrainersOnly = "❌ Эта команда доступна только тренерам."
	textNoTrainer    = "❌ Профиль тренера не найден. Обратитесь к администратору."
	textNothingToDo  = "❌ Нет активных операций для отмены."
	textCancelled    = "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд."
	textLoggedOut    = "👋 Аккаунт отвязан от Telegram."
)

type trainerCatalog interface {
	ListPublic(ctx context.Context) ([]*model.TrainerProfile, error)
}

type subscriptionCatalog interface {
	ListPublic(ctx context.Context) ([]*model.SubscriptionType, error)
}

type sessionCatalog interface {
	ListPublicSessions(ctx context.Context) ([]*model.GroupSession, error)
}

type accounts interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	UnlinkTelegram(ctx context.Context, telegramID int64) error
}

type scheduleReader interface {
	ForTrainerUser(ctx context.Context, userID int64) (*service.TrainerSchedule, error)
}

// Deps сервисы, которые использует бот
type Deps struct {
	Trainers      trainerCatalog
	Subscriptions subscriptionCatalog
	Sessions      sessionCatalog
	Accounts      accounts
	Schedule      scheduleReader
	Auth          linker
}

type Handlers struct {
	deps   Deps
	states *state.Manager
	login  *LoginDialog
	logger *zap.Logger
	now    func() time.Time
}

func NewHandlers(deps Deps, states *state.Manager, logger *zap.Logger) *Handlers {
	return &Handlers{
		deps:   deps,
		states: states,
		login:  NewLoginDialog(states, deps.Auth, logger),
		logger: logger,
		now:    time.Now,
	}
}

func catalogKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Columns(2,
			keyboard.Button("🏋️ Тренеры", cbCatalogTrainers),
			keyboard.Button("🎫 Абонементы", cbCatalogSubscriptions),
			keyboard.Button("👥 Занятия", cbCatalogClasses),
			keyboard.Button("🗓 Моё расписание", cbMySchedule),
		).
		Build()
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "👋 Добро пожаловать в FitnessHub!\n\n" +
		"Здесь можно посмотреть тренеров, абонементы и групповые занятия.\n" +
		"Тренеры после входа (/login) видят своё расписание.\n\n" +
		"Справка: /help"

	h.send(ctx, b, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: catalogKeyboard(),
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/trainers - Тренеры клуба\n" +
		"/subscriptions - Абонементы и цены\n" +
		"/classes - Групповые занятия\n" +
		"/login - Привязать аккаунт FitnessHub\n" +
		"/logout - Отвязать аккаунт\n" +
		"/cancel - Отменить текущую операцию\n\n" +
		"Для тренеров:\n" +
		"/myschedule - Моё расписание и нагрузка"

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}

func (h *Handlers) HandleTrainers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendCatalog(ctx, b, update.Message.Chat.ID, cbCatalogTrainers)
}

func (h *Handlers) HandleSubscriptions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendCatalog(ctx, b, update.Message.Chat.ID, cbCatalogSubscriptions)
}

func (h *Handlers) HandleClasses(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendCatalog(ctx, b, update.Message.Chat.ID, cbCatalogClasses)
}

// HandleLogin начинает привязку аккаунта
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, h.login.Start(update.Message.From.ID))
}

// HandleLogout отвязывает Telegram от аккаунта
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.states.ClearState(telegramID)
	if err := h.deps.Accounts.UnlinkTelegram(ctx, telegramID); err != nil {
		h.logger.Error("Failed to unlink telegram", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendText(ctx, b, update.Message.Chat.ID, textError)
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, textLoggedOut)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.states.GetState(telegramID) == state.StateNone {
		h.sendText(ctx, b, update.Message.Chat.ID, textNothingToDo)
		return
	}

	h.states.ClearState(telegramID)
	h.sendText(ctx, b, update.Message.Chat.ID, textCancelled)
}

// HandleMySchedule отправляет тренеру картинку недели и текст с нагрузкой
func (h *Handlers) HandleMySchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendSchedule(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	msg := update.Message
	secret := h.login.AwaitsPassword(msg.From.ID)

	reply, handled := h.login.Handle(ctx, msg.From.ID, msg.Text)
	if !handled {
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", msg.From.ID))
		return
	}

	if secret {
		if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID}); err != nil {
			h.logger.Warn("Failed to delete password message", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		}
	}
	h.sendText(ctx, b, msg.Chat.ID, reply)
}

// HandleCallbackQuery обрабатывает нажатия на inline кнопки
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callback.ID})
	if err != nil {
		h.logger.Warn("Failed to answer callback", zap.String("data", callback.Data), zap.Error(err))
	}

	msg := callback.Message.Message
	if msg == nil {
		return
	}

	switch callback.Data {
	case cbCatalogTrainers, cbCatalogSubscriptions, cbCatalogClasses:
		h.sendCatalog(ctx, b, msg.Chat.ID, callback.Data)
	case cbMySchedule:
		h.sendSchedule(ctx, b, msg.Chat.ID, callback.From.ID)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", callback.Data))
	}
}

// catalogText собирает текст раздела каталога
func (h *Handlers) catalogText(ctx context.Context, section string) (string, error) {
	switch section {
	case cbCatalogTrainers:
		trainers, err := h.deps.Trainers.ListPublic(ctx)
		if err != nil {
			return "", err
		}
		return formatTrainers(trainers), nil
	case cbCatalogSubscriptions:
		subs, err := h.deps.Subscriptions.ListPublic(ctx)
		if err != nil {
			return "", err
		}
		return formatSubscriptions(subs), nil
	case cbCatalogClasses:
		sessions, err := h.deps.Sessions.ListPublicSessions(ctx)
		if err != nil {
			return "", err
		}
		return formatSessions(sessions), nil
	}
	return "", errors.New("unknown catalog section " + section)
}

func (h *Handlers) sendCatalog(ctx context.Context, b *bot.Bot, chatID int64, section string) {
	text, err := h.catalogText(ctx, section)
	if err != nil {
		h.logger.Error("Failed to load catalog", zap.String("section", section), zap.Error(err))
		h.sendText(ctx, b, chatID, textError)
		return
	}

	h.send(ctx, b, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
}

// trainerSchedule возвращает расписание или готовый текст отказа
func (h *Handlers) trainerSchedule(ctx context.Context, telegramID int64) (*service.TrainerSchedule, string) {
	user, err := h.deps.Accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return nil, textError
	}
	if user == nil {
		return nil, textNotLinked
	}
	if user.Role != model.RoleTrainer {
		return nil, textTrainersOnly
	}

	ts, err := h.deps.Schedule.ForTrainerUser(ctx, user.ID)
	if errors.Is(err, model.ErrTrainerNotFound) {
		return nil, textNoTrainer
	}
	if err != nil {
		h.logger.Error("Failed to get trainer schedule", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, textError
	}
	return ts, ""
}

func (h *Handlers) sendSchedule(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	ts, refusal := h.trainerSchedule(ctx, telegramID)
	if ts == nil {
		h.sendText(ctx, b, chatID, refusal)
		return
	}

	text := formatSchedule(ts)
	image, err := weekimage.Render(ts.Slots, weekimage.Options{
		Title: "Personal training slots",
		Today: schedule.DayOfWeekFromDate(h.now()),
		Load:  &ts.Load,
	})
	if err != nil {
		h.logger.Warn("Failed to render week image", zap.Int64("trainer_id", ts.Trainer.ID), zap.Error(err))
		h.send(ctx, b, &bot.SendMessageParams{ChatID: chatID, Text: text, ParseMode: models.ParseModeHTML})
		return
	}

	caption := text
	if utf8.RuneCountInString(text) > captionLimit {
		caption = ""
	}
	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if caption == "" {
		h.send(ctx, b, &bot.SendMessageParams{ChatID: chatID, Text: text, ParseMode: models.ParseModeHTML})
	}
}

func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.send(ctx, b, &bot.SendMessageParams{ChatID: chatID, Text: text})
}

// send отправляет сообщение и логирует если не удалось
func (h *Handlers) send(ctx context.Context, b *bot.Bot, params *bot.SendMessageParams) {
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message", zap.Any("chat_id", params.ChatID), zap.Error(err))
	}
}
