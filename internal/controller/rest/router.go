// Package rest JSON API поверх gin.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

type TrainerService interface {
	ListPublic(ctx context.Context) ([]*model.TrainerProfile, error)
	ListAll(ctx context.Context) ([]*model.TrainerProfile, error)
	Create(ctx context.Context, in service.TrainerInput) (*model.TrainerProfile, error)
	Update(ctx context.Context, id int64, in service.TrainerInput) error
	Delete(ctx context.Context, id int64) error
}

type SubscriptionService interface {
	ListPublic(ctx context.Context) ([]*model.SubscriptionType, error)
	ListAll(ctx context.Context) ([]*model.SubscriptionType, error)
	Create(ctx context.Context, in service.SubscriptionInput) (*model.SubscriptionType, error)
	Update(ctx context.Context, id int64, in service.SubscriptionInput) error
	Delete(ctx context.Context, id int64) (*model.SubscriptionType, error)
}

type ClassService interface {
	ListClassTypes(ctx context.Context) ([]*model.ClassType, error)
	CreateClassType(ctx context.Context, in service.ClassTypeInput) (*model.ClassType, error)
	UpdateClassType(ctx context.Context, id int64, in service.ClassTypeInput) error
	ListPublicSessions(ctx context.Context) ([]*model.GroupSession, error)
	ListSessions(ctx context.Context) ([]*model.GroupSession, error)
	ListSessionSummaries(ctx context.Context) ([]service.SessionSummary, error)
	ListTrainerSessions(ctx context.Context, userID int64) ([]*model.GroupSession, error)
	GetSession(ctx context.Context, id int64) (*model.GroupSession, error)
	CreateSession(ctx context.Context, in service.SessionInput) (*model.GroupSession, error)
	UpdateSession(ctx context.Context, id int64, in service.SessionInput) error
	DeleteSession(ctx context.Context, id int64) (*model.GroupSession, error)
}

type ScheduleService interface {
	List(ctx context.Context) ([]*model.TrainerSlot, error)
	Create(ctx context.Context, adminID int64, in service.SlotInput) (*model.TrainerSlot, error)
	Update(ctx context.Context, id int64, in service.SlotInput) (*model.TrainerSlot, error)
	Delete(ctx context.Context, id int64) error
	ForTrainerUser(ctx context.Context, userID int64) (*service.TrainerSchedule, error)
	AvailableTrainers(ctx context.Context, date, at string) ([]*model.AvailableTrainer, error)
}

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, in service.ProfileInput) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type StatsService interface {
	Get(ctx context.Context) (*model.Stats, error)
}

// Services зависимости обработчиков
type Services struct {
	Auth          AuthService
	Trainers      TrainerService
	Subscriptions SubscriptionService
	Classes       ClassService
	Schedule      ScheduleService
	Users         UserService
	Stats         StatsService
}

// Options настройки роутера
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

type Handler struct {
	svc    Services
	logger *zap.Logger
	now    func() time.Time
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(svc Services, tokens TokenParser, opts Options, logger *zap.Logger) *gin.Engine {
	h := &Handler{svc: svc, logger: logger, now: time.Now}

	r := gin.New()
	r.Use(RequestID(), Recovery(logger), AccessLog(logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(RateLimit(opts.RateLimitPerMin, logger))

	r.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, msgRouteNotFound)
	})

	api := r.Group("/api")
	api.GET("/test", h.test)
	api.GET("/health", h.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	public := api.Group("/public")
	public.GET("/trainers", h.publicTrainers)
	public.GET("/subscriptions", h.publicSubscriptions)
	public.GET("/group-sessions", h.publicSessions)

	private := api.Group("", Auth(tokens))
	private.GET("/class-types", h.listClassTypes)

	admin := private.Group("", RequireRole(model.RoleAdmin))

	admin.GET("/trainers", h.listTrainers)
	admin.POST("/trainers", h.createTrainer)
	admin.PUT("/trainers/:id", h.updateTrainer)
	admin.DELETE("/trainers/:id", h.deleteTrainer)

	admin.POST("/class-types", h.createClassType)
	admin.PUT("/class-types/:id", h.updateClassType)

	admin.GET("/group-sessions", h.listSessions)
	admin.GET("/group-sessions/:id", h.getSession)
	admin.POST("/group-sessions", h.createSession)
	admin.PUT("/group-sessions/:id", h.updateSession)
	admin.DELETE("/group-sessions/:id", h.deleteSession)

	admin.GET("/users", h.listUsers)
	admin.DELETE("/users/:id", h.deleteUser)

	adminArea := admin.Group("/admin")
	adminArea.GET("/subscriptions", h.listSubscriptions)
	adminArea.POST("/subscriptions", h.createSubscription)
	adminArea.PUT("/subscriptions/:id", h.updateSubscription)
	adminArea.DELETE("/subscriptions/:id", h.deleteSubscription)
	adminArea.GET("/stats", h.stats)
	adminArea.GET("/trainer-schedule", h.listSlots)
	adminArea.POST("/trainer-schedule", h.createSlot)
	adminArea.PUT("/trainer-schedule/:id", h.updateSlot)
	adminArea.DELETE("/trainer-schedule/:id", h.deleteSlot)
	adminArea.GET("/available-trainers", h.availableTrainers)
	adminArea.GET("/group-sessions-list", h.sessionSummaries)
	adminArea.GET("/profile", h.getProfile)
	adminArea.PUT("/profile", h.updateProfile)

	trainer := private.Group("/trainer", RequireRole(model.RoleTrainer))
	trainer.GET("/schedule", h.trainerSchedule)
	trainer.GET("/group-sessions", h.trainerSessions)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (h *Handler) test(c *gin.Context) {
	ok(c, "Сервер работает!", gin.H{"timestamp": h.now().UTC().Format(time.RFC3339)})
}

func (h *Handler) health(c *gin.Context) {
	ok(c, "FitnessHub API работает!", gin.H{"timestamp": h.now().UTC().Format(time.RFC3339)})
}
