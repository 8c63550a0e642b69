package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

type authUserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	SetTelegramID(ctx context.Context, userID int64, telegramID *int64) error
}

// TokenIssuer выпускает токен доступа
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// AuthResult ответ на регистрацию и вход
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type AuthService struct {
	users  authUserStore
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users authUserStore, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register регистрирует клиента и сразу выдаёт токен
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, invalid("Все поля обязательны")
	}

	role := in.Role
	if role == "" {
		role = model.RoleClient
	}
	if role != model.RoleClient {
		return nil, ErrRoleNotAllowed
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return s.issue(user)
}

// Login проверяет email и пароль и выдаёт токен
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// LinkTelegram проверяет учётные данные и привязывает к пользователю Telegram аккаунт
func (s *AuthService) LinkTelegram(ctx context.Context, email, password string, telegramID int64) (*model.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetTelegramID(ctx, user.ID, &telegramID); err != nil {
		return nil, fmt.Errorf("link telegram: %w", err)
	}
	user.TelegramID = &telegramID

	s.logger.Info("Telegram account linked",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
	)
	return user, nil
}

// EnsureAdmin создаёт администратора если пользователя с таким email ещё нет
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if base.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("Admin account created", zap.Int64("user_id", admin.ID))
	return true, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Email и пароль обязательны")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
