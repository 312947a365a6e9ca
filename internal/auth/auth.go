// Package auth implements the storefront's simulated authentication flow.
// Login and register validate their forms, wait a configured artificial
// latency (standing in for a remote identity provider), fabricate a user
// and an opaque bearer token, and persist the session in an injected
// SessionStore. Tokens are never cryptographically verified or refreshed.
//
// Package auth 实现店铺的模拟认证流程。
// 登录和注册会验证表单，等待配置的人为延迟（代替远程身份提供者），
// 伪造用户和不透明的bearer令牌，并将会话保存在注入的SessionStore中。
// 令牌永远不会被加密验证或刷新。
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/docemila/configs"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

const tokenPrefix = "fake-jwt-token"

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	digitsOnly   = regexp.MustCompile(`\D`)
)

// Service runs the simulated login/register flows.
type Service struct {
	cfg      configs.AuthConfig
	sessions SessionStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates an auth service backed by the given session store.
func NewService(cfg configs.AuthConfig, sessions SessionStore, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login validates the form, simulates the provider round trip, and issues a
// session for a fabricated test user.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if err := validateLogin(req); err != nil {
		return model.AuthResponse{}, err
	}
	if err := s.simulateLatency(ctx); err != nil {
		return model.AuthResponse{}, err
	}

	now := s.now()
	user := model.User{
		ID:    1,
		Name:  "Usuário Teste",
		Email: strings.TrimSpace(req.Email),
	}
	token := fmt.Sprintf("%s-%d-%s", tokenPrefix, now.UnixMilli(), uuid.NewString())

	if err := s.saveSession(ctx, user, token, now); err != nil {
		return model.AuthResponse{}, err
	}

	s.logger.Info("login", zap.String("email", user.Email))
	return model.AuthResponse{User: user, Token: token}, nil
}

// Register validates the form, simulates the provider round trip, and issues
// a session for a freshly fabricated account.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if err := validateRegister(req); err != nil {
		return model.AuthResponse{}, err
	}
	if err := s.simulateLatency(ctx); err != nil {
		return model.AuthResponse{}, err
	}

	now := s.now()
	user := model.User{
		ID:        now.UnixMilli(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	token := fmt.Sprintf("%s-register-%d-%s", tokenPrefix, now.UnixMilli(), uuid.NewString())

	if err := s.saveSession(ctx, user, token, now); err != nil {
		return model.AuthResponse{}, err
	}

	s.logger.Info("register", zap.String("email", user.Email))
	return model.AuthResponse{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to its session user.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	session, err := s.sessions.Load(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	return session.User, nil
}

// Logout drops the session for token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if err != nil && !errors.Is(err, errors.ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *Service) saveSession(ctx context.Context, user model.User, token string, now time.Time) error {
	session := Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save session")
	}
	return nil
}

// simulateLatency waits the configured artificial delay, honoring context
// cancellation so a dropped request does not hold the handler.
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.cfg.SimulatedLatency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.SimulatedLatency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func validateLogin(req model.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return errors.NewFieldError("email", "email é obrigatório")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return errors.NewFieldError("email", "email inválido")
	}
	if req.Password == "" {
		return errors.NewFieldError("password", "senha é obrigatória")
	}
	if len(req.Password) < 6 {
		return errors.NewFieldError("password", "senha deve ter pelo menos 6 caracteres")
	}
	return nil
}

func validateRegister(req model.RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errors.NewFieldError("name", "nome é obrigatório")
	}
	if len([]rune(name)) < 2 {
		return errors.NewFieldError("name", "nome deve ter pelo menos 2 caracteres")
	}
	if strings.TrimSpace(req.Email) == "" {
		return errors.NewFieldError("email", "email é obrigatório")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return errors.NewFieldError("email", "email inválido")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return errors.NewFieldError("phone", "telefone é obrigatório")
	}
	if !phonePattern.MatchString(req.Phone) {
		return errors.NewFieldError("phone", "telefone inválido (formato: (11) 99999-9999)")
	}
	if req.Password == "" {
		return errors.NewFieldError("password", "senha é obrigatória")
	}
	if len(req.Password) < 6 {
		return errors.NewFieldError("password", "senha deve ter pelo menos 6 caracteres")
	}
	if req.ConfirmPassword != req.Password {
		return errors.NewFieldError("confirm_password", "as senhas não coincidem")
	}
	if !req.AcceptTerms {
		return errors.NewFieldError("accept_terms", "você deve aceitar os termos e condições")
	}
	return nil
}

// FormatPhone applies the progressive Brazilian phone mask used by the
// registration form: "(11) 99999-9999". Non-digits in the input are ignored
// and anything past eleven digits is dropped.
func FormatPhone(value string) string {
	numbers := digitsOnly.ReplaceAllString(value, "")
	if len(numbers) > 11 {
		numbers = numbers[:11]
	}

	switch {
	case len(numbers) == 0:
		return ""
	case len(numbers) <= 2:
		return "(" + numbers
	case len(numbers) <= 7:
		return fmt.Sprintf("(%s) %s", numbers[:2], numbers[2:])
	default:
		return fmt.Sprintf("(%s) %s-%s", numbers[:2], numbers[2:7], numbers[7:])
	}
}
