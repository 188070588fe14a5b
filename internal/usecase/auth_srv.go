package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/dto/request"
	"lawncare-booking/internal/dto/response"
	"lawncare-booking/pkg/utils"

	"go.uber.org/zap"
)

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta SessionMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// EnsureAdmin creates the admin account or promotes an existing user
	// with that username. The password of an existing account is left alone.
	EnsureAdmin(ctx context.Context, username, password string) error
	CleanupSessions(ctx context.Context) (int64, error)
	RunSessionJanitor(ctx context.Context, interval time.Duration)
}

type authService struct {
	repo   *repository.Repository // users and sessions
	config *utils.Config
	now    clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta SessionMeta) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Debug("Register validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	hash, err := utils.HashPassword(req.Password, s.config.Admin.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Login for unknown user", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	parsed, err := utils.ParseSessionToken(token)
	if err != nil {
		return fmt.Errorf("session: %w", repository.ErrNotFound)
	}

	if err := s.repo.Session.Revoke(ctx, parsed.String()); err != nil {
		return err
	}

	s.log.Info("User logged out", zap.String("token", maskToken(token)))
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("admin username and password are required")
	}

	user, err := s.repo.User.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsAdmin {
			return nil
		}
		if err := s.repo.User.SetAdmin(ctx, user.ID, true); err != nil {
			return fmt.Errorf("promote admin %s: %w", username, err)
		}
		s.log.Info("Existing user promoted to admin", zap.Int64("user_id", user.ID))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("look up admin %s: %w", username, err)
	}

	hash, err := utils.HashPassword(password, s.config.Admin.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin %s: %w", username, err)
	}

	s.log.Info("Admin account created",
		zap.Int64("user_id", admin.ID),
		zap.String("username", admin.Username),
	)
	return nil
}

func (s *authService) CleanupSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
	return removed, nil
}

// RunSessionJanitor cleans sessions every interval until ctx is done.
func (s *authService) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanupSessions(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("Session cleanup failed", zap.Error(err))
			}
		}
	}
}

func (s *authService) createSession(ctx context.Context, userID int64, meta SessionMeta) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		Token:     utils.GenerateSessionToken(),
		UserID:    userID,
		UserAgent: nonEmpty(meta.UserAgent),
		IPAddress: nonEmpty(meta.IPAddress),
		ExpiresAt: now.Add(s.config.Session.TTL),
		CreatedAt: now,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// maskToken keeps enough of a token to correlate log lines.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:8] + "****"
}
