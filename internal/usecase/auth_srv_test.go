package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/dto/request"
	"lawncare-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*authService, *repository.Repository) {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	config := &utils.Config{
		Session: utils.SessionConfig{TTL: time.Hour},
		Admin:   utils.AdminConfig{BcryptCost: bcrypt.MinCost},
	}
	return NewAuthService(repo, config, zap.NewNop()).(*authService), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &request.RegisterRequest{Username: "mowfan", Password: "secret1"}, SessionMeta{UserAgent: "test"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.IsAdmin {
		t.Error("registered user must not be admin")
	}
	if resp.Token == "" {
		t.Error("register should log the user in")
	}

	stored, err := repo.User.FindByUsername(ctx, "mowfan")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if stored.PasswordHash == "secret1" || !utils.CheckPasswordHash("secret1", stored.PasswordHash) {
		t.Error("password must be stored as a bcrypt hash")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, &request.RegisterRequest{Username: "mowfan", Password: "secret1"}, SessionMeta{})
	original, _ := repo.User.FindByUsername(ctx, "mowfan")

	_, err := svc.Register(ctx, &request.RegisterRequest{Username: "mowfan", Password: "another"}, SessionMeta{})
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("error = %v, want ErrDuplicateUsername", err)
	}

	after, _ := repo.User.FindByUsername(ctx, "mowfan")
	if after.PasswordHash != original.PasswordHash || after.ID != original.ID {
		t.Error("duplicate registration changed the existing user")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Username: "ab", Password: "123"}, SessionMeta{})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if _, ok := verr.Fields["username"]; !ok {
		t.Errorf("missing username error: %v", verr.Fields)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Errorf("missing password error: %v", verr.Fields)
	}
}

func TestLoginLogout(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, &request.RegisterRequest{Username: "mowfan", Password: "secret1"}, SessionMeta{})

	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "mowfan", Password: "wrong!"}, SessionMeta{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &request.LoginRequest{Username: "ghost", Password: "secret1"}, SessionMeta{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}

	resp, err := svc.Login(ctx, &request.LoginRequest{Username: "mowfan", Password: "secret1"}, SessionMeta{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	session, err := repo.Session.FindValidSession(ctx, resp.Token)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if session.IPAddress == nil || *session.IPAddress != "10.0.0.1" {
		t.Errorf("session ip = %v", session.IPAddress)
	}
	if !resp.ExpiresAt.Equal(session.ExpiresAt) {
		t.Errorf("expiresAt = %v, want %v", resp.ExpiresAt, session.ExpiresAt)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := repo.Session.FindValidSession(ctx, resp.Token); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("session still valid after logout: %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "change-me"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	admin, err := repo.User.FindByUsername(ctx, "admin")
	if err != nil || !admin.IsAdmin {
		t.Fatalf("admin not created: %+v, %v", admin, err)
	}

	// second run is a no-op
	if err := svc.EnsureAdmin(ctx, "admin", "other"); err != nil {
		t.Fatalf("EnsureAdmin again: %v", err)
	}
	again, _ := repo.User.FindByUsername(ctx, "admin")
	if again.ID != admin.ID || again.PasswordHash != admin.PasswordHash {
		t.Error("existing admin was modified")
	}
}

func TestEnsureAdmin_PromotesExistingUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, &request.RegisterRequest{Username: "owner", Password: "secret1"}, SessionMeta{})

	if err := svc.EnsureAdmin(ctx, "owner", "ignored"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	owner, _ := repo.User.FindByUsername(ctx, "owner")
	if !owner.IsAdmin {
		t.Error("existing user was not promoted")
	}
}

func TestCleanupSessions(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, _ := svc.Register(ctx, &request.RegisterRequest{Username: "mowfan", Password: "secret1"}, SessionMeta{})
	svc.Logout(ctx, resp.Token)

	removed, err := svc.CleanupSessions(ctx)
	if err != nil {
		t.Fatalf("CleanupSessions: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}
