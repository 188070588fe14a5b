package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawncare-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestMemorySessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(zap.NewNop()).(*memorySessionRepository)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	live := &entity.Session{Token: uuid.New(), UserID: 1, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	expired := &entity.Session{Token: uuid.New(), UserID: 2, ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}
	for _, s := range []*entity.Session{live, expired} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	found, err := repo.FindValidSession(ctx, live.Token.String())
	if err != nil || found.UserID != 1 {
		t.Fatalf("FindValidSession = %+v, %v", found, err)
	}

	if _, err := repo.FindValidSession(ctx, expired.Token.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session err = %v, want ErrNotFound", err)
	}
	if _, err := repo.FindValidSession(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown session err = %v, want ErrNotFound", err)
	}

	if err := repo.Revoke(ctx, live.Token.String()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := repo.FindValidSession(ctx, live.Token.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoked session err = %v, want ErrNotFound", err)
	}
	if err := repo.Revoke(ctx, live.Token.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second revoke err = %v, want ErrNotFound", err)
	}

	removed, err := repo.CleanExpiredSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(repo.sessions) != 0 {
		t.Errorf("%d sessions left after cleanup", len(repo.sessions))
	}
}
