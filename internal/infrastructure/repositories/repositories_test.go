package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/galvital/YogaMoves/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}, &DBSession{}, &DBResponse{}, &DBOTPCode{}, &DBRefreshToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserRepositoryImpl(t *testing.T) {
	ctx := context.Background()

	t.Run("participant lookup is role-scoped", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		admin := &domain.User{ID: "a-1", Name: "Owner", Email: "owner@example.com", GoogleID: "g-1", Role: domain.RoleAdmin, PhoneNumber: "+972501111111"}
		if err := repo.Create(ctx, admin); err != nil {
			t.Fatalf("create admin: %v", err)
		}

		if _, err := repo.FindParticipantByPhone(ctx, "+972501111111"); err != domain.ErrUserNotFound {
			t.Errorf("admin phone must not resolve as participant, got %v", err)
		}
		if _, err := repo.FindByPhone(ctx, "+972501111111"); err != nil {
			t.Errorf("role-free lookup should find the admin, got %v", err)
		}
	})

	t.Run("delete only removes participants", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		if err := repo.Create(ctx, &domain.User{ID: "a-1", Name: "Owner", Role: domain.RoleAdmin}); err != nil {
			t.Fatalf("create admin: %v", err)
		}
		if err := repo.DeleteParticipant(ctx, "a-1"); err != domain.ErrParticipantNotFound {
			t.Errorf("deleting an admin must report not found, got %v", err)
		}

		if err := repo.Create(ctx, &domain.User{ID: "p-1", Name: "Dana", PhoneNumber: "+972501234567", Role: domain.RoleParticipant}); err != nil {
			t.Fatalf("create participant: %v", err)
		}
		if err := repo.DeleteParticipant(ctx, "p-1"); err != nil {
			t.Errorf("deleting a participant failed: %v", err)
		}
	})

	t.Run("renames never collide on empty unique columns", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		repo.Create(ctx, &domain.User{ID: "p-1", Name: "Dana", PhoneNumber: "+972501234567", Role: domain.RoleParticipant})
		repo.Create(ctx, &domain.User{ID: "p-2", Name: "Noa", PhoneNumber: "+972521234567", Role: domain.RoleParticipant})

		// Participants have no email or google id; renaming one must not
		// write empty strings into those unique columns.
		first, err := repo.FindByID(ctx, "p-1")
		if err != nil {
			t.Fatalf("FindByID p-1: %v", err)
		}
		first.Name = "Dana Levi"
		if err := repo.Update(ctx, first); err != nil {
			t.Fatalf("first rename: %v", err)
		}

		second, err := repo.FindByID(ctx, "p-2")
		if err != nil {
			t.Fatalf("FindByID p-2: %v", err)
		}
		second.Name = "Noa Bar"
		if err := repo.Update(ctx, second); err != nil {
			t.Fatalf("second rename: %v", err)
		}

		got, err := repo.FindByID(ctx, "p-2")
		if err != nil {
			t.Fatalf("FindByID after rename: %v", err)
		}
		if got.Name != "Noa Bar" || got.PhoneNumber != "+972521234567" {
			t.Errorf("rename not applied cleanly: %+v", got)
		}
	})

	t.Run("update keeps the admin's identity columns", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		repo.Create(ctx, &domain.User{ID: "a-1", Name: "Owner", Email: "owner@example.com", GoogleID: "g-1", Role: domain.RoleAdmin})

		admin, err := repo.FindByID(ctx, "a-1")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		admin.Name = "Studio Owner"
		if err := repo.Update(ctx, admin); err != nil {
			t.Fatalf("Update: %v", err)
		}

		got, err := repo.FindByGoogleID(ctx, "g-1")
		if err != nil {
			t.Fatalf("google id lookup lost after update: %v", err)
		}
		if got.Email != "owner@example.com" || got.Name != "Studio Owner" {
			t.Errorf("unexpected row after update: %+v", got)
		}
	})

	t.Run("update of an unknown id reports not found", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		err := repo.Update(ctx, &domain.User{ID: "ghost", Name: "X", Role: domain.RoleParticipant})
		if err != domain.ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("listing excludes admins", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		repo.Create(ctx, &domain.User{ID: "a-1", Name: "Owner", Role: domain.RoleAdmin})
		repo.Create(ctx, &domain.User{ID: "p-1", Name: "Dana", PhoneNumber: "+972501234567", Role: domain.RoleParticipant})

		users, err := repo.ListParticipants(ctx)
		if err != nil {
			t.Fatalf("ListParticipants: %v", err)
		}
		if len(users) != 1 || users[0].ID != "p-1" {
			t.Errorf("expected only the participant, got %+v", users)
		}
	})
}

func TestResponseRepositoryImpl_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("second submit for the same pair updates in place", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResponseRepository(db)

		first := &domain.Response{ID: "r-1", SessionID: "s-1", ParticipantID: "p-1", Status: domain.StatusJoining}
		if err := repo.Upsert(ctx, first); err != nil {
			t.Fatalf("first upsert: %v", err)
		}

		// Simulates the loser of a concurrent race: fresh id, same pair.
		second := &domain.Response{ID: "r-2", SessionID: "s-1", ParticipantID: "p-1", Status: domain.StatusMaybe}
		if err := repo.Upsert(ctx, second); err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		var count int64
		db.Model(&DBResponse{}).Count(&count)
		if count != 1 {
			t.Fatalf("expected exactly one row per pair, got %d", count)
		}

		got, err := repo.FindByPair(ctx, "s-1", "p-1")
		if err != nil {
			t.Fatalf("FindByPair: %v", err)
		}
		if got.Status != domain.StatusMaybe {
			t.Errorf("expected last-write status, got %q", got.Status)
		}
	})

	t.Run("distinct pairs stay distinct", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResponseRepository(db)

		repo.Upsert(ctx, &domain.Response{ID: "r-1", SessionID: "s-1", ParticipantID: "p-1", Status: domain.StatusJoining})
		repo.Upsert(ctx, &domain.Response{ID: "r-2", SessionID: "s-1", ParticipantID: "p-2", Status: domain.StatusJoining})
		repo.Upsert(ctx, &domain.Response{ID: "r-3", SessionID: "s-2", ParticipantID: "p-1", Status: domain.StatusJoining})

		var count int64
		db.Model(&DBResponse{}).Count(&count)
		if count != 3 {
			t.Errorf("expected 3 rows, got %d", count)
		}
	})

	t.Run("counts group by status", func(t *testing.T) {
		repo := NewResponseRepository(setupTestDB(t))
		repo.Upsert(ctx, &domain.Response{ID: "r-1", SessionID: "s-1", ParticipantID: "p-1", Status: domain.StatusJoining})
		repo.Upsert(ctx, &domain.Response{ID: "r-2", SessionID: "s-1", ParticipantID: "p-2", Status: domain.StatusJoining})
		repo.Upsert(ctx, &domain.Response{ID: "r-3", SessionID: "s-1", ParticipantID: "p-3", Status: domain.StatusMaybe})

		counts, err := repo.CountsBySession(ctx, "s-1")
		if err != nil {
			t.Fatalf("CountsBySession: %v", err)
		}
		if counts.Joining != 2 || counts.Maybe != 1 || counts.NotJoining != 0 {
			t.Errorf("unexpected counts: %+v", counts)
		}
	})
}

func TestOTPRepositoryImpl(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(10 * time.Minute).Format(time.RFC3339)
	past := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	now := time.Now().UTC().Format(time.RFC3339)
	phone := "+972501234567"

	t.Run("a new code invalidates the previous one", func(t *testing.T) {
		repo := NewOTPRepository(setupTestDB(t))

		repo.ReplaceForPhone(ctx, &domain.OTPCode{ID: "o-1", PhoneNumber: phone, Code: "111111", ExpiresAt: future})
		repo.ReplaceForPhone(ctx, &domain.OTPCode{ID: "o-2", PhoneNumber: phone, Code: "222222", ExpiresAt: future})

		if _, err := repo.FindValid(ctx, phone, "111111", now); err != domain.ErrOTPInvalid {
			t.Errorf("old code must stop verifying, got %v", err)
		}
		if _, err := repo.FindValid(ctx, phone, "222222", now); err != nil {
			t.Errorf("new code must verify, got %v", err)
		}
	})

	t.Run("expired and used codes do not match", func(t *testing.T) {
		repo := NewOTPRepository(setupTestDB(t))

		repo.ReplaceForPhone(ctx, &domain.OTPCode{ID: "o-1", PhoneNumber: phone, Code: "111111", ExpiresAt: past})
		if _, err := repo.FindValid(ctx, phone, "111111", now); err != domain.ErrOTPInvalid {
			t.Errorf("expired code must not match, got %v", err)
		}

		repo.ReplaceForPhone(ctx, &domain.OTPCode{ID: "o-2", PhoneNumber: phone, Code: "222222", ExpiresAt: future})
		if err := repo.MarkUsed(ctx, "o-2"); err != nil {
			t.Fatalf("MarkUsed: %v", err)
		}
		if _, err := repo.FindValid(ctx, phone, "222222", now); err != domain.ErrOTPInvalid {
			t.Errorf("used code must not match, got %v", err)
		}
	})
}

func TestRefreshTokenRepositoryImpl(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(720 * time.Hour).Format(time.RFC3339)
	now := time.Now().UTC().Format(time.RFC3339)

	t.Run("deleting the row revokes the token", func(t *testing.T) {
		repo := NewRefreshTokenRepository(setupTestDB(t))

		repo.Create(ctx, &domain.RefreshToken{ID: "t-1", UserID: "p-1", Token: "tok-1", ExpiresAt: future})
		if _, err := repo.FindValid(ctx, "tok-1", now); err != nil {
			t.Fatalf("live token must be found: %v", err)
		}

		if err := repo.DeleteByToken(ctx, "tok-1"); err != nil {
			t.Fatalf("DeleteByToken: %v", err)
		}
		if _, err := repo.FindValid(ctx, "tok-1", now); err != domain.ErrTokenRevoked {
			t.Errorf("revoked token must be rejected, got %v", err)
		}

		// Idempotent: deleting again is fine.
		if err := repo.DeleteByToken(ctx, "tok-1"); err != nil {
			t.Errorf("repeat delete must not fail: %v", err)
		}
	})

	t.Run("expired rows are rejected", func(t *testing.T) {
		repo := NewRefreshTokenRepository(setupTestDB(t))
		past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

		repo.Create(ctx, &domain.RefreshToken{ID: "t-1", UserID: "p-1", Token: "tok-1", ExpiresAt: past})
		if _, err := repo.FindValid(ctx, "tok-1", now); err != domain.ErrTokenRevoked {
			t.Errorf("expired row must be rejected, got %v", err)
		}
	})
}

func TestSessionRepositoryImpl(t *testing.T) {
	ctx := context.Background()

	newSession := func(id, date string) *domain.ClassSession {
		return &domain.ClassSession{
			ID:          id,
			Title:       "Flow",
			Date:        date,
			Time:        "09:00",
			Datetime:    date + "T07:00:00Z",
			CreatedByID: "a-1",
		}
	}

	t.Run("date range is inclusive and active-only", func(t *testing.T) {
		repo := NewSessionRepository(setupTestDB(t))
		repo.Create(ctx, newSession("s-1", "2026-03-01"))
		repo.Create(ctx, newSession("s-2", "2026-03-31"))
		repo.Create(ctx, newSession("s-3", "2026-04-01"))
		repo.Create(ctx, newSession("s-4", "2026-03-15"))
		repo.Deactivate(ctx, "s-4")

		sessions, err := repo.ListActiveByDateRange(ctx, "2026-03-01", "2026-03-31")
		if err != nil {
			t.Fatalf("ListActiveByDateRange: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("expected boundary sessions only, got %d", len(sessions))
		}
	})

	t.Run("deactivation hides the session from every read", func(t *testing.T) {
		repo := NewSessionRepository(setupTestDB(t))
		repo.Create(ctx, newSession("s-1", "2026-03-01"))

		if err := repo.Deactivate(ctx, "s-1"); err != nil {
			t.Fatalf("Deactivate: %v", err)
		}
		if _, err := repo.FindByID(ctx, "s-1"); err != domain.ErrSessionNotFound {
			t.Errorf("deactivated session must not be found, got %v", err)
		}
		if err := repo.Deactivate(ctx, "s-1"); err != domain.ErrSessionNotFound {
			t.Errorf("second deactivation must report not found, got %v", err)
		}

		count, err := repo.CountActive(ctx)
		if err != nil || count != 0 {
			t.Errorf("expected zero active sessions, got %d (%v)", count, err)
		}
	})

	t.Run("update rewrites the derived datetime", func(t *testing.T) {
		repo := NewSessionRepository(setupTestDB(t))
		repo.Create(ctx, newSession("s-1", "2026-03-01"))

		moved := newSession("s-1", "2026-03-02")
		moved.Datetime = "2026-03-02T16:00:00Z"
		moved.Time = "18:00"
		if err := repo.Update(ctx, moved); err != nil {
			t.Fatalf("Update: %v", err)
		}

		got, err := repo.FindByID(ctx, "s-1")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Date != "2026-03-02" || got.Time != "18:00" || got.Datetime != "2026-03-02T16:00:00Z" {
			t.Errorf("update not applied: %+v", got)
		}
	})
}
