package services

import (
	"context"
	"testing"
	"time"

	"github.com/galvital/YogaMoves/domain"
	"github.com/galvital/YogaMoves/internal/mocks"
)

func futureSession(id string) *domain.ClassSession {
	start := time.Now().Add(24 * time.Hour).UTC()
	return &domain.ClassSession{
		ID:       id,
		Title:    "Morning Flow",
		Date:     start.Format("2006-01-02"),
		Time:     "09:00",
		Datetime: start.Format(time.RFC3339),
		IsActive: true,
	}
}

func startedSession(id string) *domain.ClassSession {
	start := time.Now().Add(-time.Hour).UTC()
	s := futureSession(id)
	s.Datetime = start.Format(time.RFC3339)
	return s
}

func createAttendanceServiceForTest() (domain.AttendanceService, *mocks.MockSessionRepository, *mocks.MockResponseRepository, *mocks.MockUserRepository) {
	sessionRepo := mocks.NewMockSessionRepository()
	responseRepo := mocks.NewMockResponseRepository()
	userRepo := mocks.NewMockUserRepository()
	svc := NewAttendanceService(sessionRepo, responseRepo, userRepo)
	return svc, sessionRepo, responseRepo, userRepo
}

func TestAttendanceServiceImpl_SubmitResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status is rejected", func(t *testing.T) {
		svc, _, _, _ := createAttendanceServiceForTest()
		if _, _, err := svc.SubmitResponse(ctx, "s-1", "p-1", "perhaps"); err != domain.ErrInvalidStatus {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("unknown session is rejected", func(t *testing.T) {
		svc, _, _, _ := createAttendanceServiceForTest()
		if _, _, err := svc.SubmitResponse(ctx, "s-x", "p-1", domain.StatusJoining); err != domain.ErrSessionNotFound {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("started session locks submissions", func(t *testing.T) {
		svc, sessionRepo, _, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return startedSession(id), nil
		}
		if _, _, err := svc.SubmitResponse(ctx, "s-1", "p-1", domain.StatusJoining); err != domain.ErrSessionStarted {
			t.Fatalf("expected ErrSessionStarted, got %v", err)
		}
	})

	t.Run("first submission creates a row", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		var upserted *domain.Response
		responseRepo.UpsertFunc = func(ctx context.Context, response *domain.Response) error {
			upserted = response
			return nil
		}

		response, created, err := svc.SubmitResponse(ctx, "s-1", "p-1", domain.StatusJoining)
		if err != nil {
			t.Fatalf("SubmitResponse returned error: %v", err)
		}
		if !created {
			t.Error("expected created=true for the first submission")
		}
		if response.ID == "" {
			t.Error("new response must get an id")
		}
		if response.AdminOverride {
			t.Error("participant submission must not set the override flag")
		}
		if upserted == nil || upserted.Status != domain.StatusJoining {
			t.Error("row was not written")
		}
	})

	t.Run("resubmission updates in place", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1", SessionID: sessionID, ParticipantID: participantID, Status: domain.StatusJoining, CreatedAt: "2026-01-01T00:00:00Z"}, nil
		}

		response, created, err := svc.SubmitResponse(ctx, "s-1", "p-1", domain.StatusMaybe)
		if err != nil {
			t.Fatalf("SubmitResponse returned error: %v", err)
		}
		if created {
			t.Error("expected created=false for an existing pair")
		}
		if response.ID != "r-1" {
			t.Errorf("existing row id must be preserved, got %q", response.ID)
		}
		if response.Status != domain.StatusMaybe {
			t.Errorf("status not updated, got %q", response.Status)
		}
	})

	t.Run("admin-locked pair rejects participant edits", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1", AdminOverride: true, Status: domain.StatusNotJoining}, nil
		}

		if _, _, err := svc.SubmitResponse(ctx, "s-1", "p-1", domain.StatusJoining); err != domain.ErrResponseLocked {
			t.Fatalf("expected ErrResponseLocked, got %v", err)
		}
	})
}

func TestAttendanceServiceImpl_DeleteResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row is not found", func(t *testing.T) {
		svc, sessionRepo, _, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		if err := svc.DeleteResponse(ctx, "s-1", "p-1"); err != domain.ErrResponseNotFound {
			t.Fatalf("expected ErrResponseNotFound, got %v", err)
		}
	})

	t.Run("locked row cannot be withdrawn", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1", AdminOverride: true}, nil
		}
		if err := svc.DeleteResponse(ctx, "s-1", "p-1"); err != domain.ErrResponseLocked {
			t.Fatalf("expected ErrResponseLocked, got %v", err)
		}
	})

	t.Run("unlocked future row is deleted", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1"}, nil
		}
		deleted := ""
		responseRepo.DeleteFunc = func(ctx context.Context, id string) error {
			deleted = id
			return nil
		}

		if err := svc.DeleteResponse(ctx, "s-1", "p-1"); err != nil {
			t.Fatalf("DeleteResponse returned error: %v", err)
		}
		if deleted != "r-1" {
			t.Errorf("expected delete of r-1, got %q", deleted)
		}
	})
}

func TestAttendanceServiceImpl_OverrideResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("override works on a started session and a locked pair", func(t *testing.T) {
		svc, sessionRepo, responseRepo, userRepo := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return startedSession(id), nil
		}
		userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleParticipant}, nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1", AdminOverride: true, Status: domain.StatusJoining}, nil
		}

		response, err := svc.OverrideResponse(ctx, "s-1", "p-1", domain.StatusNotJoining)
		if err != nil {
			t.Fatalf("OverrideResponse returned error: %v", err)
		}
		if !response.AdminOverride {
			t.Error("override must set the admin flag")
		}
		if response.ID != "r-1" {
			t.Errorf("existing row id must be preserved, got %q", response.ID)
		}
		if response.Status != domain.StatusNotJoining {
			t.Errorf("status not overridden, got %q", response.Status)
		}
	})

	t.Run("override on a non-participant user is not found", func(t *testing.T) {
		svc, sessionRepo, _, userRepo := createAttendanceServiceForTest()
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return futureSession(id), nil
		}
		userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
		}

		if _, err := svc.OverrideResponse(ctx, "s-1", "a-1", domain.StatusJoining); err != domain.ErrParticipantNotFound {
			t.Fatalf("expected ErrParticipantNotFound, got %v", err)
		}
	})
}

func TestAttendanceServiceImpl_Views(t *testing.T) {
	ctx := context.Background()

	t.Run("listing attaches own responses and edit verdicts", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()

		future := futureSession("s-future")
		started := startedSession("s-started")
		sessionRepo.ListActiveFunc = func(ctx context.Context) ([]domain.ClassSession, error) {
			return []domain.ClassSession{*future, *started}, nil
		}
		responseRepo.ListBySessionsFunc = func(ctx context.Context, sessionIDs []string) ([]domain.Response, error) {
			return []domain.Response{
				{ID: "r-1", SessionID: "s-future", ParticipantID: "p-1", Status: domain.StatusJoining},
				{ID: "r-2", SessionID: "s-future", ParticipantID: "p-2", Status: domain.StatusMaybe},
			}, nil
		}

		views, err := svc.ListSessionsForParticipant(ctx, "p-1")
		if err != nil {
			t.Fatalf("ListSessionsForParticipant returned error: %v", err)
		}
		if len(views) != 2 {
			t.Fatalf("expected 2 views, got %d", len(views))
		}
		if views[0].MyResponse == nil || views[0].MyResponse.ID != "r-1" {
			t.Error("own response missing from the future session view")
		}
		if !views[0].CanEdit {
			t.Error("future unlocked session must be editable")
		}
		if views[1].MyResponse != nil {
			t.Error("other participants' responses must not leak into MyResponse")
		}
		if views[1].CanEdit {
			t.Error("started session must not be editable")
		}
	})

	t.Run("detail hides other responses when the flag is off", func(t *testing.T) {
		svc, sessionRepo, responseRepo, _ := createAttendanceServiceForTest()
		session := futureSession("s-1")
		session.ShowResponsesToParticipants = false
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return session, nil
		}
		responseRepo.ListBySessionFunc = func(ctx context.Context, sessionID string) ([]domain.Response, error) {
			t.Fatal("other responses must not be loaded when the flag is off")
			return nil, nil
		}

		detail, err := svc.GetSessionForParticipant(ctx, "s-1", "p-1")
		if err != nil {
			t.Fatalf("GetSessionForParticipant returned error: %v", err)
		}
		if detail.OtherResponses != nil {
			t.Error("other responses leaked with visibility off")
		}
	})

	t.Run("detail exposes others but never the caller's own row", func(t *testing.T) {
		svc, sessionRepo, responseRepo, userRepo := createAttendanceServiceForTest()
		session := futureSession("s-1")
		session.ShowResponsesToParticipants = true
		sessionRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.ClassSession, error) {
			return session, nil
		}
		responseRepo.FindByPairFunc = func(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
			return &domain.Response{ID: "r-1", ParticipantID: participantID, Status: domain.StatusJoining}, nil
		}
		responseRepo.ListBySessionFunc = func(ctx context.Context, sessionID string) ([]domain.Response, error) {
			return []domain.Response{
				{ID: "r-1", ParticipantID: "p-1", Status: domain.StatusJoining},
				{ID: "r-2", ParticipantID: "p-2", Status: domain.StatusMaybe},
			}, nil
		}
		userRepo.ListParticipantsFunc = func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: "p-1", Name: "Dana"},
				{ID: "p-2", Name: "Noa"},
			}, nil
		}

		detail, err := svc.GetSessionForParticipant(ctx, "s-1", "p-1")
		if err != nil {
			t.Fatalf("GetSessionForParticipant returned error: %v", err)
		}
		if detail.MyResponse == nil || detail.MyResponse.ID != "r-1" {
			t.Error("own response missing")
		}
		if len(detail.OtherResponses) != 1 {
			t.Fatalf("expected 1 other response, got %d", len(detail.OtherResponses))
		}
		if detail.OtherResponses[0].ParticipantName != "Noa" {
			t.Errorf("expected Noa, got %q", detail.OtherResponses[0].ParticipantName)
		}
	})
}
