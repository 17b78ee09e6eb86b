package domain

import "context"

// UserRepository defines identity data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindParticipantByPhone(ctx context.Context, phone string) (*User, error)
	ListParticipants(ctx context.Context) ([]User, error)
	CountParticipants(ctx context.Context) (int, error)
	Update(ctx context.Context, user *User) error
	DeleteParticipant(ctx context.Context, id string) error
}

// SessionRepository defines class session data access operations.
// All reads exclude soft-deleted (inactive) sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *ClassSession) error
	FindByID(ctx context.Context, id string) (*ClassSession, error)
	ListActive(ctx context.Context) ([]ClassSession, error)
	ListActiveByDateRange(ctx context.Context, fromDate, toDate string) ([]ClassSession, error)
	ListActiveDates(ctx context.Context) ([]string, error)
	CountActive(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, fromDate string) (int, error)
	Update(ctx context.Context, session *ClassSession) error
	Deactivate(ctx context.Context, id string) error
}

// ResponseRepository defines attendance response data access operations.
// Upsert relies on the (session_id, participant_id) unique index: a conflict
// is resolved as an in-place update, never a second row.
type ResponseRepository interface {
	Upsert(ctx context.Context, response *Response) error
	FindByPair(ctx context.Context, sessionID, participantID string) (*Response, error)
	ListBySession(ctx context.Context, sessionID string) ([]Response, error)
	ListBySessions(ctx context.Context, sessionIDs []string) ([]Response, error)
	CountsBySession(ctx context.Context, sessionID string) (ResponseCounts, error)
	Delete(ctx context.Context, id string) error
	DeleteByParticipant(ctx context.Context, participantID string) error
	Count(ctx context.Context) (int, error)
	CountJoining(ctx context.Context) (int, error)
}

// OTPRepository defines one-time code data access operations
type OTPRepository interface {
	ReplaceForPhone(ctx context.Context, code *OTPCode) error
	FindValid(ctx context.Context, phone, code, nowISO string) (*OTPCode, error)
	MarkUsed(ctx context.Context, id string) error
	DeleteByPhone(ctx context.Context, phone string) error
}

// RefreshTokenRepository defines refresh token revocation-list operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindValid(ctx context.Context, token, nowISO string) (*RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// TokenService defines dual-secret token operations. Validation failures
// return sentinel errors, never panic.
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	GenerateRefreshToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// OAuthProvider abstracts the external OAuth collaborator.
type OAuthProvider interface {
	AuthCodeURL() string
	FetchUser(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// NotificationService defines the fire-and-forget SMS collaborator.
type NotificationService interface {
	SendSMS(to, message string) error
}

// OTPService defines one-time code issuance and consumption
type OTPService interface {
	Generate(ctx context.Context, phone string) (*OTPCode, error)
	Verify(ctx context.Context, phone, code string) error
}

// AuthService defines both login paths unified into one token scheme
type AuthService interface {
	GoogleAuthURL() string
	LoginWithGoogle(ctx context.Context, code string) (*AuthResult, error)
	RequestOTP(ctx context.Context, rawPhone string) (*OTPCode, error)
	VerifyOTP(ctx context.Context, rawPhone, code string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID string) (*User, error)
}

// RosterService defines admin participant management
type RosterService interface {
	CreateParticipant(ctx context.Context, name, rawPhone string) (*User, error)
	ListParticipants(ctx context.Context) ([]User, error)
	UpdateParticipant(ctx context.Context, id, name, rawPhone string) (*User, error)
	DeleteParticipant(ctx context.Context, id string) error
}

// ScheduleService defines admin session management
type ScheduleService interface {
	CreateSession(ctx context.Context, adminID string, input SessionInput) (*ClassSession, error)
	ListSessions(ctx context.Context) ([]SessionSummary, error)
	GetSessionDetail(ctx context.Context, id string) (*SessionDetail, error)
	UpdateSession(ctx context.Context, id string, input SessionInput) (*ClassSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionInput is the admin-supplied session payload.
type SessionInput struct {
	Title                       string
	Description                 string
	Date                        string
	Time                        string
	ShowResponsesToParticipants bool
}

// AttendanceService defines the per-pair response state machine and the
// participant-facing session views.
type AttendanceService interface {
	SubmitResponse(ctx context.Context, sessionID, participantID, status string) (*Response, bool, error)
	DeleteResponse(ctx context.Context, sessionID, participantID string) error
	OverrideResponse(ctx context.Context, sessionID, participantID, status string) (*Response, error)
	ListSessionsForParticipant(ctx context.Context, participantID string) ([]ParticipantSessionView, error)
	GetSessionForParticipant(ctx context.Context, sessionID, participantID string) (*ParticipantSessionDetail, error)
}

// ReportService defines the read-only aggregation queries
type ReportService interface {
	MonthlyReport(ctx context.Context, year, month int) (*MonthlyReport, error)
	AvailableMonths(ctx context.Context) ([]MonthSummary, error)
	OverallStats(ctx context.Context) (*OverallStats, error)
}
