package domain

// Roles carried in token claims and stored on users
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// Response statuses a participant can declare for a session
const (
	StatusJoining    = "joining"
	StatusNotJoining = "not_joining"
	StatusMaybe      = "maybe"
)

// ValidStatus reports whether s is one of the three response statuses.
func ValidStatus(s string) bool {
	return s == StatusJoining || s == StatusNotJoining || s == StatusMaybe
}

// User represents an identity in the system. Admins carry Email+GoogleID,
// participants carry PhoneNumber in canonical form. Timestamps are RFC3339.
type User struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	GoogleID    string
	Role        string
	CreatedAt   string
	UpdatedAt   string
}

// ClassSession is a single scheduled class instance. Datetime is derived from
// Date ("2006-01-02") and Time ("15:04") and must be recomputed on any edit.
type ClassSession struct {
	ID                          string
	Title                       string
	Description                 string
	Date                        string
	Time                        string
	Datetime                    string
	CreatedByID                 string
	ShowResponsesToParticipants bool
	IsActive                    bool
	CreatedAt                   string
	UpdatedAt                   string
}

// Response is a participant's stated intent for one session. At most one row
// exists per (SessionID, ParticipantID); AdminOverride freezes participant edits.
type Response struct {
	ID            string
	SessionID     string
	ParticipantID string
	Status        string
	AdminOverride bool
	CreatedAt     string
	UpdatedAt     string
}

// OTPCode is a single-use phone login code. ExpiresAt is RFC3339 so lookups
// can compare lexicographically against the current instant.
type OTPCode struct {
	ID          string
	PhoneNumber string
	Code        string
	ExpiresAt   string
	Used        bool
	CreatedAt   string
}

// RefreshToken is the revocation record for a long-lived refresh credential.
// A cryptographically valid token is only honored while its row exists.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt string
	CreatedAt string
}

// TokenClaims is the payload carried by both access and refresh tokens.
type TokenClaims struct {
	UserID      string
	Role        string
	Email       string
	PhoneNumber string
	IssuedAt    int64
	ExpiresAt   int64
}

// AuthResult is the outcome of a successful login on either path.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// OAuthUserInfo is the profile asserted by the external OAuth provider.
type OAuthUserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// ResponseView is the per-participant attendance view decided once at the
// data-access boundary. Responded=false means a synthetic no-response entry;
// Status and AdminOverride are only meaningful when Responded is true.
type ResponseView struct {
	ParticipantID    string
	ParticipantName  string
	ParticipantPhone string
	Responded        bool
	ResponseID       string
	Status           string
	AdminOverride    bool
	UpdatedAt        string
}

// ResponseCounts tallies a session's responses by status.
type ResponseCounts struct {
	Joining    int `json:"joining"`
	NotJoining int `json:"not_joining"`
	Maybe      int `json:"maybe"`
}

// SessionSummary is a session with its response tallies, for admin listings.
type SessionSummary struct {
	Session        ClassSession
	ResponseCounts ResponseCounts
}

// SessionDetail is the admin view of a session with the full response set:
// one ResponseView per participant, responded or not.
type SessionDetail struct {
	Session   ClassSession
	Responses []ResponseView
}

// MyResponse is a participant's own response as exposed in their views.
type MyResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	AdminOverride bool   `json:"adminOverride"`
	UpdatedAt     string `json:"updatedAt"`
}

// OtherResponse is another participant's response, visible only when the
// session's visibility flag is set.
type OtherResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ParticipantName string `json:"participantName"`
	UpdatedAt       string `json:"updatedAt"`
}

// ParticipantSessionView is one session in a participant's listing, with
// their own response attached and the edit-window verdict precomputed.
type ParticipantSessionView struct {
	Session    ClassSession
	MyResponse *MyResponse
	CanEdit    bool
}

// ParticipantSessionDetail adds conditionally visible other responses.
type ParticipantSessionDetail struct {
	ParticipantSessionView
	OtherResponses []OtherResponse
}
