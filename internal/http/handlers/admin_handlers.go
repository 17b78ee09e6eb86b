package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// AdminHandlers handles roster and schedule management plus the response
// override. All routes here sit behind the admin role gate.
type AdminHandlers struct {
	rosterSvc     domain.RosterService
	scheduleSvc   domain.ScheduleService
	attendanceSvc domain.AttendanceService
	logger        *zap.Logger
	production    bool
	frontendURL   string
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(
	rosterSvc domain.RosterService,
	scheduleSvc domain.ScheduleService,
	attendanceSvc domain.AttendanceService,
	logger *zap.Logger,
	production bool,
	frontendURL string,
) *AdminHandlers {
	return &AdminHandlers{
		rosterSvc:     rosterSvc,
		scheduleSvc:   scheduleSvc,
		attendanceSvc: attendanceSvc,
		logger:        logger,
		production:    production,
		frontendURL:   frontendURL,
	}
}

// ParticipantRequest represents a participant create/update payload
type ParticipantRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// SessionRequest represents a session create/update payload
type SessionRequest struct {
	Title                       string `json:"title" binding:"required"`
	Description                 string `json:"description"`
	Date                        string `json:"date" binding:"required"`
	Time                        string `json:"time" binding:"required"`
	ShowResponsesToParticipants bool   `json:"showResponsesToParticipants"`
}

// OverrideRequest represents the admin response override payload
type OverrideRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateParticipant handles participant provisioning
func (h *AdminHandlers) CreateParticipant(c *gin.Context) {
	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	user, err := h.rosterSvc.CreateParticipant(c.Request.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrPhoneTaken:
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		default:
			internalError(c, h.logger, h.production, "Failed to create participant", err)
		}
		return
	}

	h.logger.Info("participant created", zap.String("participantId", user.ID))
	c.JSON(http.StatusCreated, gin.H{"participant": userJSON(user)})
}

// ListParticipants handles the roster listing
func (h *AdminHandlers) ListParticipants(c *gin.Context) {
	users, err := h.rosterSvc.ListParticipants(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to list participants", err)
		return
	}

	out := make([]gin.H, len(users))
	for i := range users {
		out[i] = userJSON(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"participants": out})
}

// UpdateParticipant handles participant edits
func (h *AdminHandlers) UpdateParticipant(c *gin.Context) {
	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	user, err := h.rosterSvc.UpdateParticipant(c.Request.Context(), c.Param("id"), req.Name, req.PhoneNumber)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrPhoneTaken:
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		case domain.ErrParticipantNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to update participant", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"participant": userJSON(user)})
}

// DeleteParticipant handles participant removal with cascading cleanup
func (h *AdminHandlers) DeleteParticipant(c *gin.Context) {
	if err := h.rosterSvc.DeleteParticipant(c.Request.Context(), c.Param("id")); err != nil {
		switch err {
		case domain.ErrParticipantNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to delete participant", err)
		}
		return
	}

	h.logger.Info("participant deleted", zap.String("participantId", c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"message": "Participant deleted"})
}

// CreateSession handles session scheduling
func (h *AdminHandlers) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	adminID, _ := c.Get("user_id")
	session, err := h.scheduleSvc.CreateSession(c.Request.Context(), adminID.(string), domain.SessionInput{
		Title:                       req.Title,
		Description:                 req.Description,
		Date:                        req.Date,
		Time:                        req.Time,
		ShowResponsesToParticipants: req.ShowResponsesToParticipants,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session date or time"})
		return
	}

	h.logger.Info("session created", zap.String("sessionId", session.ID), zap.String("date", session.Date))
	c.JSON(http.StatusCreated, gin.H{"session": h.sessionWithShareURL(session)})
}

// ListSessions handles the admin session listing with response tallies
func (h *AdminHandlers) ListSessions(c *gin.Context) {
	summaries, err := h.scheduleSvc.ListSessions(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to list sessions", err)
		return
	}

	out := make([]gin.H, len(summaries))
	for i := range summaries {
		item := h.sessionWithShareURL(&summaries[i].Session)
		item["responseCounts"] = summaries[i].ResponseCounts
		out[i] = item
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// GetSession handles the admin session detail with the full response union
func (h *AdminHandlers) GetSession(c *gin.Context) {
	detail, err := h.scheduleSvc.GetSessionDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to load session", err)
		}
		return
	}

	responses := make([]gin.H, len(detail.Responses))
	for i := range detail.Responses {
		responses[i] = responseViewJSON(&detail.Responses[i])
	}

	body := h.sessionWithShareURL(&detail.Session)
	body["responses"] = responses
	c.JSON(http.StatusOK, gin.H{"session": body})
}

// UpdateSession handles session edits
func (h *AdminHandlers) UpdateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	session, err := h.scheduleSvc.UpdateSession(c.Request.Context(), c.Param("id"), domain.SessionInput{
		Title:                       req.Title,
		Description:                 req.Description,
		Date:                        req.Date,
		Time:                        req.Time,
		ShowResponsesToParticipants: req.ShowResponsesToParticipants,
	})
	if err != nil {
		switch err {
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session date or time"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": h.sessionWithShareURL(session)})
}

// DeleteSession handles session soft deletion
func (h *AdminHandlers) DeleteSession(c *gin.Context) {
	if err := h.scheduleSvc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		switch err {
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to delete session", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

// OverrideResponse handles the admin attendance override. It works at any
// time, including after the session started, and locks participant edits.
func (h *AdminHandlers) OverrideResponse(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	response, err := h.attendanceSvc.OverrideResponse(c.Request.Context(), c.Param("id"), c.Param("participantId"), req.Status)
	if err != nil {
		switch err {
		case domain.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case domain.ErrParticipantNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to override response", err)
		}
		return
	}

	h.logger.Info("response overridden",
		zap.String("sessionId", response.SessionID),
		zap.String("participantId", response.ParticipantID),
		zap.String("status", response.Status))
	c.JSON(http.StatusOK, gin.H{"response": responseJSON(response)})
}

func (h *AdminHandlers) sessionWithShareURL(s *domain.ClassSession) gin.H {
	out := sessionJSON(s)
	out["shareUrl"] = h.frontendURL + "/session/" + s.ID
	return out
}
