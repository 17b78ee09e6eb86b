package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// ParticipantHandlers handles the participant-facing session views and the
// response state machine endpoints.
type ParticipantHandlers struct {
	attendanceSvc domain.AttendanceService
	logger        *zap.Logger
	production    bool
}

// NewParticipantHandlers creates new participant handlers
func NewParticipantHandlers(attendanceSvc domain.AttendanceService, logger *zap.Logger, production bool) *ParticipantHandlers {
	return &ParticipantHandlers{
		attendanceSvc: attendanceSvc,
		logger:        logger,
		production:    production,
	}
}

// ResponseRequest represents a participant's response submission
type ResponseRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListSessions returns active sessions with the caller's own response attached
func (h *ParticipantHandlers) ListSessions(c *gin.Context) {
	userID, _ := c.Get("user_id")

	views, err := h.attendanceSvc.ListSessionsForParticipant(c.Request.Context(), userID.(string))
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to list sessions", err)
		return
	}

	out := make([]gin.H, len(views))
	for i := range views {
		out[i] = participantViewJSON(&views[i])
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// GetSession returns one session with conditionally visible other responses
func (h *ParticipantHandlers) GetSession(c *gin.Context) {
	userID, _ := c.Get("user_id")

	detail, err := h.attendanceSvc.GetSessionForParticipant(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		switch err {
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		default:
			internalError(c, h.logger, h.production, "Failed to load session", err)
		}
		return
	}

	body := participantViewJSON(&detail.ParticipantSessionView)
	if detail.Session.ShowResponsesToParticipants {
		body["otherResponses"] = detail.OtherResponses
	}
	c.JSON(http.StatusOK, gin.H{"session": body})
}

// SubmitResponse creates or updates the caller's response for a session
func (h *ParticipantHandlers) SubmitResponse(c *gin.Context) {
	var req ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	userID, _ := c.Get("user_id")
	response, created, err := h.attendanceSvc.SubmitResponse(c.Request.Context(), c.Param("id"), userID.(string), req.Status)
	if err != nil {
		switch err {
		case domain.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case domain.ErrSessionStarted:
			c.JSON(http.StatusForbidden, gin.H{"error": "Session has already started"})
		case domain.ErrResponseLocked:
			c.JSON(http.StatusForbidden, gin.H{"error": "Response locked by administrator"})
		default:
			internalError(c, h.logger, h.production, "Failed to submit response", err)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"response": responseJSON(response)})
}

// DeleteResponse withdraws the caller's response for a session
func (h *ParticipantHandlers) DeleteResponse(c *gin.Context) {
	userID, _ := c.Get("user_id")

	err := h.attendanceSvc.DeleteResponse(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		switch err {
		case domain.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case domain.ErrResponseNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
		case domain.ErrSessionStarted:
			c.JSON(http.StatusForbidden, gin.H{"error": "Session has already started"})
		case domain.ErrResponseLocked:
			c.JSON(http.StatusForbidden, gin.H{"error": "Response locked by administrator"})
		default:
			internalError(c, h.logger, h.production, "Failed to delete response", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response deleted"})
}
