package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// internalError logs the failure and returns the stable 500 envelope. The
// underlying error text is exposed only outside production.
func internalError(c *gin.Context, logger *zap.Logger, production bool, message string, err error) {
	logger.Error(message, zap.Error(err))
	body := gin.H{"error": message}
	if !production {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// JSON shapes are assembled here, in one place per entity, so every handler
// returns the same camelCase wire form.

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"phoneNumber": u.PhoneNumber,
		"role":        u.Role,
		"createdAt":   u.CreatedAt,
		"updatedAt":   u.UpdatedAt,
	}
}

func sessionJSON(s *domain.ClassSession) gin.H {
	return gin.H{
		"id":                          s.ID,
		"title":                       s.Title,
		"description":                 s.Description,
		"date":                        s.Date,
		"time":                        s.Time,
		"datetime":                    s.Datetime,
		"showResponsesToParticipants": s.ShowResponsesToParticipants,
		"isActive":                    s.IsActive,
		"createdAt":                   s.CreatedAt,
		"updatedAt":                   s.UpdatedAt,
	}
}

// responseViewJSON renders one entry of the admin response union. A
// participant who has not responded gets "responded": false and a null
// response object; callers branch on the flag, not on field presence.
func responseViewJSON(v *domain.ResponseView) gin.H {
	out := gin.H{
		"participantId":    v.ParticipantID,
		"participantName":  v.ParticipantName,
		"participantPhone": v.ParticipantPhone,
		"responded":        v.Responded,
	}
	if v.Responded {
		out["response"] = gin.H{
			"id":            v.ResponseID,
			"status":        v.Status,
			"adminOverride": v.AdminOverride,
			"updatedAt":     v.UpdatedAt,
		}
	} else {
		out["response"] = nil
	}
	return out
}

func responseJSON(r *domain.Response) gin.H {
	return gin.H{
		"id":            r.ID,
		"sessionId":     r.SessionID,
		"participantId": r.ParticipantID,
		"status":        r.Status,
		"adminOverride": r.AdminOverride,
		"createdAt":     r.CreatedAt,
		"updatedAt":     r.UpdatedAt,
	}
}

func participantViewJSON(v *domain.ParticipantSessionView) gin.H {
	out := sessionJSON(&v.Session)
	out["canEdit"] = v.CanEdit
	if v.MyResponse != nil {
		out["myResponse"] = v.MyResponse
	} else {
		out["myResponse"] = nil
	}
	return out
}
