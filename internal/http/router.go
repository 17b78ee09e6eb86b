package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/galvital/YogaMoves/internal/http/handlers"
	"github.com/galvital/YogaMoves/internal/http/middleware"
)

// BuildRouter wires every route group. Role gating is declarative: the JWT
// middleware authenticates, the casbin middleware authorizes by path pattern.
func BuildRouter(ah *handlers.AuthHandlers, adh *handlers.AdminHandlers, ph *handlers.ParticipantHandlers, rh *handlers.ReportHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.GET("/google/url", ah.GoogleURL)
	auth.POST("/google/callback", ah.GoogleCallback)
	auth.POST("/otp/request", ah.RequestOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/logout", ah.Logout)

	me := r.Group("/api/auth").Use(jwtmw.WithJWT(), cb.Enforce())
	me.GET("/me", ah.Me)

	adm := r.Group("/api/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.POST("/participants", adh.CreateParticipant)
	adm.GET("/participants", adh.ListParticipants)
	adm.PUT("/participants/:id", adh.UpdateParticipant)
	adm.DELETE("/participants/:id", adh.DeleteParticipant)
	adm.POST("/sessions", adh.CreateSession)
	adm.GET("/sessions", adh.ListSessions)
	adm.GET("/sessions/:id", adh.GetSession)
	adm.PUT("/sessions/:id", adh.UpdateSession)
	adm.DELETE("/sessions/:id", adh.DeleteSession)
	adm.PUT("/sessions/:id/responses/:participantId", adh.OverrideResponse)

	part := r.Group("/api/participants").Use(jwtmw.WithJWT(), cb.Enforce())
	part.GET("/sessions", ph.ListSessions)
	part.GET("/sessions/:id", ph.GetSession)
	part.POST("/sessions/:id/responses", ph.SubmitResponse)
	part.DELETE("/sessions/:id/responses", ph.DeleteResponse)

	rep := r.Group("/api/reports").Use(jwtmw.WithJWT(), cb.Enforce())
	rep.GET("/monthly/:year/:month", rh.Monthly)
	rep.GET("/available-months", rh.AvailableMonths)
	rep.GET("/stats", rh.Stats)

	return r
}
