package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/greenpass/greenpass-support/internal/api/handlers"
	"github.com/greenpass/greenpass-support/internal/api/middleware"
)

type Deps struct {
	Chat  *handlers.ChatHandler
	FAQ   *handlers.FAQHandler
	Admin *handlers.AdminHandler
	WS    *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/chat/open", d.Chat.Open)
	auth.POST("/chat/send", d.Chat.Send)
	auth.GET("/chat/conversations/:conversation_id/messages", d.Chat.Messages)
	auth.GET("/chat/quick-actions", d.Chat.QuickActions)

	auth.GET("/faq", d.FAQ.List)

	// Support desk
	staff := auth.Group("/admin")
	staff.Use(middleware.RequireStaff())
	staff.GET("/escalations", d.Admin.Escalations)
	staff.POST("/conversations/:conversation_id/reopen", d.Admin.Reopen)
	staff.POST("/conversations/:conversation_id/reply", d.Admin.Reply)

	// WebSocket
	auth.GET("/ws/chat/:conversation_id", d.WS.ChatWS)
}
