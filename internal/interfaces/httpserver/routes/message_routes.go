package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/interfaces/httpserver/handlers"
	"chat-server/internal/interfaces/httpserver/responses"
)

// RegisterMessageRoutes registers the conversation query routes. The static
// chatlist route coexists with the :userID parameter route; gin resolves the
// static segment first.
func RegisterMessageRoutes(router gin.IRouter, handler *handlers.MessageHandler, log zerolog.Logger) {
	router.GET("/chatlist", getChatList(handler, log))
	router.GET("/:userID", getHistory(handler, log))
	router.PUT("/:userID/read", markRead(handler, log))
}

// getHistory returns every message between the caller and the given user,
// ordered by timestamp ascending.
func getHistory(handler *handlers.MessageHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		selfID := auth.UserID(c)
		otherID := c.Param("userID")

		msgs, err := handler.GetHistory(c.Request.Context(), selfID, otherID)
		if err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, responses.NewMessageListResponse(msgs))
	}
}

// getChatList returns one entry per known user with the newest message of
// that conversation, or null when the pair has never talked.
func getChatList(handler *handlers.MessageHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		selfID := auth.UserID(c)

		summaries, err := handler.GetChatList(c.Request.Context(), selfID)
		if err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, responses.NewChatListResponse(summaries))
	}
}

// markRead flips every unread message from the given user to the caller.
func markRead(handler *handlers.MessageHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		selfID := auth.UserID(c)
		otherID := c.Param("userID")

		if err := handler.MarkRead(c.Request.Context(), otherID, selfID); err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, responses.AckResponse{Message: "Messages marked as read"})
	}
}
