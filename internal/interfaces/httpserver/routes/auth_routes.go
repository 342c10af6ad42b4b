package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/auth"
	"chat-server/internal/interfaces/httpserver/handlers"
	"chat-server/internal/interfaces/httpserver/requests"
	"chat-server/internal/interfaces/httpserver/responses"
	"chat-server/internal/utils/platformerrors"
)

// RegisterAuthRoutes registers the account routes under the API group.
func RegisterAuthRoutes(router gin.IRouter, handler *handlers.AuthHandler, validator *auth.Validator, log zerolog.Logger) {
	group := router.Group("/auth")
	group.POST("/register", register(handler, log))
	group.POST("/login", login(handler, log))
	group.GET("/profile", validator.Middleware(), profile(handler, log))
}

func register(handler *handlers.AuthHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}

		result, err := handler.Register(c.Request.Context(), user.RegisterCommand{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, responses.AuthResponse{Token: result.Token, User: result.User})
	}
}

func login(handler *handlers.AuthHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}

		result, err := handler.Login(c.Request.Context(), user.LoginCommand{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, responses.AuthResponse{Token: result.Token, User: result.User})
	}
}

func profile(handler *handlers.AuthHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := handler.Profile(c.Request.Context(), auth.UserID(c))
		if err != nil {
			responses.HandleError(c, err, log)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}
