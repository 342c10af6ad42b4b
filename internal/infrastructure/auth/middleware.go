package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-server/internal/utils/platformerrors"
)

// UserIDKey is the gin context key carrying the authenticated user ID.
const UserIDKey = "user_id"

// Validator enforces identity tokens on incoming requests.
type Validator struct {
	tokens *TokenIssuer
	log    zerolog.Logger
}

// NewValidator creates a request validator over the token issuer.
func NewValidator(tokens *TokenIssuer, log zerolog.Logger) *Validator {
	return &Validator{tokens: tokens, log: log}
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user ID in the gin context.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := v.Authenticate(c.Request)
		if err != nil {
			platformerrors.WriteUnauthorized(c, err.Error())
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// Authenticate resolves the caller identity from the Authorization header or,
// for websocket handshakes where browsers cannot set headers, from the token
// query parameter.
func (v *Validator) Authenticate(r *http.Request) (string, error) {
	raw := bearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		raw = r.URL.Query().Get("token")
	}
	if raw == "" {
		return "", errMissingToken
	}

	claims, err := v.tokens.Validate(raw)
	if err != nil {
		v.log.Debug().Err(err).Msg("token validation failed")
		return "", errInvalidToken
	}
	return claims.UserID, nil
}

// UserID returns the authenticated user ID stored by Middleware.
func UserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

var (
	errMissingToken = authError("no token provided")
	errInvalidToken = authError("invalid token")
)

type authError string

func (e authError) Error() string { return string(e) }

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
