package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

const emailKey = "email"

// AuthMiddleware requires a valid bearer session token and stores the
// caller's email in the context.
func AuthMiddleware(tokens ports.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		email, err := tokens.Parse(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(emailKey, email)
		c.Next()
	}
}

// QueryTokenAuthMiddleware authenticates with the token query parameter, for
// clients such as browsers opening a websocket that cannot set headers.
func QueryTokenAuthMiddleware(tokens ports.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if bearer, ok := bearerToken(c.GetHeader("Authorization")); ok {
			token = bearer
		}

		email, err := tokens.Parse(token)
		if token == "" || err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(emailKey, email)
		c.Next()
	}
}

func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
	)
}
