package middleware

import (
	"net/http"

	"github.com/kitchenhub/recipe-service/web/entity"
	"github.com/kitchenhub/recipe-service/web/service"
	"github.com/kitchenhub/recipe-service/web/session"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries the access token instead of the Authorization header.
const TokenHeader = "jwt"

// TokenAuth resolves the access token of the request to its user and stores
// it in the session. Requests without a valid token are rejected with 401.
func TokenAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.ResolveToken(c.GetHeader(TokenHeader))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{Msg: service.ErrUnauthorized.Error()})
			return
		}
		session.SetLoginUser(c, user)
		c.Next()
	}
}
