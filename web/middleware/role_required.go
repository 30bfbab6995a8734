package middleware

import (
	"net/http"

	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/web/entity"
	"github.com/kitchenhub/recipe-service/web/session"

	"github.com/gin-gonic/gin"
)

// RoleRequired lets the request through only when the logged in user has one
// of the roles. It must run after TokenAuth.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{Msg: "No access"})
			return
		}
		c.Next()
	}
}
