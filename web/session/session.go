// Package session keeps the authenticated user of a request in the gin context.
package session

import (
	"github.com/kitchenhub/recipe-service/database/model"

	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

func SetLoginUser(c *gin.Context, user *model.User) {
	c.Set(loginUser, user)
}

func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(loginUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}
