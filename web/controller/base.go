// Package controller maps the HTTP API onto the services: it parses requests,
// checks the caller and shapes the responses.
package controller

import (
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by the controllers.
type BaseController struct{}

// loginUser returns the user set by the token middleware.
func (a *BaseController) loginUser(c *gin.Context) *model.User {
	return session.GetLoginUser(c)
}
