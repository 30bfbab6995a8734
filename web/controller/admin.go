package controller

import (
	"net/http"
	"strconv"

	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/web/middleware"
	"github.com/kitchenhub/recipe-service/web/service"

	"github.com/gin-gonic/gin"
)

const defaultLogCount = 100

// AdminController exposes operational endpoints to administrators.
type AdminController struct {
	BaseController
}

func NewAdminController(g *gin.RouterGroup, auth *service.AuthService) *AdminController {
	a := &AdminController{}
	a.initRouter(g, auth)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup, auth *service.AuthService) {
	g.Use(middleware.TokenAuth(auth), middleware.RoleRequired(model.RoleAdmin))
	g.GET("/logs", a.logs)
}

// logs returns the newest buffered log entries, filtered by ?level= and capped by ?count=.
func (a *AdminController) logs(c *gin.Context) {
	count := defaultLogCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			pureJsonMsg(c, http.StatusBadRequest, false, "Invalid count must be a positive number")
			return
		}
		count = n
	}
	level := c.DefaultQuery("level", "info")
	c.JSON(http.StatusOK, logger.GetLogs(count, level))
}
