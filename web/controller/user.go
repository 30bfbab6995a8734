package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/util/metrics"
	"github.com/kitchenhub/recipe-service/web/entity"
	"github.com/kitchenhub/recipe-service/web/middleware"
	"github.com/kitchenhub/recipe-service/web/service"

	"github.com/gin-gonic/gin"
)

// UserController serves registration, login, profiles and account moderation.
type UserController struct {
	BaseController

	userService *service.UserService
}

func NewUserController(g *gin.RouterGroup, users *service.UserService, auth *service.AuthService, loginLimit int) *UserController {
	a := &UserController{userService: users}
	a.initRouter(g, auth, loginLimit)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup, auth *service.AuthService, loginLimit int) {
	g.POST("", a.register)
	g.POST("/login", middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(loginLimit)), a.login)

	authed := g.Group("")
	authed.Use(middleware.TokenAuth(auth))
	authed.GET("", a.profile)

	admin := authed.Group("")
	admin.Use(middleware.RoleRequired(model.RoleAdmin))
	admin.PUT("/:id/ban", a.ban)
	admin.DELETE("/:id", a.delete)
}

type credentials struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *UserController) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "nickname and password are required")
		return
	}
	user, err := a.userService.Register(req.Nickname, req.Password, model.RoleUser)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewUserShow(user))
}

func (a *UserController) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "nickname and password are required")
		return
	}
	token, err := a.userService.Login(req.Nickname, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			metrics.FailedLoginAttempts.WithLabelValues("username").Inc()
		case errors.Is(err, service.ErrInvalidPassword):
			metrics.FailedLoginAttempts.WithLabelValues("password").Inc()
		}
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (a *UserController) profile(c *gin.Context) {
	profile, err := a.userService.GetProfile(a.loginUser(c).Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (a *UserController) ban(c *gin.Context) {
	id, ok := paramId(c, "id", "user_id")
	if !ok {
		return
	}
	user, err := a.userService.ToggleActive(id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUserShow(user))
}

func (a *UserController) delete(c *gin.Context) {
	id, ok := paramId(c, "id", "user_id")
	if !ok {
		return
	}
	if err := a.userService.Delete(id); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Detail{Detail: fmt.Sprintf("The user (%d) was deleted", id)})
}
