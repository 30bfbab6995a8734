package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/web/entity"
	"github.com/kitchenhub/recipe-service/web/middleware"
	"github.com/kitchenhub/recipe-service/web/service"

	"github.com/gin-gonic/gin"
)

const maxPhotoSize = 10 << 20

// RecipeController serves recipe publishing, listing, likes and moderation.
type RecipeController struct {
	BaseController

	recipeService  *service.RecipeService
	likeService    *service.LikeService
	userService    *service.UserService
	hashtagService *service.HashtagService
}

func NewRecipeController(
	g *gin.RouterGroup,
	auth *service.AuthService,
	recipes *service.RecipeService,
	likes *service.LikeService,
	users *service.UserService,
	hashtags *service.HashtagService,
) *RecipeController {
	a := &RecipeController{
		recipeService:  recipes,
		likeService:    likes,
		userService:    users,
		hashtagService: hashtags,
	}
	a.initRouter(g, auth)
	return a
}

func (a *RecipeController) initRouter(g *gin.RouterGroup, auth *service.AuthService) {
	g.Use(middleware.TokenAuth(auth))

	g.POST("", a.create)
	g.GET("", a.filter)
	g.GET("/top", a.top)
	g.GET("/like", a.favorites)
	g.GET("/my", a.mine)
	g.GET("/tags", a.tags)
	g.PUT("/:id", a.edit)
	g.POST("/:id", a.attachPhoto)
	g.POST("/:id/like", a.like)

	admin := g.Group("")
	admin.Use(middleware.RoleRequired(model.RoleAdmin))
	admin.PUT("/:id/ban", a.ban)
	admin.DELETE("/:id", a.delete)
}

type createRecipeReq struct {
	service.RecipeData
	Tags []string `json:"tags"`
}

func (a *RecipeController) create(c *gin.Context) {
	user := a.loginUser(c)
	if !user.IsActive {
		jsonError(c, service.ErrInactive)
		return
	}
	var req createRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid recipe data")
		return
	}
	if !a.recipeService.IsValidType(req.Type) {
		jsonError(c, service.ErrInvalidType)
		return
	}
	recipe, err := a.recipeService.Create(req.RecipeData, user, req.Tags)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewRecipeShow(recipe))
}

func (a *RecipeController) edit(c *gin.Context) {
	id, ok := paramId(c, "id", "recipe_id")
	if !ok {
		return
	}
	var patch service.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid recipe data")
		return
	}
	recipe, err := a.recipeService.Edit(id, patch, a.loginUser(c).Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShow(recipe))
}

func (a *RecipeController) attachPhoto(c *gin.Context) {
	id, ok := paramId(c, "id", "recipe_id")
	if !ok {
		return
	}
	header, err := c.FormFile("photo")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "photo file is required")
		return
	}
	if !service.IsAllowedPhoto(header.Filename) {
		jsonError(c, service.ErrInvalidExtension)
		return
	}
	if header.Size > maxPhotoSize {
		pureJsonMsg(c, http.StatusBadRequest, false, "photo is too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "can not read photo")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "can not read photo")
		return
	}

	recipe, err := a.recipeService.AttachPhoto(id, data, header.Filename)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewRecipeShow(recipe))
}

func (a *RecipeController) filter(c *gin.Context) {
	recipes, err := a.recipeService.Filter(service.RecipeFilter{
		Name: c.Query("name"),
		Type: c.Query("type"),
		Tag:  c.Query("tag"),
	})
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShows(recipes))
}

func (a *RecipeController) top(c *gin.Context) {
	limit := service.DefaultTopLimit
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			pureJsonMsg(c, http.StatusBadRequest, false, "Invalid limit must be a number")
			return
		}
		limit = n
	}
	recipes, err := a.recipeService.Top(limit)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShows(recipes))
}

func (a *RecipeController) like(c *gin.Context) {
	id, ok := paramId(c, "id", "recipe_id")
	if !ok {
		return
	}
	user := a.loginUser(c)
	result, err := a.likeService.Toggle(user.Id, id)
	if err != nil {
		jsonError(c, err)
		return
	}
	if result.Status == service.InvalidTarget {
		jsonError(c, service.ErrRecipeNotFound)
		return
	}
	profile, err := a.userService.GetProfile(user.Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Favorites{
		UserId:    profile.Id,
		Favorites: profile.Favorites,
		Status:    result.Status.String(),
	})
}

func (a *RecipeController) favorites(c *gin.Context) {
	recipes, err := a.recipeService.Favorites(a.loginUser(c).Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShows(recipes))
}

func (a *RecipeController) mine(c *gin.Context) {
	recipes, err := a.recipeService.UserRecipes(a.loginUser(c).Id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShows(recipes))
}

func (a *RecipeController) tags(c *gin.Context) {
	hashtags, err := a.hashtagService.GetHashtags()
	if err != nil {
		jsonError(c, err)
		return
	}
	tags := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		tags = append(tags, h.Tag)
	}
	c.JSON(http.StatusOK, tags)
}

func (a *RecipeController) ban(c *gin.Context) {
	id, ok := paramId(c, "id", "recipe_id")
	if !ok {
		return
	}
	recipe, err := a.recipeService.ToggleActive(id)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewRecipeShow(recipe))
}

func (a *RecipeController) delete(c *gin.Context) {
	id, ok := paramId(c, "id", "recipe_id")
	if !ok {
		return
	}
	if err := a.recipeService.Delete(id); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Detail{Detail: fmt.Sprintf("The recipe (%d) was deleted", id)})
}
