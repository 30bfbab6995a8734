package service

import (
	"slices"
	"strings"
	"time"

	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/util/metrics"

	"gorm.io/gorm"
)

// DefaultTopLimit is used when a ranking is requested without a limit.
const DefaultTopLimit = 10

// RecipeData holds the fields supplied when a recipe is created.
type RecipeData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StepsMaking string `json:"steps_making"`
	Type        string `json:"type"`
}

// RecipePatch holds the fields of an edit. Empty fields keep their stored value.
type RecipePatch struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StepsMaking string `json:"steps_making"`
	Type        string `json:"type"`
}

// RecipeFilter combines optional criteria with AND. Empty fields are ignored.
type RecipeFilter struct {
	Name string
	Type string
	Tag  string
}

// RecipeService manages recipes and answers listing queries.
type RecipeService struct {
	DB     *gorm.DB
	types  []string
	photos *PhotoStore
}

func NewRecipeService(db *gorm.DB, types []string, photos *PhotoStore) *RecipeService {
	return &RecipeService{DB: db, types: types, photos: photos}
}

// Types returns the allowed recipe types.
func (s *RecipeService) Types() []string {
	return s.types
}

// IsValidType reports whether t is one of the allowed recipe types.
func (s *RecipeService) IsValidType(t string) bool {
	return slices.Contains(s.types, t)
}

// Create writes the hashtags, the recipe and its tag links in one transaction.
// The author must be active and the type allowed.
func (s *RecipeService) Create(data RecipeData, author *model.User, tags []string) (*model.Recipe, error) {
	if !author.IsActive {
		return nil, ErrInactive
	}
	if !s.IsValidType(data.Type) {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(data.Name) == "" {
		return nil, NewInputError("recipe name is required")
	}

	recipe := &model.Recipe{
		AuthorId:     author.Id,
		Name:         data.Name,
		Description:  data.Description,
		StepsMaking:  data.StepsMaking,
		Type:         data.Type,
		IsActive:     true,
		DateCreation: today(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := ensureTags(tx, tags); err != nil {
			return err
		}
		if err := tx.Create(recipe).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return ErrUserNotFound
			}
			return storageError("create recipe", err)
		}
		_, err := linkTags(tx, recipe.Id, tags)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecipesCreated.Inc()
	return s.GetForAdmin(recipe.Id)
}

// Edit applies a partial update to one of the caller's active recipes.
func (s *RecipeService) Edit(recipeId int, patch RecipePatch, callerId int) (*model.Recipe, error) {
	own, err := database.GetRecipesByUser(s.DB, callerId)
	if err != nil {
		return nil, storageError("edit recipe", err)
	}
	idx := slices.IndexFunc(own, func(r model.Recipe) bool { return r.Id == recipeId })
	if idx < 0 {
		return nil, ErrNotOwner
	}
	if patch.Type != "" && !s.IsValidType(patch.Type) {
		return nil, ErrInvalidType
	}

	updates := map[string]any{}
	if patch.Name != "" {
		updates["name"] = patch.Name
	}
	if patch.Description != "" {
		updates["description"] = patch.Description
	}
	if patch.StepsMaking != "" {
		updates["steps_making"] = patch.StepsMaking
	}
	if patch.Type != "" {
		updates["type"] = patch.Type
	}
	if len(updates) > 0 {
		err := s.DB.Model(&model.Recipe{}).Where("id = ?", recipeId).Updates(updates).Error
		if err != nil {
			return nil, storageError("edit recipe", err)
		}
	}
	return s.GetForAdmin(recipeId)
}

// AttachPhoto stores the image next to the other recipe photos and records its path.
func (s *RecipeService) AttachPhoto(recipeId int, photo []byte, filename string) (*model.Recipe, error) {
	if !IsAllowedPhoto(filename) {
		return nil, ErrInvalidExtension
	}
	if _, err := s.Get(recipeId); err != nil {
		return nil, err
	}
	path, err := s.photos.Save(recipeId, filename, photo)
	if err != nil {
		return nil, err
	}
	err = s.DB.Model(&model.Recipe{}).Where("id = ?", recipeId).Update("photo", path).Error
	if err != nil {
		return nil, storageError("attach photo", err)
	}
	return s.Get(recipeId)
}

// Filter lists active recipes matching every given criterion: a case
// insensitive name substring, the exact type and a hashtag. An unknown
// hashtag matches nothing. The name is compared after Unicode case folding
// in Go, since SQLite's LOWER only folds ASCII.
func (s *RecipeService) Filter(f RecipeFilter) ([]model.Recipe, error) {
	if f.Name == "" && f.Type == "" && f.Tag == "" {
		recipes, err := database.GetRecipes(s.DB)
		if err != nil {
			return nil, storageError("filter recipes", err)
		}
		return recipes, nil
	}

	q := database.RecipeDetails(s.DB).Where("is_active = ?", true)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Tag != "" {
		hashtag, err := database.GetHashtag(s.DB, f.Tag)
		if database.IsNotFound(err) {
			return []model.Recipe{}, nil
		} else if err != nil {
			return nil, storageError("filter recipes", err)
		}
		links, err := database.GetRecipeHashtags(s.DB, hashtag.Id)
		if err != nil {
			return nil, storageError("filter recipes", err)
		}
		ids := make([]int, 0, len(links))
		for _, l := range links {
			ids = append(ids, l.RecipeId)
		}
		if len(ids) == 0 {
			return []model.Recipe{}, nil
		}
		q = q.Where("id IN ?", ids)
	}

	recipes := make([]model.Recipe, 0)
	if err := q.Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, storageError("filter recipes", err)
	}
	if f.Name == "" {
		return recipes, nil
	}

	name := strings.ToLower(f.Name)
	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), name) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Top returns up to limit active recipes ordered by like count, most liked
// first. Inactive recipes are dropped after ranking, so fewer than limit may
// come back.
func (s *RecipeService) Top(limit int) ([]model.Recipe, error) {
	if limit <= 0 {
		return nil, NewInputError("limit must be a positive number")
	}
	ranking, err := database.GetTopLikes(s.DB, limit)
	if err != nil {
		return nil, storageError("top recipes", err)
	}
	ids := make([]int, 0, len(ranking))
	for _, r := range ranking {
		ids = append(ids, r.RecipeId)
	}
	recipes, err := database.GetRecipesByIds(s.DB, ids)
	if err != nil {
		return nil, storageError("top recipes", err)
	}

	byId := make(map[int]model.Recipe, len(recipes))
	for _, r := range recipes {
		byId[r.Id] = r
	}
	ordered := make([]model.Recipe, 0, len(recipes))
	for _, id := range ids {
		if r, ok := byId[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// UserRecipes lists the user's active recipes.
func (s *RecipeService) UserRecipes(userId int) ([]model.Recipe, error) {
	recipes, err := database.GetRecipesByUser(s.DB, userId)
	if err != nil {
		return nil, storageError("user recipes", err)
	}
	return recipes, nil
}

// Favorites lists the active recipes the user has liked.
func (s *RecipeService) Favorites(userId int) ([]model.Recipe, error) {
	likes, err := database.GetLikesByUser(s.DB, userId)
	if err != nil {
		return nil, storageError("favorites", err)
	}
	ids := make([]int, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.RecipeId)
	}
	recipes, err := database.GetRecipesByIds(s.DB, ids)
	if err != nil {
		return nil, storageError("favorites", err)
	}
	return recipes, nil
}

// Get returns an active recipe.
func (s *RecipeService) Get(id int) (*model.Recipe, error) {
	recipe, err := database.GetRecipe(s.DB, id)
	if database.IsNotFound(err) {
		return nil, ErrRecipeNotFound
	} else if err != nil {
		return nil, storageError("get recipe", err)
	}
	return recipe, nil
}

// GetForAdmin returns a recipe whatever its active flag.
func (s *RecipeService) GetForAdmin(id int) (*model.Recipe, error) {
	recipe, err := database.GetRecipeForAdmin(s.DB, id)
	if database.IsNotFound(err) {
		return nil, ErrRecipeNotFound
	} else if err != nil {
		return nil, storageError("get recipe", err)
	}
	return recipe, nil
}

// ToggleActive flips the recipe's visibility. Calling it twice restores the
// original state.
func (s *RecipeService) ToggleActive(id int) (*model.Recipe, error) {
	recipe, err := s.GetForAdmin(id)
	if err != nil {
		return nil, err
	}
	recipe.IsActive = !recipe.IsActive
	err = s.DB.Model(&model.Recipe{}).Where("id = ?", id).Update("is_active", recipe.IsActive).Error
	if err != nil {
		return nil, storageError("toggle recipe", err)
	}
	return recipe, nil
}

// Delete removes the recipe together with its tag links and likes.
func (s *RecipeService) Delete(id int) error {
	res := s.DB.Delete(&model.Recipe{}, id)
	if res.Error != nil {
		return storageError("delete recipe", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
