package database

import (
	"github.com/kitchenhub/recipe-service/database/model"

	"gorm.io/gorm"
)

// RecipeDetails preloads everything a recipe view needs: author, tag text and likes.
func RecipeDetails(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").Preload("Tags.Hashtag").Preload("Likes")
}

func GetUser(tx *gorm.DB, id int) (*model.User, error) {
	user := &model.User{}
	if err := tx.Where("id = ?", id).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByNickname(tx *gorm.DB, nickname string) (*model.User, error) {
	user := &model.User{}
	if err := tx.Where("nickname = ?", nickname).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetRecipe returns an active recipe.
func GetRecipe(tx *gorm.DB, id int) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	err := RecipeDetails(tx).
		Where("id = ? AND is_active = ?", id, true).
		First(recipe).Error
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipes returns all active recipes.
func GetRecipes(tx *gorm.DB) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := RecipeDetails(tx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&recipes).Error
	return recipes, err
}

// GetRecipeForAdmin returns a recipe regardless of its active flag.
func GetRecipeForAdmin(tx *gorm.DB, id int) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	if err := RecipeDetails(tx).Where("id = ?", id).First(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipesByIds returns the active recipes whose id is in ids, ordered by id.
func GetRecipesByIds(tx *gorm.DB, ids []int) ([]model.Recipe, error) {
	recipes := make([]model.Recipe, 0)
	if len(ids) == 0 {
		return recipes, nil
	}
	err := RecipeDetails(tx).
		Where("id IN ? AND is_active = ?", ids, true).
		Order("id ASC").
		Find(&recipes).Error
	return recipes, err
}

// GetRecipesByUser returns the active recipes written by a user.
func GetRecipesByUser(tx *gorm.DB, userId int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := RecipeDetails(tx).
		Where("author_id = ? AND is_active = ?", userId, true).
		Order("id ASC").
		Find(&recipes).Error
	return recipes, err
}

// CountRecipesByUser counts every recipe written by a user, active or not.
func CountRecipesByUser(tx *gorm.DB, userId int) (int64, error) {
	var count int64
	err := tx.Model(&model.Recipe{}).Where("author_id = ?", userId).Count(&count).Error
	return count, err
}

func GetRecipeHashtags(tx *gorm.DB, hashtagId int) ([]model.RecipeHashtag, error) {
	var links []model.RecipeHashtag
	err := tx.Where("tag_id = ?", hashtagId).Find(&links).Error
	return links, err
}

func GetHashtag(tx *gorm.DB, tag string) (*model.Hashtag, error) {
	hashtag := &model.Hashtag{}
	if err := tx.Where("tag = ?", tag).First(hashtag).Error; err != nil {
		return nil, err
	}
	return hashtag, nil
}

func GetHashtags(tx *gorm.DB) ([]model.Hashtag, error) {
	var hashtags []model.Hashtag
	err := tx.Order("id ASC").Find(&hashtags).Error
	return hashtags, err
}

func GetHashtagsByTags(tx *gorm.DB, tags []string) ([]model.Hashtag, error) {
	hashtags := make([]model.Hashtag, 0)
	if len(tags) == 0 {
		return hashtags, nil
	}
	err := tx.Where("tag IN ?", tags).Order("id ASC").Find(&hashtags).Error
	return hashtags, err
}

func GetLikesByUser(tx *gorm.DB, userId int) ([]model.Like, error) {
	var likes []model.Like
	err := tx.Where("user_id = ?", userId).Order("id ASC").Find(&likes).Error
	return likes, err
}

func GetLikeByUserRecipe(tx *gorm.DB, userId int, recipeId int) (*model.Like, error) {
	like := &model.Like{}
	err := tx.Where("user_id = ? AND recipe_id = ?", userId, recipeId).First(like).Error
	if err != nil {
		return nil, err
	}
	return like, nil
}

// GetTopLikes returns up to limit (recipe id, like count) pairs, most liked
// first. Ties are broken by the lower recipe id.
func GetTopLikes(tx *gorm.DB, limit int) ([]model.RecipeLikes, error) {
	var rows []model.RecipeLikes
	err := tx.Model(&model.Like{}).
		Select("recipe_id, COUNT(id) AS likes").
		Group("recipe_id").
		Order("likes DESC, recipe_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
