package service

import (
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/util/metrics"

	"gorm.io/gorm"
)

// LikeStatus is the outcome of a like toggle.
type LikeStatus int

const (
	Liked LikeStatus = iota
	Unliked
	InvalidTarget
)

func (s LikeStatus) String() string {
	switch s {
	case Liked:
		return "liked"
	case Unliked:
		return "unliked"
	default:
		return "invalid_target"
	}
}

// LikeResult carries the inserted row when Status is Liked.
type LikeResult struct {
	Status LikeStatus
	Like   *model.Like
}

type LikeService struct {
	DB *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{DB: db}
}

// Toggle removes the user's like on the recipe if present, otherwise adds it.
// A missing recipe or user yields InvalidTarget.
func (s *LikeService) Toggle(userId, recipeId int) (LikeResult, error) {
	existing, err := database.GetLikeByUserRecipe(s.DB, userId, recipeId)
	if err == nil {
		if err := s.DB.Delete(existing).Error; err != nil {
			return LikeResult{}, storageError("unlike", err)
		}
		metrics.LikesToggled.WithLabelValues(Unliked.String()).Inc()
		return LikeResult{Status: Unliked}, nil
	} else if !database.IsNotFound(err) {
		return LikeResult{}, storageError("toggle like", err)
	}

	if _, err := database.GetRecipeForAdmin(s.DB, recipeId); database.IsNotFound(err) {
		return LikeResult{Status: InvalidTarget}, nil
	} else if err != nil {
		return LikeResult{}, storageError("toggle like", err)
	}

	like := &model.Like{UserId: userId, RecipeId: recipeId}
	if err := s.DB.Create(like).Error; err != nil {
		switch {
		case database.IsForeignKeyViolation(err):
			return LikeResult{Status: InvalidTarget}, nil
		case database.IsDuplicate(err):
			// lost a race with a concurrent like of the same pair
			return LikeResult{}, &kindError{kind: ErrConflict, msg: "the recipe is already liked"}
		}
		return LikeResult{}, storageError("like", err)
	}
	metrics.LikesToggled.WithLabelValues(Liked.String()).Inc()
	return LikeResult{Status: Liked, Like: like}, nil
}
