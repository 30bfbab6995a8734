package service

import (
	"strings"

	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagService struct {
	DB *gorm.DB
}

func NewHashtagService(db *gorm.DB) *HashtagService {
	return &HashtagService{DB: db}
}

// EnsureTags inserts the tags that do not exist yet and returns only those.
func (s *HashtagService) EnsureTags(tags []string) ([]model.Hashtag, error) {
	return ensureTags(s.DB, tags)
}

// LinkTags attaches existing hashtags to a recipe. Unknown tags are skipped.
func (s *HashtagService) LinkTags(recipeId int, tags []string) ([]model.RecipeHashtag, error) {
	return linkTags(s.DB, recipeId, tags)
}

func (s *HashtagService) GetHashtags() ([]model.Hashtag, error) {
	hashtags, err := database.GetHashtags(s.DB)
	if err != nil {
		return nil, storageError("get hashtags", err)
	}
	return hashtags, nil
}

// normalizeTags trims the tags and drops blanks and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func ensureTags(tx *gorm.DB, tags []string) ([]model.Hashtag, error) {
	tags = normalizeTags(tags)
	created := make([]model.Hashtag, 0)
	if len(tags) == 0 {
		return created, nil
	}

	existing, err := database.GetHashtagsByTags(tx, tags)
	if err != nil {
		return nil, storageError("ensure tags", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		known[h.Tag] = struct{}{}
	}

	for _, tag := range tags {
		if _, ok := known[tag]; ok {
			continue
		}
		h := model.Hashtag{Tag: tag}
		// a concurrent writer may have inserted the tag since the lookup
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&h)
		if res.Error != nil {
			return nil, storageError("ensure tags", res.Error)
		}
		if res.RowsAffected == 1 {
			created = append(created, h)
		}
	}
	return created, nil
}

func linkTags(tx *gorm.DB, recipeId int, tags []string) ([]model.RecipeHashtag, error) {
	hashtags, err := database.GetHashtagsByTags(tx, normalizeTags(tags))
	if err != nil {
		return nil, storageError("link tags", err)
	}
	links := make([]model.RecipeHashtag, 0, len(hashtags))
	if len(hashtags) == 0 {
		return links, nil
	}
	for _, h := range hashtags {
		links = append(links, model.RecipeHashtag{TagId: h.Id, RecipeId: recipeId})
	}
	err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, storageError("link tags", err)
	}
	return links, nil
}
