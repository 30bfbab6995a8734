package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"

	"github.com/stretchr/testify/require"
)

var testTypes = []string{"salad", "first", "second", "soup", "dessert", "drink"}

type testEnv struct {
	auth     *AuthService
	users    *UserService
	hashtags *HashtagService
	likes    *LikeService
	recipes  *RecipeService
	photoDir string
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	err := database.InitDB(&config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "test.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	db := database.GetDB()
	auth, err := NewAuthServiceWith(db, "test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	photoDir := filepath.Join(dir, "images")
	return &testEnv{
		auth:     auth,
		users:    NewUserService(db, auth),
		hashtags: NewHashtagService(db),
		likes:    NewLikeService(db),
		recipes:  NewRecipeService(db, testTypes, NewPhotoStore(photoDir)),
		photoDir: photoDir,
	}
}

func (e *testEnv) register(t *testing.T, nickname string) *model.User {
	t.Helper()
	user, err := e.users.Register(nickname, "password", model.RoleUser)
	require.NoError(t, err)
	return user
}

func (e *testEnv) createRecipe(t *testing.T, author *model.User, name, recipeType string, tags ...string) *model.Recipe {
	t.Helper()
	recipe, err := e.recipes.Create(RecipeData{
		Name:        name,
		Description: name + " description",
		StepsMaking: "mix everything",
		Type:        recipeType,
	}, author, tags)
	require.NoError(t, err)
	return recipe
}

func recipeNames(recipes []model.Recipe) []string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	return names
}
