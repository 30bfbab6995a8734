package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	err := InitDB(&config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "test.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, CloseDB())
	})
}

func seedRecipe(t *testing.T, authorId int, name string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		AuthorId:     authorId,
		Name:         name,
		Type:         "soup",
		IsActive:     true,
		DateCreation: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, GetDB().Create(recipe).Error)
	return recipe
}

func TestInitDBRejectsEmptyPath(t *testing.T) {
	err := InitDB(&config.DatabaseConfig{Type: config.DatabaseTypeSQLite})
	assert.Error(t, err)
}

func TestUniqueConstraints(t *testing.T) {
	setup(t)
	db := GetDB()
	assert.True(t, IsSQLite())

	require.NoError(t, db.Create(&model.User{Nickname: "alice", HashedPassword: "x", IsActive: true, Role: model.RoleUser}).Error)
	err := db.Create(&model.User{Nickname: "alice", HashedPassword: "y", IsActive: true, Role: model.RoleUser}).Error
	assert.True(t, IsDuplicate(err))

	recipe := seedRecipe(t, 1, "Borscht")
	require.NoError(t, db.Create(&model.Like{UserId: 1, RecipeId: recipe.Id}).Error)
	err = db.Create(&model.Like{UserId: 1, RecipeId: recipe.Id}).Error
	assert.True(t, IsDuplicate(err))

	err = db.Create(&model.Like{UserId: 1, RecipeId: 9999}).Error
	assert.True(t, IsForeignKeyViolation(err))

	_, err = GetUser(db, 9999)
	assert.True(t, IsNotFound(err))
}

func TestDeleteCascades(t *testing.T) {
	setup(t)
	db := GetDB()

	author := &model.User{Nickname: "alice", HashedPassword: "x", IsActive: true, Role: model.RoleUser}
	fan := &model.User{Nickname: "bob", HashedPassword: "x", IsActive: true, Role: model.RoleUser}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(fan).Error)

	recipe := seedRecipe(t, author.Id, "Borscht")
	hashtag := &model.Hashtag{Tag: "beet"}
	require.NoError(t, db.Create(hashtag).Error)
	require.NoError(t, db.Create(&model.RecipeHashtag{TagId: hashtag.Id, RecipeId: recipe.Id}).Error)
	require.NoError(t, db.Create(&model.Like{UserId: fan.Id, RecipeId: recipe.Id}).Error)

	stored, err := GetRecipe(db, recipe.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Author.Nickname)
	assert.Equal(t, []string{"beet"}, stored.TagNames())
	assert.Len(t, stored.Likes, 1)

	require.NoError(t, db.Delete(&model.User{}, author.Id).Error)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&model.RecipeHashtag{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&model.Hashtag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetTopLikes(t *testing.T) {
	setup(t)
	db := GetDB()

	for _, nickname := range []string{"a", "b", "c"} {
		require.NoError(t, db.Create(&model.User{Nickname: nickname, HashedPassword: "x", IsActive: true, Role: model.RoleUser}).Error)
	}
	first := seedRecipe(t, 1, "first")
	second := seedRecipe(t, 1, "second")
	third := seedRecipe(t, 1, "third")

	likes := []model.Like{
		{UserId: 1, RecipeId: first.Id},
		{UserId: 1, RecipeId: second.Id},
		{UserId: 2, RecipeId: second.Id},
		{UserId: 1, RecipeId: third.Id},
	}
	require.NoError(t, db.Create(&likes).Error)

	rows, err := GetTopLikes(db, 10)
	require.NoError(t, err)
	assert.Equal(t, []model.RecipeLikes{
		{RecipeId: second.Id, Likes: 2},
		{RecipeId: first.Id, Likes: 1},
		{RecipeId: third.Id, Likes: 1},
	}, rows)

	rows, err = GetTopLikes(db, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGetRecipesByIdsSkipsInactive(t *testing.T) {
	setup(t)
	db := GetDB()
	require.NoError(t, db.Create(&model.User{Nickname: "a", HashedPassword: "x", IsActive: true, Role: model.RoleUser}).Error)

	active := seedRecipe(t, 1, "active")
	hidden := seedRecipe(t, 1, "hidden")
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	recipes, err := GetRecipesByIds(db, []int{hidden.Id, active.Id})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, active.Id, recipes[0].Id)

	recipes, err = GetRecipesByIds(db, nil)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	_, err = GetRecipe(db, hidden.Id)
	assert.True(t, IsNotFound(err))
	stored, err := GetRecipeForAdmin(db, hidden.Id)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
