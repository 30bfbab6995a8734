package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kitchenhub/recipe-service/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFilterRecipes(t *testing.T, env *testEnv) *model.User {
	t.Helper()
	alice := env.register(t, "alice")
	env.createRecipe(t, alice, "Recipe", "dessert", "tags1", "tags2")
	env.createRecipe(t, alice, "Recipe 2", "second", "tags1", "tags3")
	env.createRecipe(t, alice, "Vodka", "drink", "tags4")
	env.createRecipe(t, alice, "Борщ", "soup", "свёкла")
	return alice
}

func TestCreateRecipe(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")

	recipe := env.createRecipe(t, alice, "Olivier", "salad", "winter", "holiday", "winter")
	assert.True(t, recipe.IsActive)
	assert.Equal(t, alice.Id, recipe.AuthorId)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "alice", recipe.Author.Nickname)
	assert.ElementsMatch(t, []string{"winter", "holiday"}, recipe.TagNames())
	assert.False(t, recipe.DateCreation.IsZero())

	_, err := env.recipes.Create(RecipeData{Name: "Bad", Type: "breakfast"}, alice, nil)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = env.recipes.Create(RecipeData{Name: " ", Type: "salad"}, alice, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRecipeByInactiveUser(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	banned, err := env.users.ToggleActive(alice.Id)
	require.NoError(t, err)

	_, err = env.recipes.Create(RecipeData{Name: "Soup", Type: "soup"}, banned, []string{"hot"})
	assert.ErrorIs(t, err, ErrInactive)

	// nothing of the attempt is stored
	all, err := env.hashtags.GetHashtags()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFilterRecipes(t *testing.T) {
	env := setup(t)
	seedFilterRecipes(t, env)

	testCases := []struct {
		name     string
		filter   RecipeFilter
		expected []string
	}{
		{
			name:     "no criteria lists every active recipe",
			filter:   RecipeFilter{},
			expected: []string{"Recipe", "Recipe 2", "Vodka", "Борщ"},
		},
		{
			name:     "by tag",
			filter:   RecipeFilter{Tag: "tags1"},
			expected: []string{"Recipe", "Recipe 2"},
		},
		{
			name:     "by type",
			filter:   RecipeFilter{Type: "drink"},
			expected: []string{"Vodka"},
		},
		{
			name:     "by name and type",
			filter:   RecipeFilter{Name: "recipe", Type: "second"},
			expected: []string{"Recipe 2"},
		},
		{
			name:     "name is case insensitive",
			filter:   RecipeFilter{Name: "VOD"},
			expected: []string{"Vodka"},
		},
		{
			name:     "tag and type",
			filter:   RecipeFilter{Tag: "tags1", Type: "dessert"},
			expected: []string{"Recipe"},
		},
		{
			name:     "unknown tag",
			filter:   RecipeFilter{Tag: "missing"},
			expected: []string{},
		},
		{
			name:     "non-ascii name in lower case",
			filter:   RecipeFilter{Name: "борщ"},
			expected: []string{"Борщ"},
		},
		{
			name:     "non-ascii name in its own case",
			filter:   RecipeFilter{Name: "Борщ"},
			expected: []string{"Борщ"},
		},
		{
			name:     "non-ascii substring in upper case",
			filter:   RecipeFilter{Name: "ОРЩ", Type: "soup"},
			expected: []string{"Борщ"},
		},
		{
			name:     "non-ascii tag",
			filter:   RecipeFilter{Tag: "свёкла"},
			expected: []string{"Борщ"},
		},
		{
			name:     "wildcards are literal",
			filter:   RecipeFilter{Name: "%"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recipes, err := env.recipes.Filter(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, recipeNames(recipes))
		})
	}
}

func TestFilterSkipsInactiveRecipes(t *testing.T) {
	env := setup(t)
	seedFilterRecipes(t, env)

	recipes, err := env.recipes.Filter(RecipeFilter{Type: "drink"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	_, err = env.recipes.ToggleActive(recipes[0].Id)
	require.NoError(t, err)

	recipes, err = env.recipes.Filter(RecipeFilter{Type: "drink"})
	require.NoError(t, err)
	assert.Empty(t, recipes)

	recipes, err = env.recipes.Filter(RecipeFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Recipe", "Recipe 2", "Борщ"}, recipeNames(recipes))

	recipes, err = env.recipes.Filter(RecipeFilter{Name: "vodka"})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestToggleRecipeActiveTwiceRestoresState(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	recipe := env.createRecipe(t, alice, "Kvass", "drink")

	banned, err := env.recipes.ToggleActive(recipe.Id)
	require.NoError(t, err)
	assert.False(t, banned.IsActive)
	_, err = env.recipes.Get(recipe.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	restored, err := env.recipes.ToggleActive(recipe.Id)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	_, err = env.recipes.Get(recipe.Id)
	assert.NoError(t, err)

	_, err = env.recipes.ToggleActive(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	recipe := env.createRecipe(t, alice, "Kvass", "drink", "summer")
	_, err := env.likes.Toggle(alice.Id, recipe.Id)
	require.NoError(t, err)

	require.NoError(t, env.recipes.Delete(recipe.Id))
	_, err = env.recipes.GetForAdmin(recipe.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, env.recipes.DB.Model(&model.Like{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, env.recipes.DB.Model(&model.RecipeHashtag{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	err = env.recipes.Delete(recipe.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopRecipesKeepsRankingOrder(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	one := env.createRecipe(t, alice, "One like", "soup")
	three := env.createRecipe(t, alice, "Three likes", "soup")
	two := env.createRecipe(t, alice, "Two likes", "soup")
	env.createRecipe(t, alice, "No likes", "soup")

	like := func(users []*model.User, recipe *model.Recipe) {
		for _, u := range users {
			_, err := env.likes.Toggle(u.Id, recipe.Id)
			require.NoError(t, err)
		}
	}
	like([]*model.User{alice}, one)
	like([]*model.User{alice, bob, carol}, three)
	like([]*model.User{alice, bob}, two)

	recipes, err := env.recipes.Top(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Three likes", "Two likes", "One like"}, recipeNames(recipes))

	recipes, err = env.recipes.Top(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Three likes", "Two likes"}, recipeNames(recipes))

	// inactive recipes are ranked and then dropped
	_, err = env.recipes.ToggleActive(three.Id)
	require.NoError(t, err)
	recipes, err = env.recipes.Top(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Two likes"}, recipeNames(recipes))

	_, err = env.recipes.Top(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEditRecipe(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	recipe := env.createRecipe(t, alice, "Stew", "second")

	edited, err := env.recipes.Edit(recipe.Id, RecipePatch{Description: "slow cooked"}, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "Stew", edited.Name)
	assert.Equal(t, "slow cooked", edited.Description)
	assert.Equal(t, "mix everything", edited.StepsMaking)
	assert.Equal(t, "second", edited.Type)

	edited, err = env.recipes.Edit(recipe.Id, RecipePatch{Name: "Beef stew", Type: "first"}, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "Beef stew", edited.Name)
	assert.Equal(t, "first", edited.Type)

	_, err = env.recipes.Edit(recipe.Id, RecipePatch{Name: "Stolen"}, bob.Id)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = env.recipes.Edit(recipe.Id, RecipePatch{Type: "breakfast"}, alice.Id)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = env.recipes.Edit(9999, RecipePatch{Name: "Ghost"}, alice.Id)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUserRecipesAndFavorites(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	soup := env.createRecipe(t, alice, "Soup", "soup")
	cake := env.createRecipe(t, alice, "Cake", "dessert")
	env.createRecipe(t, bob, "Tea", "drink")

	mine, err := env.recipes.UserRecipes(alice.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup", "Cake"}, recipeNames(mine))

	for _, id := range []int{soup.Id, cake.Id} {
		_, err := env.likes.Toggle(bob.Id, id)
		require.NoError(t, err)
	}
	_, err = env.recipes.ToggleActive(cake.Id)
	require.NoError(t, err)

	favorites, err := env.recipes.Favorites(bob.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, recipeNames(favorites))

	favorites, err = env.recipes.Favorites(alice.Id)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestAttachPhoto(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	recipe := env.createRecipe(t, alice, "Cake", "dessert")

	_, err := env.recipes.AttachPhoto(recipe.Id, []byte("gif"), "cake.gif")
	assert.ErrorIs(t, err, ErrInvalidExtension)

	_, err = env.recipes.AttachPhoto(9999, []byte("png"), "cake.png")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := env.recipes.AttachPhoto(recipe.Id, []byte("jpeg bytes"), "Cake.JPG")
	require.NoError(t, err)
	expected := filepath.Join(env.photoDir, "1_Cake.JPG")
	assert.Equal(t, expected, updated.Photo)

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	// only the photo itself is left in the directory
	entries, err := os.ReadDir(env.photoDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIsAllowedPhoto(t *testing.T) {
	assert.True(t, IsAllowedPhoto("a.jpg"))
	assert.True(t, IsAllowedPhoto("a.JPEG"))
	assert.True(t, IsAllowedPhoto("dir/a.png"))
	assert.False(t, IsAllowedPhoto("a.gif"))
	assert.False(t, IsAllowedPhoto("png"))
	assert.False(t, IsAllowedPhoto(""))
}
