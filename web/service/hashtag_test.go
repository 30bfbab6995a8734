package service

import (
	"testing"

	"github.com/kitchenhub/recipe-service/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashtagTags(hashtags []model.Hashtag) []string {
	tags := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		tags = append(tags, h.Tag)
	}
	return tags
}

func TestEnsureTagsReturnsOnlyNewTags(t *testing.T) {
	env := setup(t)

	created, err := env.hashtags.EnsureTags([]string{"vegan", "quick", "vegan", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "quick"}, hashtagTags(created))
	for _, h := range created {
		assert.NotZero(t, h.Id)
	}

	created, err = env.hashtags.EnsureTags([]string{"quick", "spicy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"spicy"}, hashtagTags(created))

	created, err = env.hashtags.EnsureTags(nil)
	require.NoError(t, err)
	assert.Empty(t, created)

	all, err := env.hashtags.GetHashtags()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vegan", "quick", "spicy"}, hashtagTags(all))
}

func TestLinkTagsSkipsUnknownTags(t *testing.T) {
	env := setup(t)
	alice := env.register(t, "alice")
	recipe := env.createRecipe(t, alice, "Borscht", "soup")

	_, err := env.hashtags.EnsureTags([]string{"beet"})
	require.NoError(t, err)

	links, err := env.hashtags.LinkTags(recipe.Id, []string{"beet", "unknown"})
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, recipe.Id, links[0].RecipeId)

	// linking again leaves a single row for the pair
	_, err = env.hashtags.LinkTags(recipe.Id, []string{"beet"})
	require.NoError(t, err)

	stored, err := env.recipes.Get(recipe.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"beet"}, stored.TagNames())
}

func TestLinkTagsToMissingRecipe(t *testing.T) {
	env := setup(t)
	_, err := env.hashtags.EnsureTags([]string{"beet"})
	require.NoError(t, err)

	_, err = env.hashtags.LinkTags(9999, []string{"beet"})
	assert.ErrorIs(t, err, ErrNotFound)
}
