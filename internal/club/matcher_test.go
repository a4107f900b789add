package club_test

import (
	"testing"

	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerMatcher_Resolve(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	addPlayers(t, store, "Morten Voss", "Mads Hansen", "José García", "Iñaki Núñez", "Anna", "Anne")

	matcher := club.NewPlayerMatcher(store)

	t.Run("exact name ignores case and spacing", func(t *testing.T) {
		p, suggestions, err := matcher.Resolve("  morten   VOSS ")
		require.NoError(t, err)
		assert.Nil(t, suggestions)
		assert.Equal(t, "Morten Voss", p.Name)
	})

	t.Run("first name alone resolves when unique", func(t *testing.T) {
		p, _, err := matcher.Resolve("mads")
		require.NoError(t, err)
		assert.Equal(t, "Mads Hansen", p.Name)
	})

	t.Run("accented names", func(t *testing.T) {
		p, _, err := matcher.Resolve("José García")
		require.NoError(t, err)
		assert.Equal(t, "José García", p.Name)
	})

	t.Run("unaccented query matches accented name", func(t *testing.T) {
		p, suggestions, err := matcher.Resolve("Inaki Nunez")
		require.NoError(t, err)
		assert.Nil(t, suggestions)
		assert.Equal(t, "Iñaki Núñez", p.Name)

		p, _, err = matcher.Resolve("jose garcia")
		require.NoError(t, err)
		assert.Equal(t, "José García", p.Name)
	})

	t.Run("typo resolves to the closest name", func(t *testing.T) {
		p, _, err := matcher.Resolve("Morten Vos")
		require.NoError(t, err)
		assert.Equal(t, "Morten Voss", p.Name)
	})

	t.Run("ambiguous query returns suggestions", func(t *testing.T) {
		p, suggestions, err := matcher.Resolve("Ann")
		assert.Nil(t, p)
		assert.True(t, league.IsNotFound(err))
		require.Len(t, suggestions, 2)
		names := []string{suggestions[0].Player.Name, suggestions[1].Player.Name}
		assert.ElementsMatch(t, []string{"Anna", "Anne"}, names)
	})

	t.Run("unrelated query", func(t *testing.T) {
		_, suggestions, err := matcher.Resolve("Zzyzx")
		assert.True(t, league.IsNotFound(err))
		assert.Empty(t, suggestions)
	})

	t.Run("empty query", func(t *testing.T) {
		_, _, err := matcher.Resolve("  ")
		assert.True(t, league.IsNotFound(err))
	})
}
