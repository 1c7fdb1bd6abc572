package services

import (
	"testing"

	"fx_agenda_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherFixtures() []models.Client {
	return []models.Client{
		{ID: 1, Name: "Ana", BusinessName: strPtr("Joyería Luz")},
		{ID: 2, Name: "Juan Pérez"},
		{ID: 3, Name: "", BusinessName: strPtr("Los Jardines")},
	}
}

func matchLabels(matches []ClientMatch) []string {
	labels := make([]string, 0, len(matches))
	for _, match := range matches {
		labels = append(labels, match.Label)
	}
	return labels
}

func TestClientMatcher_Label(t *testing.T) {
	matcher := NewClientMatcher()

	assert.Equal(t, "Juan Pérez", matcher.Label(&models.Client{Name: "Juan Pérez"}))
	assert.Equal(t, "Los Jardines", matcher.Label(&models.Client{BusinessName: strPtr("Los Jardines")}))
	assert.Equal(t, "Joyería Luz (Ana)", matcher.Label(&models.Client{
		Name:         "Ana",
		BusinessName: strPtr("Joyería Luz"),
	}))
}

func TestClientMatcher_Match(t *testing.T) {
	matcher := NewClientMatcher()
	clients := matcherFixtures()

	t.Run("empty query returns everything", func(t *testing.T) {
		matches := matcher.Match(clients, "   ")
		assert.Equal(t, []string{"Joyería Luz (Ana)", "Juan Pérez", "Los Jardines"}, matchLabels(matches))
	})

	t.Run("substring is case-insensitive", func(t *testing.T) {
		matches := matcher.Match(clients, "ju")
		assert.Equal(t, []string{"Juan Pérez"}, matchLabels(matches))

		matches = matcher.Match(clients, "LUZ")
		assert.Equal(t, []string{"Joyería Luz (Ana)"}, matchLabels(matches))
	})

	t.Run("substring anywhere in the label", func(t *testing.T) {
		matches := matcher.Match(clients, "jardin")
		assert.Equal(t, []string{"Los Jardines"}, matchLabels(matches))
	})

	t.Run("no hits yields empty non-nil slice", func(t *testing.T) {
		matches := matcher.Match(clients, "xyz")
		require.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("exact label match short-circuits", func(t *testing.T) {
		// "j" alone would match all three; the full label narrows to one.
		matches := matcher.Match(clients, "joyería luz (ana)")
		require.Len(t, matches, 1)
		assert.Equal(t, int64(1), matches[0].Client.ID)
	})
}

func TestClientMatcher_Resolve(t *testing.T) {
	matcher := NewClientMatcher()
	clients := matcherFixtures()

	resolved := matcher.Resolve(clients, "Juan Pérez")
	require.NotNil(t, resolved)
	assert.Equal(t, int64(2), resolved.ID)

	assert.Nil(t, matcher.Resolve(clients, NewClientOption))
	assert.Nil(t, matcher.Resolve(clients, ""))
	assert.Nil(t, matcher.Resolve(clients, "Nadie Conocido"))
}
