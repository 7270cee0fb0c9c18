package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/domain"
)

func TestSampleArticles(t *testing.T) {
	articles := sampleArticles()
	require.NotEmpty(t, articles, "seed content should exist")

	seen := make(map[string]bool)
	for _, a := range articles {
		assert.NotEmpty(t, a.GUID, "every sample article needs a GUID")
		assert.NotEmpty(t, a.Title, "every sample article needs a title")
		assert.False(t, a.PublishedAt.IsZero(), "every sample article needs a publish date")
		assert.False(t, seen[a.GUID], "GUID %s duplicated", a.GUID)
		seen[a.GUID] = true
	}
}

func TestSampleArticles_ConvertToItems(t *testing.T) {
	items := domain.Items(sampleArticles())

	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.NotEmpty(t, item.String(domain.FieldTitle))
	}
}

func TestSetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { SetVersion(orig) })

	SetVersion("1.2.3 (commit: abc, built: today)")
	assert.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("CURIO_DEBUG", "")
	assert.False(t, debugEnabled(false))
	assert.True(t, debugEnabled(true))

	t.Setenv("CURIO_DEBUG", "1")
	assert.True(t, debugEnabled(false))
}

func TestRootCommand_Flags(t *testing.T) {
	assert.NotNil(t, rootCmd.Flags().Lookup("data"))
	assert.NotNil(t, rootCmd.Flags().Lookup("no-auto-refresh"))
	assert.NotNil(t, rootCmd.Flags().Lookup("debug"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
