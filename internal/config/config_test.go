package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 5, cfg.PerPage)
	assert.True(t, cfg.UI.ShowHeader)
	assert.True(t, cfg.UI.ShowPageDots)
	assert.Equal(t, "dark", cfg.UI.MarkdownStyle)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_PerPage(t *testing.T) {
	cfg := Defaults()
	cfg.PerPage = 0
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per_page")
}

func TestValidate_MarkdownStyle(t *testing.T) {
	cfg := Defaults()
	cfg.UI.MarkdownStyle = "sepia"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markdown_style")
}

func TestValidate_ThemeMode(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.Mode = "neon"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.mode")
}

func TestValidateTracing_SampleRateRange(t *testing.T) {
	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(TracingConfig{SampleRate: -0.1})
	require.Error(t, err)
}

func TestValidateTracing_Exporter(t *testing.T) {
	for _, exporter := range []string{"", "none", "file", "stdout", "otlp"} {
		assert.NoError(t, ValidateTracing(TracingConfig{Exporter: exporter, SampleRate: 1.0}))
	}

	err := ValidateTracing(TracingConfig{Exporter: "jaeger", SampleRate: 1.0})
	require.Error(t, err)
}

func TestValidateTracing_EnabledRequiresPaths(t *testing.T) {
	err := ValidateTracing(TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_path")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "otlp_endpoint")
}

func TestFlattenedColors_NestedStructure(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text": map[string]any{
				"primary": "#FF0000",
			},
			"status.error": "#00FF00",
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#FF0000", flat["text.primary"])
	assert.Equal(t, "#00FF00", flat["status.error"])
}

func TestFlattenedColors_MapAnyAny(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"border": map[any]any{
				"highlight": "#ABCDEF",
			},
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#ABCDEF", flat["border.highlight"])
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auto_refresh: true")
	assert.Contains(t, string(data), "per_page: 5")
}

func TestSavePerPage_PreservesOtherContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := "# my config\nauto_refresh: true\nper_page: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0600))

	require.NoError(t, SavePerPage(path, 10))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "per_page: 10")
	assert.Contains(t, content, "auto_refresh: true")
	assert.Contains(t, content, "# my config", "comments should survive a save")
	assert.False(t, strings.Contains(content, "per_page: 5"))
}

func TestSavePerPage_AppendsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_refresh: false\n"), 0600))

	require.NoError(t, SavePerPage(path, 7))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "per_page: 7")
	assert.Contains(t, string(data), "auto_refresh: false")
}

func TestSavePerPage_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "config.yaml")

	require.NoError(t, SavePerPage(path, 3))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "per_page: 3")
}

func TestSavePerPage_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Error(t, SavePerPage(path, 0))
}

func TestSaveAutoRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_refresh: true\nper_page: 5\n"), 0600))

	require.NoError(t, SaveAutoRefresh(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auto_refresh: false")
	assert.Contains(t, string(data), "per_page: 5")
}
