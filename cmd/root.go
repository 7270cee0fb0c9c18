// Package cmd contains the curio CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"curio/internal/app"
	"curio/internal/config"
	"curio/internal/infrastructure/sqlite"
	"curio/internal/log"
	"curio/internal/tracing"
	"curio/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "curio",
	Short:   "A terminal ui for browsing an article collection",
	Long:    `A terminal user interface for browsing a paged article collection with pluggable renderers, auto-refresh, and markdown summaries.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/curio/config.yaml)")
	rootCmd.Flags().StringP("data", "d", "",
		"path to the article database file")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic refresh when the database changes")
	rootCmd.Flags().Bool("debug", false,
		"write debug logs to the data directory")

	_ = viper.BindPFlag("data_path", rootCmd.Flags().Lookup("data"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_path", defaults.DataPath)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("per_page", defaults.PerPage)
	viper.SetDefault("ui.show_header", defaults.UI.ShowHeader)
	viper.SetDefault("ui.show_page_dots", defaults.UI.ShowPageDots)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .curio/config.yaml (current directory)
		// 2. ~/.config/curio/config.yaml (user config)
		if _, err := os.Stat(".curio/config.yaml"); err == nil {
			viper.SetConfigFile(".curio/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "curio"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .curio/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".curio/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// applyTheme forces light/dark mode and applies color overrides.
func applyTheme(theme config.ThemeConfig) {
	switch theme.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	}

	if colors := theme.FlattenedColors(); len(colors) > 0 {
		styles.Apply(colors)
	}
}

// debugEnabled reports whether debug logging was requested via the --debug
// flag or the CURIO_DEBUG environment variable.
func debugEnabled(flag bool) bool {
	return os.Getenv("CURIO_DEBUG") != "" || flag
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath := cfg.DataPath
	if dbPath == "" {
		dbPath = config.DefaultDataPath()
	}
	if dbPath == "" {
		return fmt.Errorf("no database path configured and home directory unavailable")
	}

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	debugFlag, _ := cmd.Flags().GetBool("debug")
	if debugEnabled(debugFlag) {
		logPath := filepath.Join(filepath.Dir(dbPath), "curio.log")
		if cleanup, err := log.InitWithTeaLog(logPath, "curio"); err == nil {
			defer cleanup()
		}
	}

	applyTheme(cfg.Theme)

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := db.ArticleRepository()
	if err := repo.Seed(sampleArticles()); err != nil {
		log.Warn(log.CatStore, "failed to seed starter articles", "error", err)
	}

	tracingCfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	}
	if tracingCfg.Enabled && tracingCfg.Exporter == "file" && tracingCfg.FilePath == "" {
		tracingCfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	// Store the config file path for persisting setting changes
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".curio/config.yaml"
	}

	zone.NewGlobal()

	model, err := app.New(app.Config{
		Cfg:        cfg,
		ConfigPath: configFilePath,
		Store:      repo,
		DBPath:     dbPath,
		Tracer:     provider.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("building application: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
