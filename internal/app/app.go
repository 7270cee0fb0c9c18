// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"curio/internal/cachemanager"
	"curio/internal/config"
	"curio/internal/domain"
	"curio/internal/infrastructure/sqlite"
	"curio/internal/log"
	"curio/internal/tracing"
	"curio/internal/ui/collectionview"
	"curio/internal/ui/logoverlay"
	"curio/internal/ui/markdown"
	"curio/internal/ui/pager"
	"curio/internal/ui/renderers"
	"curio/internal/ui/styles"
	"curio/internal/ui/toaster"
	"curio/internal/watcher"
)

const summaryCacheTTL = 10 * time.Minute

// ArticleStore is the subset of the repository the app depends on.
type ArticleStore interface {
	List(offset, limit int) ([]domain.Article, error)
	Count() (int, error)
}

var _ ArticleStore = (*sqlite.ArticleRepository)(nil)

// Config carries the dependencies for the root model.
type Config struct {
	Cfg        config.Config
	ConfigPath string
	Store      ArticleStore
	DBPath     string
	Tracer     trace.Tracer
	Title      string
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string

	store  ArticleStore
	tracer trace.Tracer

	registry   *collectionview.Registry
	collection collectionview.Model
	pager      pager.Model
	toaster    toaster.Model
	logs       logoverlay.Model

	// logListener feeds the log overlay from the log broker. Nil when debug
	// logging is disabled.
	logListener *log.LogListener
	logCancel   context.CancelFunc

	// total is shared with the header renderer's count closure, which
	// outlives any single copy of the model.
	total *atomic.Int64

	summaryCache *cachemanager.ReadThroughCache[string, string, summaryInput]

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	width  int
	height int
}

type summaryInput struct {
	text  string
	width int
}

// dbChangedMsg signals that the database changed on disk.
type dbChangedMsg struct{}

// pageLoadedMsg carries a freshly loaded page of articles.
type pageLoadedMsg struct {
	items []domain.Item
	total int
	page  int
}

// loadErrorMsg carries a failed page load.
type loadErrorMsg struct {
	err error
}

// New creates the root model and performs the initial render pass.
func New(appCfg Config) (Model, error) {
	tracer := appCfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	title := appCfg.Title
	if title == "" {
		title = "Curio"
	}

	total := &atomic.Int64{}

	mdStyle := appCfg.Cfg.UI.MarkdownStyle
	summaryCache := cachemanager.NewReadThroughCache[string, string, summaryInput](
		cachemanager.NewInMemoryCacheManager[string, string]("summaries", summaryCacheTTL, summaryCacheTTL),
		func(_ context.Context, in summaryInput) (string, error) {
			r, err := markdown.New(in.width, mdStyle)
			if err != nil {
				return "", err
			}
			return r.Render(in.text)
		},
		false,
	)

	registry := collectionview.NewRegistry()
	err := renderers.Register(registry, renderers.Config{
		Title: title,
		Count: func() int { return int(total.Load()) },
		Summary: func(item domain.Item, width int) (string, error) {
			text := item.String(domain.FieldSummary)
			key := item.ID + "@" + strconv.Itoa(width) + "#" + item.Fingerprint()
			return summaryCache.Get(context.Background(), key, summaryInput{text: text, width: width}, summaryCacheTTL)
		},
	})
	if err != nil {
		return Model{}, fmt.Errorf("registering renderers: %w", err)
	}

	headerKey := ""
	if appCfg.Cfg.UI.ShowHeader {
		headerKey = renderers.HeaderKey
	}
	collection, err := collectionview.New(registry, collectionview.Inputs{
		ItemRenderer:   renderers.ArticleKey,
		HeaderRenderer: headerKey,
	})
	if err != nil {
		return Model{}, fmt.Errorf("building collection view: %w", err)
	}

	var (
		watcherHandle *watcher.Watcher
		watcherCh     <-chan struct{}
	)
	if appCfg.Cfg.AutoRefresh && appCfg.DBPath != "" {
		w, werr := watcher.New(watcher.DefaultConfig(appCfg.DBPath))
		if werr == nil {
			ch, serr := w.Start()
			if serr == nil {
				watcherHandle = w
				watcherCh = ch
			} else {
				_ = w.Stop()
			}
		}
		// The app works fine without auto-refresh, so watcher init
		// failures are not fatal.
	}

	logCtx, logCancel := context.WithCancel(context.Background())
	logListener := log.NewListener(logCtx)

	return Model{
		cfg:           appCfg.Cfg,
		configPath:    appCfg.ConfigPath,
		store:         appCfg.Store,
		tracer:        tracer,
		registry:      registry,
		collection:    collection,
		pager:         pager.New(appCfg.Cfg.PerPage),
		logs:          logoverlay.New(),
		logListener:   logListener,
		logCancel:     logCancel,
		total:         total,
		summaryCache:  summaryCache,
		watcherHandle: watcherHandle,
		watcherCh:     watcherCh,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.collection.Init(),
		m.loadPageCmd(m.pager.Page()),
	}
	if m.watcherCh != nil {
		cmds = append(cmds, waitForChange(m.watcherCh))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.collection = m.collection.SetSize(msg.Width)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			m.logs = m.logs.Toggle()
			return m, nil
		}

		// The open log overlay captures the keyboard until closed.
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		case "+", "=":
			return m.changePerPage(m.pager.PerPage() + 1)
		case "-":
			return m.changePerPage(m.pager.PerPage() - 1)
		}

		var cmd tea.Cmd
		m.pager, cmd = m.pager.Update(msg)
		return m, cmd

	case log.LogEvent:
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case pager.PageChangedMsg:
		log.Debug(log.CatUI, "page changed", "page", msg.Page)
		return m, m.loadPageCmd(msg.Page)

	case pager.NextRequestedMsg, pager.PrevRequestedMsg:
		// Page moves arrive separately as PageChangedMsg.
		return m, nil

	case pageLoadedMsg:
		return m.applyPage(msg)

	case loadErrorMsg:
		log.ErrorErr(log.CatStore, "page load failed", msg.err)
		m.toaster = m.toaster.Show("Failed to load articles: "+msg.err.Error(), toaster.StyleError)
		return m, toaster.ScheduleDismiss(3 * time.Second)

	case collectionview.HeaderEventMsg:
		return m.handleHeaderEvent(msg)

	case collectionview.ItemEventMsg:
		return m.handleItemEvent(msg)

	case dbChangedMsg:
		log.Debug(log.CatWatcher, "database changed, refreshing")
		if err := m.summaryCache.Flush(context.Background()); err != nil {
			log.Warn(log.CatCache, "failed to flush summary cache", "error", err)
		}
		cmds := []tea.Cmd{m.loadPageCmd(m.pager.Page())}
		if m.watcherCh != nil {
			cmds = append(cmds, waitForChange(m.watcherCh))
		}
		return m, tea.Batch(cmds...)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.collection, cmd = m.collection.Update(msg)
	return m, cmd
}

// applyPage feeds a loaded page into the pager and the collection view.
func (m Model) applyPage(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.total.Store(int64(msg.total))
	m.pager = m.pager.SetTotal(msg.total).SetPage(msg.page)

	headerKey := ""
	if m.cfg.UI.ShowHeader {
		headerKey = renderers.HeaderKey
	}

	_, span := m.tracer.Start(context.Background(), tracing.SpanPrefixRender+"pass")
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrRendererID, renderers.ArticleKey),
		attribute.Int(tracing.AttrItemCount, len(msg.items)),
	)

	var cmd tea.Cmd
	var err error
	m.collection, cmd, err = m.collection.SetInputs(collectionview.Inputs{
		Data:           msg.items,
		ItemRenderer:   renderers.ArticleKey,
		HeaderRenderer: headerKey,
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(
			attribute.String(tracing.AttrErrorMessage, err.Error()),
			attribute.String(tracing.AttrErrorType, fmt.Sprintf("%T", err)),
		)
		log.ErrorErr(log.CatView, "render pass failed", err)
		m.toaster = m.toaster.Show("Render failed: "+err.Error(), toaster.StyleError)
		return m, toaster.ScheduleDismiss(3 * time.Second)
	}
	return m, cmd
}

func (m Model) handleHeaderEvent(msg collectionview.HeaderEventMsg) (tea.Model, tea.Cmd) {
	switch msg.Event.Name {
	case renderers.EventRefreshRequested:
		return m, m.refresh()
	case renderers.EventTitleClicked:
		m.toaster = m.toaster.Show(fmt.Sprintf("%d articles in collection", m.total.Load()), toaster.StyleInfo)
		return m, toaster.ScheduleDismiss(3 * time.Second)
	}
	log.Debug(log.CatUI, "unhandled header event", "event", msg.Event.Name)
	return m, nil
}

func (m Model) handleItemEvent(msg collectionview.ItemEventMsg) (tea.Model, tea.Cmd) {
	switch msg.Event.Name {
	case renderers.EventArticleOpened:
		// Payload is the bound article GUID.
		guid, _ := msg.Event.Payload.(string)
		if guid == "" {
			guid = msg.ItemID
		}
		m.toaster = m.toaster.Show("Opened article "+guid, toaster.StyleSuccess)
		return m, toaster.ScheduleDismiss(3 * time.Second)
	case renderers.EventArticleStarred:
		starred, _ := msg.Event.Payload.(bool)
		verb := "Starred"
		if !starred {
			verb = "Unstarred"
		}
		m.toaster = m.toaster.Show(fmt.Sprintf("%s article %s", verb, msg.ItemID), toaster.StyleInfo)
		return m, toaster.ScheduleDismiss(3 * time.Second)
	}
	log.Debug(log.CatUI, "unhandled item event", "event", msg.Event.Name, "item", msg.ItemID)
	return m, nil
}

// refresh flushes the summary cache and reloads the current page.
func (m Model) refresh() tea.Cmd {
	if err := m.summaryCache.Flush(context.Background()); err != nil {
		log.Warn(log.CatCache, "failed to flush summary cache", "error", err)
	}
	return m.loadPageCmd(m.pager.Page())
}

// changePerPage resizes pages, persists the setting, and reloads.
func (m Model) changePerPage(perPage int) (tea.Model, tea.Cmd) {
	if perPage < 1 || perPage == m.pager.PerPage() {
		return m, nil
	}
	m.pager = m.pager.SetPerPage(perPage)
	m.cfg.PerPage = perPage

	if m.configPath != "" {
		if err := config.SavePerPage(m.configPath, perPage); err != nil {
			log.Warn(log.CatConfig, "failed to persist per_page", "error", err)
		}
	}
	return m, m.loadPageCmd(m.pager.Page())
}

// loadPageCmd queries the store for one page of articles.
func (m Model) loadPageCmd(page int) tea.Cmd {
	store, tracer, perPage := m.store, m.tracer, m.pager.PerPage()
	return func() tea.Msg {
		_, span := tracer.Start(context.Background(), tracing.SpanPrefixStore+"list")
		defer span.End()
		span.SetAttributes(attribute.String(tracing.AttrStoreQuery, "list"))

		total, err := store.Count()
		if err != nil {
			span.RecordError(err)
			return loadErrorMsg{err: err}
		}

		// Clamp the requested page against the fresh total.
		lastPage := (total - 1) / perPage
		if lastPage < 0 {
			lastPage = 0
		}
		if page > lastPage {
			page = lastPage
		}
		if page < 0 {
			page = 0
		}

		articles, err := store.List(page*perPage, perPage)
		if err != nil {
			span.RecordError(err)
			return loadErrorMsg{err: err}
		}

		span.SetAttributes(
			attribute.Int(tracing.AttrPageIndex, page),
			attribute.Int(tracing.AttrPageSize, perPage),
			attribute.Int(tracing.AttrItemCount, len(articles)),
		)
		return pageLoadedMsg{items: domain.Items(articles), total: total, page: page}
	}
}

// waitForChange blocks on the watcher channel until the database changes.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.collection.View()}

	if m.cfg.UI.ShowPageDots {
		if dots := m.pager.View(); dots != "" {
			sections = append(sections, dots)
		}
	}
	help := "←/→ page • r refresh • +/- page size • q quit"
	if m.logListener != nil {
		help += " • ctrl+l logs"
	}
	sections = append(sections, styles.HelpStyle.Render(help))

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.logs.Visible() && m.width > 0 && m.height > 0 {
		view = m.logs.Overlay(view, m.width, m.height)
	}
	if m.toaster.Visible() && m.width > 0 && m.height > 0 {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.collection = m.collection.Close()

	if m.logCancel != nil {
		m.logCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
