// Package localhake is the LocalHake site toolkit: it loads Markdown pages,
// validates the video and affiliate links they embed, and serves a preview
// of the site with schema.org structured data and social metadata.
//
// The leaf packages (links, jsonld, seo, widgets) carry the site logic; this
// package wires them into an Echo server backed by SQLite.
package localhake

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/markdown"
	"github.com/localhake/localhake/site"
	"github.com/localhake/localhake/views"
)

// ViewFuncs holds the templ components the server calls when rendering
// page bodies. The server supplies <head> and the site chrome.
type ViewFuncs struct {
	Listing     func(heading string, posts []views.PostSummary, activeTag string, tags []string) templ.Component
	Page        func(p views.PageData, toc []markdown.Heading, body templ.Component) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// DefaultViews returns the built-in templates from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Listing: views.Listing,
		Page:    views.Page,
		NotFound: func() templ.Component {
			return views.Message("Not found", "There is nothing at this address.")
		},
		ServerError: func() templ.Component {
			return views.Message("Something went wrong", "The page could not be rendered.")
		},
	}
}

// App is the preview server. It wires together the store, cache, handlers,
// middleware, and templates.
type App struct {
	Site   site.Config
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache
	Views  ViewFuncs
	Logger *slog.Logger

	linkLimiter  *RateLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given runtime configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Site:      site.Default(),
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = NewLogger(os.Stderr, cfg.LogLevel)
	}
	return a
}

// Init opens the store and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("localhake: init store: %w", err)
		}
		a.Store = store
	}
	a.Cache = NewPageCache(a.Store, a.Config.CacheTTL)
	a.linkLimiter = NewRateLimiter(a.Config.LinkAPIRate, time.Minute)

	a.setupMiddleware()
	if err := a.setupRoutes(); err != nil {
		return err
	}
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Import loads every page under dir and replaces the stored pages with them.
func (a *App) Import(ctx context.Context, dir string) (int, error) {
	docs, err := content.LoadDir(dir)
	if err != nil {
		return 0, err
	}
	pages := make([]Page, 0, len(docs))
	for _, d := range docs {
		pages = append(pages, PageFromDocument(d))
	}
	if err := a.Store.ReplaceAll(ctx, pages); err != nil {
		return 0, fmt.Errorf("localhake: import %s: %w", dir, err)
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	a.Logger.Info("imported content", "dir", dir, "pages", len(pages))
	return len(pages), nil
}

// Start initializes the app and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("preview server listening", "addr", a.Config.Addr, "site", a.Site.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// assetHandler serves the files under dir of fsys. dir must exist.
func assetHandler(fsys fs.FS, dir string) (http.Handler, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("localhake: embedded assets: %w", err)
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("localhake: embedded assets: %w", err)
	}
	return http.FileServer(http.FS(sub)), nil
}

func (a *App) setupRoutes() error {
	e := a.Echo

	assets, err := assetHandler(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", assets)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.pageHandler(content.KindBlog))
	e.GET("/docs/", a.handleDocsIndex)
	e.GET("/docs/:slug/", a.pageHandler(content.KindDocs))

	e.GET("/api/links/:kind", a.handleLinkCheck)
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.linkLimiter != nil {
		a.linkLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
