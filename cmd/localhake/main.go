package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localhake/localhake"
	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/site"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := localhake.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := localhake.NewLogger(os.Stderr, cfg.LogLevel)

	args := os.Args[2:]
	switch os.Args[1] {
	case "serve":
		err = runServe(cfg, log)
	case "import":
		err = runImport(cfg, log, argOr(args, cfg.ContentDir))
	case "check":
		var failures int
		failures, err = runCheck(os.Stdout, argOr(args, cfg.ContentDir))
		if err == nil && failures > 0 {
			os.Exit(1)
		}
	case "jsonld":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: localhake jsonld <file>")
			os.Exit(1)
		}
		err = runJSONLD(os.Stdout, cfg.ContentDir, args[0])
	case "new":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: localhake new <blog|docs> <title>")
			os.Exit(1)
		}
		var path string
		path, err = runNew(cfg.ContentDir, content.Kind(args[0]), args[1], time.Now())
		if err == nil {
			fmt.Printf("created %s\n", path)
		}
	case "version":
		fmt.Printf("localhake %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func runServe(cfg localhake.Config, log *slog.Logger) error {
	app := localhake.New(cfg, localhake.WithLogger(log))
	defer app.Close()

	if err := app.Init(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.ContentDir); err == nil {
		if _, err := app.Import(context.Background(), cfg.ContentDir); err != nil {
			return err
		}
	} else {
		log.Warn("content dir not found, serving stored pages", "dir", cfg.ContentDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("preview server listening", "addr", cfg.Addr)
		errCh <- app.Echo.Start(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runImport(cfg localhake.Config, log *slog.Logger, dir string) error {
	store, err := localhake.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	app := localhake.New(cfg, localhake.WithLogger(log), localhake.WithStore(store))
	defer app.Close()

	n, err := app.Import(context.Background(), dir)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d pages into %s\n", n, cfg.DatabasePath)
	return nil
}

func runJSONLD(w io.Writer, root, path string) error {
	doc, err := content.ParseFile(root, path)
	if err != nil {
		return err
	}
	page := localhake.PageFromDocument(doc)
	out, err := json.MarshalIndent(localhake.PageDocument(site.Default(), page), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printUsage() {
	fmt.Println(`localhake - LocalHake site toolkit

Usage:
  localhake <command> [arguments]

Commands:
  serve                 Import the content dir and run the preview server
  import [dir]          Load Markdown pages from dir into the database
  check [dir]           Validate every video and affiliate link in dir
  jsonld <file>         Print the structured data for one content file
  new <kind> <title>    Create a draft blog post or docs page
  version               Print the localhake version
  help                  Show this help message

Environment:
  LOCALHAKE_ADDR, LOCALHAKE_DATABASE_PATH, LOCALHAKE_CONTENT_DIR,
  LOCALHAKE_CACHE_TTL, LOCALHAKE_LOG_LEVEL, LOCALHAKE_LINK_API_RATE

Examples:
  localhake check content
  localhake new blog "Proxmox backup server"`)
}
