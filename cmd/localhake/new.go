package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/localhake/localhake"
	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/scaffold"
	"github.com/localhake/localhake/site"
)

// runNew writes a draft page of kind under root and returns its path.
func runNew(root string, kind content.Kind, title string, now time.Time) (string, error) {
	if kind != content.KindBlog && kind != content.KindDocs {
		return "", fmt.Errorf("unknown kind %q (want blog or docs)", kind)
	}
	slug := localhake.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a slug", title)
	}
	out, err := scaffold.Render(string(kind), scaffold.Data{
		Title:  title,
		Slug:   slug,
		Date:   now.Format("2006-01-02"),
		Author: site.Default().Author,
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, string(kind), slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
