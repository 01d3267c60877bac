// Package content reads Markdown files with a YAML front-matter header.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/localhake/localhake/seo"
)

// Kind separates blog posts from documentation pages.
type Kind string

const (
	KindBlog Kind = "blog"
	KindDocs Kind = "docs"
)

// ErrUnterminatedFrontMatter is returned when a file opens a front-matter
// block with "---" and never closes it.
var ErrUnterminatedFrontMatter = errors.New("content: unterminated front matter")

// Document is a parsed content file.
type Document struct {
	Path        string
	Kind        Kind
	Slug        string
	FrontMatter seo.FrontMatter
	Body        string
}

const delimiter = "---"

// Parse splits r into front matter and body. Input without a leading "---"
// line has an empty front matter and is all body.
func Parse(r io.Reader) (seo.FrontMatter, string, error) {
	var fm seo.FrontMatter
	data, err := io.ReadAll(r)
	if err != nil {
		return fm, "", err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	first, rest, ok := nextLine(data)
	if !ok || !isDelimiter(first) {
		return fm, string(data), nil
	}

	var header bytes.Buffer
	closed := false
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = nextLine(rest)
		if isDelimiter(line) {
			closed = true
			break
		}
		header.Write(bytes.TrimRight(line, "\r"))
		header.WriteByte('\n')
	}
	if !closed {
		return fm, "", ErrUnterminatedFrontMatter
	}
	if err := yaml.Unmarshal(header.Bytes(), &fm); err != nil {
		return fm, "", fmt.Errorf("content: parse front matter: %w", err)
	}
	return fm, strings.TrimLeft(string(rest), "\r\n"), nil
}

// nextLine cuts data at the first newline. line excludes the "\n" but keeps
// any "\r"; rest starts right after the newline. ok is false when data has
// no newline and the whole input is returned as line.
func nextLine(data []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil, false
	}
	return data[:i], data[i+1:], true
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \r")) == delimiter
}

// ParseFile reads one content file. root is the content directory; the
// file's kind and default slug derive from its path relative to root.
func ParseFile(root, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	fm, body, err := Parse(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Document{
		Path:        path,
		Kind:        kindOf(rel),
		Slug:        strings.Trim(slug, "/"),
		FrontMatter: fm,
		Body:        body,
	}, nil
}

func kindOf(rel string) Kind {
	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	if first == string(KindBlog) {
		return KindBlog
	}
	return KindDocs
}

// LoadDir parses every .md and .mdx file under root, sorted by path.
func LoadDir(root string) ([]Document, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".mdx":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		doc, err := ParseFile(root, p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
