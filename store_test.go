package localhake

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhake/localhake/content"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "site.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func blogPage(slug, date string, tags ...string) Page {
	return Page{
		Kind:      content.KindBlog,
		Slug:      slug,
		Title:     "Post " + slug,
		Date:      date,
		Tags:      tags,
		Content:   "content of " + slug,
		Published: true,
	}
}

func TestNewStoreCreatesDataDir(t *testing.T) {
	s := setupTestStore(t)
	require.NotNil(t, s.db)
}

func TestInMemoryStoreKeepsSchema(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.SavePage(blogPage("first", "2024-01-01", "docker")))
	require.NoError(t, s.SavePage(blogPage("second", "2024-01-02", "linux")))

	pages, err := s.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	tags, err := s.ListTags(content.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "linux"}, tags)

	_, err = s.GetPage(content.KindBlog, "first")
	assert.NoError(t, err)
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupTestStore(t)

	page := Page{
		Kind:         content.KindBlog,
		Slug:         "proxmox-cluster",
		Title:        "Building a Proxmox Cluster",
		Description:  "Three nodes and a quorum device.",
		Date:         "2024-01-15",
		DateModified: "2024-02-01",
		Author:       "Hake",
		Image:        "/img/cluster.png",
		Keywords:     []string{"Proxmox", "HA"},
		Tags:         []string{"proxmox", "homelab"},
		Content:      "# Cluster\n\nBody.",
		Published:    true,
	}
	require.NoError(t, s.SavePage(page))

	got, err := s.GetPage(content.KindBlog, "proxmox-cluster")
	require.NoError(t, err)
	assert.Equal(t, page, got)
	assert.Equal(t, "/blog/proxmox-cluster/", got.Path())
}

func TestSavePageUpdate(t *testing.T) {
	s := setupTestStore(t)

	page := blogPage("update-test", "2024-01-01", "original")
	require.NoError(t, s.SavePage(page))

	page.Title = "Updated Title"
	page.Tags = []string{"updated", "modified"}
	require.NoError(t, s.SavePage(page))

	got, err := s.GetPage(content.KindBlog, "update-test")
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", got.Title)
	assert.Equal(t, []string{"updated", "modified"}, got.Tags)
}

func TestSavePageRequiresSlug(t *testing.T) {
	s := setupTestStore(t)
	assert.Error(t, s.SavePage(Page{Kind: content.KindDocs, Title: "No slug"}))
}

func TestSameSlugDifferentKinds(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePage(blogPage("vlans", "2024-01-01")))
	docs := Page{Kind: content.KindDocs, Slug: "vlans", Title: "VLAN reference", Published: true}
	require.NoError(t, s.SavePage(docs))

	blog, err := s.GetPage(content.KindBlog, "vlans")
	require.NoError(t, err)
	assert.Equal(t, "Post vlans", blog.Title)

	doc, err := s.GetPage(content.KindDocs, "vlans")
	require.NoError(t, err)
	assert.Equal(t, "VLAN reference", doc.Title)
}

func TestGetPageNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPage(content.KindBlog, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPageDraft(t *testing.T) {
	s := setupTestStore(t)

	draft := blogPage("draft", "2024-01-01")
	draft.Published = false
	require.NoError(t, s.SavePage(draft))

	_, err := s.GetPage(content.KindBlog, "draft")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.ListAllPages()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Published)
}

func TestListPages(t *testing.T) {
	s := setupTestStore(t)

	pages := []Page{
		blogPage("post-1", "2024-01-01", "docker"),
		blogPage("post-2", "2024-01-02", "docker", "linux"),
		blogPage("post-3", "2024-01-03", "proxmox"),
		{Kind: content.KindDocs, Slug: "intro", Title: "Intro", Published: true},
	}
	hidden := blogPage("post-4", "2024-01-04", "docker")
	hidden.Published = false
	pages = append(pages, hidden)

	for _, p := range pages {
		require.NoError(t, s.SavePage(p))
	}

	got, err := s.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "post-3", got[0].Slug, "newest first")

	docs, err := s.ListPages(content.KindDocs, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "intro", docs[0].Slug)
}

func TestListPagesByTag(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []Page{
		blogPage("docker-1", "2024-01-01", "Docker", "tutorial"),
		blogPage("docker-2", "2024-01-02", "docker", "networking"),
		blogPage("proxmox", "2024-01-03", "proxmox"),
	} {
		require.NoError(t, s.SavePage(p))
	}

	tests := []struct {
		tag  string
		want int
	}{
		{"docker", 2},
		{"DOCKER", 2},
		{"proxmox", 1},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := s.ListPages(content.KindBlog, tt.tag)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)

	draft := blogPage("p3", "2024-01-03", "rust")
	draft.Published = false
	for _, p := range []Page{
		blogPage("p1", "2024-01-01", "Docker", "Linux"),
		blogPage("p2", "2024-01-02", "docker", "api"),
		draft,
	} {
		require.NoError(t, s.SavePage(p))
	}

	got, err := s.ListTags(content.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "docker", "linux"}, got)

	docs, err := s.ListTags(content.KindDocs)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeletePage(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePage(blogPage("to-delete", "2024-01-01")))
	_, err := s.GetPage(content.KindBlog, "to-delete")
	require.NoError(t, err)

	require.NoError(t, s.DeletePage(content.KindBlog, "to-delete"))
	_, err = s.GetPage(content.KindBlog, "to-delete")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.DeletePage(content.KindBlog, "nonexistent"))
}

func TestReplaceAll(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePage(blogPage("stale", "2023-01-01")))

	err := s.ReplaceAll(context.Background(), []Page{
		blogPage("fresh-1", "2024-01-01"),
		blogPage("fresh-2", "2024-01-02"),
	})
	require.NoError(t, err)

	all, err := s.ListAllPages()
	require.NoError(t, err)
	require.Len(t, all, 2)
	_, err = s.GetPage(content.KindBlog, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAllRollsBack(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePage(blogPage("kept", "2023-01-01")))

	err := s.ReplaceAll(context.Background(), []Page{
		blogPage("fresh", "2024-01-01"),
		{Kind: content.KindDocs, Title: "missing slug"},
	})
	require.Error(t, err)

	_, err = s.GetPage(content.KindBlog, "kept")
	assert.NoError(t, err, "failed replace must leave the old pages in place")
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{",", nil},
		{",go,", []string{"go"}},
		{",go,web,", []string{"go", "web"}},
		{",go, web ,rust,", []string{"go", "web", "rust"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitList(tt.input), tt.input)
	}
}

func TestEmptyTags(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SavePage(blogPage("no-tags", "2024-01-01")))
	got, err := s.GetPage(content.KindBlog, "no-tags")
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}
