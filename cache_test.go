package localhake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhake/localhake/content"
)

func TestPageCacheServesStaleUntilInvalidated(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Hour)

	require.NoError(t, s.SavePage(blogPage("first", "2024-01-01", "docker")))

	pages, err := c.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	require.Len(t, pages, 1)

	require.NoError(t, s.SavePage(blogPage("second", "2024-01-02", "linux")))

	pages, err = c.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	assert.Len(t, pages, 1, "cached result within TTL")

	c.Invalidate()

	pages, err = c.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	tags, err := c.ListTags(content.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "linux"}, tags)
}

func TestPageCacheExpires(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Nanosecond)

	require.NoError(t, s.SavePage(blogPage("first", "2024-01-01")))
	_, err := c.ListPages(content.KindBlog, "")
	require.NoError(t, err)

	require.NoError(t, s.SavePage(blogPage("second", "2024-01-02")))
	time.Sleep(time.Millisecond)

	pages, err := c.ListPages(content.KindBlog, "")
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestPageCacheKindsAreSeparate(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Hour)

	require.NoError(t, s.SavePage(blogPage("post", "2024-01-01")))
	require.NoError(t, s.SavePage(Page{Kind: content.KindDocs, Slug: "intro", Title: "Intro", Published: true}))

	_, err := c.GetPage(content.KindDocs, "intro")
	require.NoError(t, err)
	_, err = c.GetPage(content.KindBlog, "intro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPageCacheTagFilter(t *testing.T) {
	s := setupTestStore(t)
	c := NewPageCache(s, time.Hour)

	require.NoError(t, s.SavePage(blogPage("a", "2024-01-01", "Docker")))
	require.NoError(t, s.SavePage(blogPage("b", "2024-01-02", "linux")))

	pages, err := c.ListPages(content.KindBlog, "DOCKER")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "a", pages[0].Slug)
}
