package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	dirs    []string
	dirsErr error
	files   map[string]string
}

func (f *fakeSource) ListRootDirs(context.Context, string) ([]string, error) {
	return f.dirs, f.dirsErr
}

func (f *fakeSource) FileContent(_ context.Context, _, _, path, _ string) (string, error) {
	if content, ok := f.files[path]; ok {
		return content, nil
	}
	return "", errors.New("not found")
}

func TestCollect(t *testing.T) {
	src := &fakeSource{
		dirs: []string{"pdf-tools", ".github", "scripts", "web-scraper", "broken"},
		files: map[string]string{
			"pdf-tools/SKILL.md":   "---\nname: pdf-tools\ndescription: PDF utilities\n---\n",
			"web-scraper/SKILL.md": "---\nname: web-scraper\ndescription: Scrape pages\n---\n",
			"broken/SKILL.md":      "no frontmatter here",
		},
	}

	entries := Collect(context.Background(), src, "acme", "skills", "main", []string{"scripts"})

	// Dotdirs, excluded dirs, missing and unparseable manifests all drop out.
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Dir: "pdf-tools", Name: "pdf-tools", Description: "PDF utilities"}, entries[0])
	assert.Equal(t, Entry{Dir: "web-scraper", Name: "web-scraper", Description: "Scrape pages"}, entries[1])
}

func TestCollect_ListingFailureIsEmpty(t *testing.T) {
	src := &fakeSource{dirsErr: errors.New("boom")}
	entries := Collect(context.Background(), src, "acme", "skills", "main", nil)
	assert.Empty(t, entries)
}
