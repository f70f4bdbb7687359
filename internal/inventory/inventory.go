package inventory

import (
	"context"
	"strings"

	"github.com/skillworks/skillgate/internal/manifest"
)

// Entry describes one pre-existing skill on the base branch.
type Entry struct {
	Dir         string
	Name        string
	Description string
}

// Source lists repository roots and fetches file content at a revision.
type Source interface {
	ListRootDirs(ctx context.Context, ref string) ([]string, error)
	FileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// Collect reads the skill inventory from the base branch. The inventory is
// purely informational context for the reviewer: any listing or parse failure
// shrinks the result instead of raising an error.
func Collect(ctx context.Context, src Source, owner, repo, ref string, exclude []string) []Entry {
	dirs, err := src.ListRootDirs(ctx, ref)
	if err != nil {
		return nil
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, d := range exclude {
		excluded[d] = struct{}{}
	}

	var entries []Entry
	for _, dir := range dirs {
		if strings.HasPrefix(dir, ".") {
			continue
		}
		if _, skip := excluded[dir]; skip {
			continue
		}

		content, err := src.FileContent(ctx, owner, repo, dir+"/"+manifest.Filename, ref)
		if err != nil {
			continue
		}
		parsed := manifest.Parse(content)
		if !parsed.Valid() {
			continue
		}

		entries = append(entries, Entry{
			Dir:         dir,
			Name:        parsed.Frontmatter.Name,
			Description: parsed.Frontmatter.Description,
		})
	}
	return entries
}
