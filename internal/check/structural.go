package check

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/skillworks/skillgate/internal/github"
	"github.com/skillworks/skillgate/internal/manifest"
	"github.com/skillworks/skillgate/internal/verdict"
)

// ContentFetcher fetches a file's decoded text at a revision.
type ContentFetcher interface {
	FileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// Params locates the pull request's two trees and carries the directory
// exclusion list.
type Params struct {
	Fetcher ContentFetcher

	BaseOwner string
	BaseRepo  string
	BaseRef   string

	HeadOwner string
	HeadRepo  string
	HeadSHA   string

	NonSkillDirs []string
}

// Result accumulates structural findings in discovery order.
type Result struct {
	Issues   []verdict.StructuralIssue
	Warnings []verdict.FrontmatterWarning
}

func (r *Result) issue(format string, args ...any) {
	r.Issues = append(r.Issues, verdict.StructuralIssue{Message: fmt.Sprintf(format, args...)})
}

// Run executes both structural passes over the change set: new top-level
// directories must carry a valid manifest, and every touched manifest must
// parse. Per-directory fetch failures degrade to reported issues, never
// abort the run.
func Run(ctx context.Context, p Params, files []github.ChangedFile) Result {
	var res Result
	runDirectoryPass(ctx, p, files, &res)
	runManifestPass(ctx, p, files, &res)
	return res
}

// runDirectoryPass checks that every touched top-level directory without a
// manifest on the base branch gains a valid one at the head revision.
func runDirectoryPass(ctx context.Context, p Params, files []github.ChangedFile, res *Result) {
	for _, dir := range touchedDirs(files, p.NonSkillDirs) {
		manifestPath := dir + "/" + manifest.Filename

		// Already documented on the base branch: nothing to enforce.
		if _, err := p.Fetcher.FileContent(ctx, p.BaseOwner, p.BaseRepo, manifestPath, p.BaseRef); err == nil {
			continue
		}

		content, err := p.Fetcher.FileContent(ctx, p.HeadOwner, p.HeadRepo, manifestPath, p.HeadSHA)
		if err != nil {
			if github.IsNotFound(err) {
				res.issue("missing manifest: %s must exist for top-level directory %q", manifestPath, dir)
			} else {
				res.issue("could not verify manifest %s: %v", manifestPath, err)
			}
			continue
		}

		if parsed := manifest.Parse(content); !parsed.Valid() {
			res.issue("invalid manifest %s: %s", manifestPath, parsed.Reason)
		}
	}
}

// runManifestPass validates the frontmatter of every manifest file touched by
// the change set.
func runManifestPass(ctx context.Context, p Params, files []github.ChangedFile, res *Result) {
	for _, f := range files {
		if path.Base(f.Path) != manifest.Filename || f.Status == "removed" {
			continue
		}

		content, err := p.Fetcher.FileContent(ctx, p.HeadOwner, p.HeadRepo, f.Path, p.HeadSHA)
		if err != nil {
			res.issue("could not fetch manifest %s: %v", f.Path, err)
			continue
		}

		parsed := manifest.Parse(content)
		if !parsed.Valid() {
			res.issue("invalid manifest %s: %s", f.Path, parsed.Reason)
			continue
		}

		if dir := path.Base(path.Dir(f.Path)); parsed.Frontmatter.Name != dir {
			res.Warnings = append(res.Warnings, verdict.FrontmatterWarning{
				Path:    f.Path,
				Message: fmt.Sprintf("declared name %q does not match directory %q", parsed.Frontmatter.Name, dir),
			})
		}
	}
}

// touchedDirs returns the unique top-level path segments of the change set in
// first-touch order, excluding dotfiles, root-level files, removed files, and
// configured non-skill directories.
func touchedDirs(files []github.ChangedFile, nonSkillDirs []string) []string {
	excluded := make(map[string]struct{}, len(nonSkillDirs))
	for _, d := range nonSkillDirs {
		excluded[d] = struct{}{}
	}

	seen := make(map[string]struct{})
	var dirs []string
	for _, f := range files {
		if f.Status == "removed" {
			continue
		}
		segment, _, found := strings.Cut(f.Path, "/")
		if !found || segment == "" || strings.HasPrefix(segment, ".") {
			continue
		}
		if _, skip := excluded[segment]; skip {
			continue
		}
		if _, ok := seen[segment]; !ok {
			seen[segment] = struct{}{}
			dirs = append(dirs, segment)
		}
	}
	return dirs
}
