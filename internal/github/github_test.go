package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gh := gogithub.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return NewFromGitHub(gh, "acme", "skills")
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestListChangedFiles_SinglePage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"filename": "pdf-tools/SKILL.md", "status": "added", "patch": "@@ -0,0 +1 @@"},
			{"filename": "pdf-tools/scripts/merge.py", "status": "added"},
		})
	})

	files, err := newTestClient(t, mux).ListChangedFiles(context.Background(), 7, 150)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "pdf-tools/SKILL.md", files[0].Path)
	assert.Equal(t, "added", files[0].Status)
	assert.Equal(t, "@@ -0,0 +1 @@", files[0].Patch)
	assert.Empty(t, files[1].Patch)
}

func TestListChangedFiles_PaginatesAndCaps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			full := make([]map[string]any, pageSize)
			for i := range full {
				full[i] = map[string]any{"filename": fmt.Sprintf("dir/file%03d.md", i), "status": "modified"}
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s?page=2>; rel="next"`, "http://"+r.Host+r.URL.Path))
			writeJSON(t, w, full)
			return
		}
		writeJSON(t, w, []map[string]any{
			{"filename": "dir/last.md", "status": "modified"},
		})
	})

	// Cap below one page: stops mid-page.
	files, err := newTestClient(t, mux).ListChangedFiles(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Len(t, files, 10)

	// Cap above total: follows the next page, stops on the short one.
	files, err = newTestClient(t, mux).ListChangedFiles(context.Background(), 7, 500)
	require.NoError(t, err)
	assert.Len(t, files, pageSize+1)
	assert.Equal(t, "dir/last.md", files[pageSize].Path)
}

func TestListChangedFiles_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusBadGateway)
	})

	_, err := newTestClient(t, mux).ListChangedFiles(context.Background(), 7, 150)
	assert.Error(t, err)
}

func TestFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/contents/pdf-tools/SKILL.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123", r.URL.Query().Get("ref"))
		writeJSON(t, w, map[string]any{
			"type":     "file",
			"name":     "SKILL.md",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte("---\nname: pdf-tools\n---\n")),
		})
	})

	content, err := newTestClient(t, mux).FileContent(context.Background(), "acme", "skills", "pdf-tools/SKILL.md", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "---\nname: pdf-tools\n---\n", content)
}

func TestFileContent_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/contents/missing/SKILL.md", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := newTestClient(t, mux).FileContent(context.Background(), "acme", "skills", "missing/SKILL.md", "abc123")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(&NotFoundError{Path: "a", Ref: "b"}))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", &NotFoundError{Path: "a", Ref: "b"})))
	assert.False(t, IsNotFound(fmt.Errorf("permission denied")))
}

func TestListRootDirs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/contents/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"type": "dir", "name": "pdf-tools"},
			{"type": "file", "name": "README.md"},
			{"type": "dir", "name": "web-scraper"},
		})
	})

	dirs, err := newTestClient(t, mux).ListRootDirs(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf-tools", "web-scraper"}, dirs)
}

func TestFindMarkedComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"id": 11, "body": "unrelated chatter"},
			{"id": 12, "body": "<!-- skillgate:verdict -->\n## Verdict"},
		})
	})

	client := newTestClient(t, mux)

	id, found, err := client.FindMarkedComment(context.Background(), 7, "<!-- skillgate:verdict -->")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(12), id)

	_, found, err = client.FindMarkedComment(context.Background(), 7, "<!-- other-marker -->")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateAndUpdateComment(t *testing.T) {
	var created, updated string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/skills/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		created = body["body"]
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, map[string]any{"id": 99})
	})
	mux.HandleFunc("/repos/acme/skills/issues/comments/99", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		updated = body["body"]
		writeJSON(t, w, map[string]any{"id": 99})
	})

	client := newTestClient(t, mux)

	require.NoError(t, client.CreateComment(context.Background(), 7, "first"))
	assert.Equal(t, "first", created)

	require.NoError(t, client.UpdateComment(context.Background(), 99, "second"))
	assert.Equal(t, "second", updated)
}
