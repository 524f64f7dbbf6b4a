package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListInstallationRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/installations/91/repositories" {
			t.Errorf("path = %q, want installation repositories path", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"total_count": 2,
			"repositories": [
				{"id": 14, "full_name": "acme/widgets", "private": false},
				{"id": 16, "full_name": "acme/secret", "private": true}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient("test-token")
	c.SetAPIURL(srv.URL)

	repos, err := c.ListInstallationRepos(context.Background(), 91)
	if err != nil {
		t.Fatalf("ListInstallationRepos() error = %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %d, want 2", len(repos))
	}
	if repos[0].Xref != 14 || repos[0].Name != "acme/widgets" || repos[0].Private {
		t.Errorf("repos[0] = %+v, want public acme/widgets (14)", repos[0])
	}
	if !repos[1].Private {
		t.Error("repos[1] should be private")
	}
}

func TestListOpenPulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repositories/14/pulls" {
			t.Errorf("path = %q, want repository pulls path", r.URL.Path)
		}
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("state = %q, want open", got)
		}
		fmt.Fprint(w, `[
			{
				"number": 3,
				"title": "Add feature",
				"body": "Feature body",
				"state": "open",
				"base": {"ref": "main"},
				"head": {"sha": "abc123"},
				"user": {"id": 7, "login": "octocat"}
			}
		]`)
	}))
	defer srv.Close()

	c := NewClient("test-token")
	c.SetAPIURL(srv.URL)

	pulls, err := c.ListOpenPulls(context.Background(), 14)
	if err != nil {
		t.Fatalf("ListOpenPulls() error = %v", err)
	}
	if len(pulls) != 1 {
		t.Fatalf("pulls = %d, want 1", len(pulls))
	}

	pr := pulls[0]
	if pr.Number != 3 || pr.TargetBranch != "main" || pr.HeadSHA != "abc123" {
		t.Errorf("pull = %+v, want PR 3 at abc123 on main", pr)
	}
	if pr.Author.Xref != 7 || pr.Author.Login != "octocat" {
		t.Errorf("author = %+v, want octocat (7)", pr.Author)
	}
}

func TestPostComment(t *testing.T) {
	t.Run("posts to the issue comments endpoint", func(t *testing.T) {
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %q, want POST", r.Method)
			}
			if r.URL.Path != "/repositories/14/issues/3/comments" {
				t.Errorf("path = %q, want issue comments path", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		c := NewClient("test-token")
		c.SetAPIURL(srv.URL)

		if err := c.PostComment(context.Background(), 14, 3, "staging branch went stale"); err != nil {
			t.Fatalf("PostComment() error = %v", err)
		}
		if gotBody["body"] != "staging branch went stale" {
			t.Errorf("body = %q, want comment text", gotBody["body"])
		}
	})

	t.Run("non-201 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "Resource not accessible"}`)
		}))
		defer srv.Close()

		c := NewClient("test-token")
		c.SetAPIURL(srv.URL)

		if err := c.PostComment(context.Background(), 14, 3, "text"); err == nil {
			t.Error("PostComment() should surface API errors")
		}
	})
}

func TestGetJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer srv.Close()

	c := NewClient("test-token")
	c.SetAPIURL(srv.URL)

	if _, err := c.ListOpenPulls(context.Background(), 14); err == nil {
		t.Error("ListOpenPulls() should surface API errors")
	}
}
