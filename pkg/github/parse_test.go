package github

import (
	"encoding/json"
	"testing"
)

func TestParseUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := ParseUser(json.RawMessage(`{"id": 7, "login": "octocat", "avatar_url": "https://avatars.example.com/7"}`))
		if err != nil {
			t.Fatalf("ParseUser() error = %v", err)
		}
		if u.Xref != 7 || u.Login != "octocat" || u.AvatarURL != "https://avatars.example.com/7" {
			t.Errorf("user = %+v, want octocat (7)", u)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := ParseUser(json.RawMessage(`{"login": "octocat"}`)); err == nil {
			t.Error("ParseUser() should fail without id")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := ParseUser(json.RawMessage(`{`)); err == nil {
			t.Error("ParseUser() should fail on malformed JSON")
		}
	})
}

func TestParsePull(t *testing.T) {
	t.Run("valid pull", func(t *testing.T) {
		pr, err := ParsePull(json.RawMessage(`{
			"number": 3,
			"title": "Add feature",
			"body": "Feature body",
			"state": "open",
			"base": {"ref": "main"},
			"head": {"sha": "abc123"},
			"user": {"id": 7, "login": "octocat"}
		}`))
		if err != nil {
			t.Fatalf("ParsePull() error = %v", err)
		}
		if pr.Number != 3 || pr.TargetBranch != "main" || pr.HeadSHA != "abc123" || pr.State != "open" {
			t.Errorf("pull = %+v, want open PR 3 at abc123 on main", pr)
		}
	})

	t.Run("missing number", func(t *testing.T) {
		if _, err := ParsePull(json.RawMessage(`{"title": "Add feature"}`)); err == nil {
			t.Error("ParsePull() should fail without number")
		}
	})
}
