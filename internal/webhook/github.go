package webhook

import (
	"encoding/json"
	"fmt"

	"mergebot/internal/model"
	"mergebot/pkg/github"
)

// GitHubEventParser validates raw GitHub webhook payloads and produces
// the typed event variants the dispatcher consumes. Required fields are
// checked here so the core never sees a half-formed event.
type GitHubEventParser struct{}

func NewGitHubParser() *GitHubEventParser {
	return &GitHubEventParser{}
}

// Parse turns (eventType, payload) into a typed event. The second
// return is false for event types this service does not consume.
func (p *GitHubEventParser) Parse(eventType string, payload []byte) (model.Event, bool, error) {
	switch eventType {
	case "ping":
		return model.PingEvent{}, true, nil
	case "installation":
		ev, err := p.parseInstallationEvent(payload)
		return ev, true, err
	case "installation_repositories":
		ev, err := p.parseInstallationReposEvent(payload)
		return ev, true, err
	case "pull_request":
		ev, err := p.parsePullRequestEvent(payload)
		return ev, true, err
	case "issue_comment":
		ev, err := p.parseIssueCommentEvent(payload)
		return ev, true, err
	case "pull_request_review_comment":
		ev, err := p.parseReviewCommentEvent(payload)
		return ev, true, err
	case "pull_request_review":
		ev, err := p.parseReviewEvent(payload)
		return ev, true, err
	case "status":
		ev, err := p.parseStatusEvent(payload)
		return ev, true, err
	default:
		return nil, false, nil
	}
}

func (p *GitHubEventParser) parseInstallationEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Action       string `json:"action"`
		Installation struct {
			ID int64 `json:"id"`
		} `json:"installation"`
		Sender json.RawMessage `json:"sender"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse installation event: %w", err)
	}
	if raw.Installation.ID == 0 {
		return nil, fmt.Errorf("installation event missing installation.id")
	}

	sender, err := github.ParseUser(raw.Sender)
	if err != nil {
		return nil, fmt.Errorf("installation event: %w", err)
	}

	return model.InstallationEvent{
		Action:           raw.Action,
		InstallationXref: raw.Installation.ID,
		Sender:           sender,
	}, nil
}

func (p *GitHubEventParser) parseInstallationReposEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Installation struct {
			ID int64 `json:"id"`
		} `json:"installation"`
		Sender json.RawMessage `json:"sender"`
		Added  []struct {
			ID       int64  `json:"id"`
			FullName string `json:"full_name"`
			Private  bool   `json:"private"`
		} `json:"repositories_added"`
		Removed []struct {
			ID       int64  `json:"id"`
			FullName string `json:"full_name"`
			Private  bool   `json:"private"`
		} `json:"repositories_removed"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse installation_repositories event: %w", err)
	}
	if raw.Installation.ID == 0 {
		return nil, fmt.Errorf("installation_repositories event missing installation.id")
	}

	sender, err := github.ParseUser(raw.Sender)
	if err != nil {
		return nil, fmt.Errorf("installation_repositories event: %w", err)
	}

	ev := model.InstallationReposEvent{
		InstallationXref: raw.Installation.ID,
		Sender:           sender,
	}
	for _, r := range raw.Added {
		ev.Added = append(ev.Added, model.RepoDescriptor{Xref: r.ID, Name: r.FullName, Private: r.Private})
	}
	for _, r := range raw.Removed {
		ev.Removed = append(ev.Removed, model.RepoDescriptor{Xref: r.ID, Name: r.FullName, Private: r.Private})
	}
	return ev, nil
}

func (p *GitHubEventParser) parsePullRequestEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Action      string          `json:"action"`
		Number      int             `json:"number"`
		PullRequest json.RawMessage `json:"pull_request"`
		Repository  struct {
			ID int64 `json:"id"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pull_request event: %w", err)
	}
	if raw.Repository.ID == 0 {
		return nil, fmt.Errorf("pull_request event missing repository.id")
	}

	pr, err := github.ParsePull(raw.PullRequest)
	if err != nil {
		return nil, fmt.Errorf("pull_request event: %w", err)
	}

	return model.PullRequestEvent{
		Action:   raw.Action,
		RepoXref: raw.Repository.ID,
		Number:   raw.Number,
		Pr:       pr,
	}, nil
}

func (p *GitHubEventParser) parseIssueCommentEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Action string `json:"action"`
		Issue  struct {
			Number      int              `json:"number"`
			PullRequest *json.RawMessage `json:"pull_request"`
		} `json:"issue"`
		Comment struct {
			Body string          `json:"body"`
			User json.RawMessage `json:"user"`
		} `json:"comment"`
		Repository struct {
			ID int64 `json:"id"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse issue_comment event: %w", err)
	}
	if raw.Repository.ID == 0 {
		return nil, fmt.Errorf("issue_comment event missing repository.id")
	}

	commenter, err := github.ParseUser(raw.Comment.User)
	if err != nil {
		return nil, fmt.Errorf("issue_comment event: %w", err)
	}

	return model.IssueCommentEvent{
		Action:        raw.Action,
		RepoXref:      raw.Repository.ID,
		IssueNumber:   raw.Issue.Number,
		IsPullRequest: raw.Issue.PullRequest != nil,
		Commenter:     commenter,
		Body:          raw.Comment.Body,
	}, nil
}

func (p *GitHubEventParser) parseReviewCommentEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Action      string          `json:"action"`
		PullRequest json.RawMessage `json:"pull_request"`
		Comment     struct {
			Body string          `json:"body"`
			User json.RawMessage `json:"user"`
		} `json:"comment"`
		Repository struct {
			ID int64 `json:"id"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pull_request_review_comment event: %w", err)
	}
	if raw.Repository.ID == 0 {
		return nil, fmt.Errorf("pull_request_review_comment event missing repository.id")
	}

	pr, err := github.ParsePull(raw.PullRequest)
	if err != nil {
		return nil, fmt.Errorf("pull_request_review_comment event: %w", err)
	}
	commenter, err := github.ParseUser(raw.Comment.User)
	if err != nil {
		return nil, fmt.Errorf("pull_request_review_comment event: %w", err)
	}

	return model.ReviewCommentEvent{
		Action:    raw.Action,
		RepoXref:  raw.Repository.ID,
		Pr:        pr,
		Commenter: commenter,
		Body:      raw.Comment.Body,
	}, nil
}

func (p *GitHubEventParser) parseReviewEvent(payload []byte) (model.Event, error) {
	var raw struct {
		Action string `json:"action"`
		Review struct {
			Body string          `json:"body"`
			User json.RawMessage `json:"user"`
		} `json:"review"`
		PullRequest json.RawMessage `json:"pull_request"`
		Repository  struct {
			ID int64 `json:"id"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pull_request_review event: %w", err)
	}
	if raw.Repository.ID == 0 {
		return nil, fmt.Errorf("pull_request_review event missing repository.id")
	}

	pr, err := github.ParsePull(raw.PullRequest)
	if err != nil {
		return nil, fmt.Errorf("pull_request_review event: %w", err)
	}
	reviewer, err := github.ParseUser(raw.Review.User)
	if err != nil {
		return nil, fmt.Errorf("pull_request_review event: %w", err)
	}

	return model.ReviewEvent{
		Action:   raw.Action,
		RepoXref: raw.Repository.ID,
		Pr:       pr,
		Reviewer: reviewer,
		Body:     raw.Review.Body,
	}, nil
}

func (p *GitHubEventParser) parseStatusEvent(payload []byte) (model.Event, error) {
	var raw struct {
		SHA       string `json:"sha"`
		Context   string `json:"context"`
		State     string `json:"state"`
		TargetURL string `json:"target_url"`
		Commit    struct {
			Commit struct {
				Message string `json:"message"`
			} `json:"commit"`
		} `json:"commit"`
		Repository struct {
			ID int64 `json:"id"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse status event: %w", err)
	}
	if raw.Repository.ID == 0 {
		return nil, fmt.Errorf("status event missing repository.id")
	}
	if raw.SHA == "" {
		return nil, fmt.Errorf("status event missing sha")
	}

	return model.StatusEvent{
		RepoXref:      raw.Repository.ID,
		SHA:           raw.SHA,
		Context:       raw.Context,
		State:         raw.State,
		TargetURL:     raw.TargetURL,
		CommitMessage: raw.Commit.Commit.Message,
	}, nil
}
