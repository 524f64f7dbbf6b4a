package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"mergebot/internal/model"
)

const defaultAPIURL = "https://api.github.com"

// Client is a minimal GitHub REST API client covering the calls the
// reconciliation core needs.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a GitHub client authenticated with the given token.
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		apiURL:     defaultAPIURL,
		httpClient: oauth2.NewClient(context.Background(), src),
	}
}

// SetAPIURL overrides the default GitHub API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// ListInstallationRepos fetches the repositories visible to an installation.
func (c *Client) ListInstallationRepos(ctx context.Context, installationXref int64) ([]model.RepoDescriptor, error) {
	url := fmt.Sprintf("%s/user/installations/%d/repositories", c.apiURL, installationXref)

	var out installationReposResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("failed to list installation repos: %w", err)
	}

	repos := make([]model.RepoDescriptor, 0, len(out.Repositories))
	for _, raw := range out.Repositories {
		repos = append(repos, model.RepoDescriptor{
			Xref:    raw.ID,
			Name:    raw.FullName,
			Private: raw.Private,
		})
	}
	return repos, nil
}

// ListOpenPulls fetches the open pull requests of a repository by its id.
func (c *Client) ListOpenPulls(ctx context.Context, repoXref int64) ([]model.PrSnapshot, error) {
	url := fmt.Sprintf("%s/repositories/%d/pulls?state=open", c.apiURL, repoXref)

	var raw []pullPayload
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("failed to list open pulls: %w", err)
	}

	pulls := make([]model.PrSnapshot, 0, len(raw))
	for _, p := range raw {
		pulls = append(pulls, normalizePull(p))
	}
	return pulls, nil
}

// PostComment posts a comment on a pull request of the repository.
func (c *Client) PostComment(ctx context.Context, repoXref int64, prNumber int, text string) error {
	url := fmt.Sprintf("%s/repositories/%d/issues/%d/comments", c.apiURL, repoXref, prNumber)

	body, err := json.Marshal(commentRequest{Body: text})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build comment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github comment API error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API error %d: %s", resp.StatusCode, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
