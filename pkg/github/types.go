package github

// userPayload is the wire shape of a GitHub user object.
type userPayload struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// pullPayload is the wire shape of a GitHub pull request object.
type pullPayload struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	State  string `json:"state"`
	Head   struct {
		SHA string `json:"sha"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	User userPayload `json:"user"`
}

// repoPayload is the wire shape of a GitHub repository object.
type repoPayload struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

// installationReposResponse is the response of the installation
// repositories listing endpoint.
type installationReposResponse struct {
	TotalCount   int           `json:"total_count"`
	Repositories []repoPayload `json:"repositories"`
}

// commentRequest is the body of the create-comment endpoint.
type commentRequest struct {
	Body string `json:"body"`
}
