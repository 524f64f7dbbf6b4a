package model

// EventProvider is the source hosting provider of a webhook event.
type EventProvider string

const (
	ProviderGitHub EventProvider = "github"
)

// EventKind identifies the webhook event type.
type EventKind string

const (
	EventKindPing              EventKind = "ping"
	EventKindInstallation      EventKind = "installation"
	EventKindInstallationRepos EventKind = "installation_repositories"
	EventKindPullRequest       EventKind = "pull_request"
	EventKindIssueComment      EventKind = "issue_comment"
	EventKindReviewComment     EventKind = "pull_request_review_comment"
	EventKindReview            EventKind = "pull_request_review"
	EventKindStatus            EventKind = "status"
)

// Event is the tagged union over webhook event kinds. The transport layer
// validates required payload fields and produces one of the concrete
// variants below; the dispatcher type-switches over them.
type Event interface {
	Kind() EventKind
}

// PingEvent is the provider's delivery test. Always a no-op.
type PingEvent struct{}

func (PingEvent) Kind() EventKind { return EventKindPing }

// InstallationEvent reports an installation lifecycle change.
type InstallationEvent struct {
	Action           string // created, deleted, ...
	InstallationXref int64
	Sender           User
}

func (InstallationEvent) Kind() EventKind { return EventKindInstallation }

// InstallationReposEvent reports repositories added to or removed from
// an installation's visible set.
type InstallationReposEvent struct {
	InstallationXref int64
	Sender           User
	Added            []RepoDescriptor
	Removed          []RepoDescriptor
}

func (InstallationReposEvent) Kind() EventKind { return EventKindInstallationRepos }

// PullRequestEvent reports a pull-request lifecycle change.
type PullRequestEvent struct {
	Action   string // opened, closed, reopened, synchronize, edited, ...
	RepoXref int64
	Number   int
	Pr       PrSnapshot
}

func (PullRequestEvent) Kind() EventKind { return EventKindPullRequest }

// IssueCommentEvent reports a comment on an issue. IsPullRequest is set
// when the parent issue carries a pull-request link.
type IssueCommentEvent struct {
	Action        string
	RepoXref      int64
	IssueNumber   int
	IsPullRequest bool
	Commenter     User
	Body          string
}

func (IssueCommentEvent) Kind() EventKind { return EventKindIssueComment }

// ReviewCommentEvent reports an inline comment on a pull-request diff.
type ReviewCommentEvent struct {
	Action    string
	RepoXref  int64
	Pr        PrSnapshot
	Commenter User
	Body      string
}

func (ReviewCommentEvent) Kind() EventKind { return EventKindReviewComment }

// ReviewEvent reports a submitted pull-request review.
type ReviewEvent struct {
	Action   string
	RepoXref int64
	Pr       PrSnapshot
	Reviewer User
	Body     string
}

func (ReviewEvent) Kind() EventKind { return EventKindReview }

// StatusEvent reports a commit-status update. CommitMessage is the
// message of the commit the status is attached to; routing is decided
// by its leading tokens.
type StatusEvent struct {
	RepoXref      int64
	SHA           string
	Context       string
	State         string // raw provider state (pending/success/error/failure)
	TargetURL     string
	CommitMessage string
}

func (StatusEvent) Kind() EventKind { return EventKindStatus }
