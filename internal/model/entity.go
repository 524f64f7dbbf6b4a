package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Installation is one granted access scope on the hosting provider.
type Installation struct {
	ID   int64
	Xref int64 // provider-assigned installation id, unique
}

// Project mirrors one remote repository owned by an installation.
type Project struct {
	ID             int64
	RepoXref       int64 // provider repository id, unique across projects
	Name           string
	InstallationID int64
}

// User mirrors a remote account. Upserted by xref whenever referenced
// by an event sender, commenter or reviewer.
type User struct {
	ID        int64
	Xref      int64
	Login     string
	AvatarURL string
}

// LinkUserProject grants a user visibility of a project.
type LinkUserProject struct {
	UserID    int64
	ProjectID int64
}

// Patch mirrors one pull request against a project.
// (ProjectID, Number) is unique.
type Patch struct {
	ID           int64
	ProjectID    int64
	Number       int
	Title        string
	Body         string
	TargetBranch string
	Commit       string // head SHA
	Open         bool
	AuthorID     int64
}

// PrSnapshot is a normalized pull-request payload as reported by the
// provider, before it is persisted as a Patch.
type PrSnapshot struct {
	Number       int
	Title        string
	Body         string
	TargetBranch string
	HeadSHA      string
	State        string // "open" or "closed"
	Author       User
}

// RepoDescriptor describes one repository visible to an installation.
type RepoDescriptor struct {
	Xref    int64
	Name    string
	Private bool
}

// Command is an ephemeral request built from a qualifying comment or
// review event. It is handed to the command interpreter, never persisted.
type Command struct {
	ID        string // request id, uuid
	ProjectID int64
	Commenter User
	Body      string
	PrNumber  int
	Patch     *Patch // refreshed patch when the event carried a PR snapshot
}
