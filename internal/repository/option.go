package repository

// CreateInstallationOptions holds parameters for inserting an Installation.
type CreateInstallationOptions struct {
	Xref int64
}

// GetOneInstallationOptions holds filter parameters for fetching a single
// Installation. All non-zero fields are applied as AND conditions.
type GetOneInstallationOptions struct {
	ID   int64
	Xref int64
}

// CreateProjectOptions holds parameters for inserting a Project.
type CreateProjectOptions struct {
	RepoXref       int64
	Name           string
	InstallationID int64
}

// GetOneProjectOptions holds filter parameters for fetching a single Project.
type GetOneProjectOptions struct {
	ID       int64
	RepoXref int64
}

// UpsertUserOptions holds parameters for inserting or refreshing a User.
type UpsertUserOptions struct {
	Xref      int64
	Login     string
	AvatarURL string
}

// GetOneUserOptions holds filter parameters for fetching a single User.
type GetOneUserOptions struct {
	ID   int64
	Xref int64
}

// CreatePatchOptions holds parameters for inserting a Patch.
type CreatePatchOptions struct {
	ProjectID    int64
	Number       int
	Title        string
	Body         string
	TargetBranch string
	Commit       string
	Open         bool
	AuthorID     int64
}

// GetOnePatchOptions holds filter parameters for fetching a single Patch.
// Number is only applied when ProjectID is also set.
type GetOnePatchOptions struct {
	ID        int64
	ProjectID int64
	Number    int
}

// UpdatePatchOptions holds parameters for a partial Patch update.
// Nil pointer fields are left untouched.
type UpdatePatchOptions struct {
	ID           int64
	Title        *string
	Body         *string
	TargetBranch *string
	Commit       *string
	Open         *bool
}

// CreateLinkUserProjectOptions holds parameters for inserting a link row.
type CreateLinkUserProjectOptions struct {
	UserID    int64
	ProjectID int64
}

// GetOneLinkUserProjectOptions holds filter parameters for fetching a link.
type GetOneLinkUserProjectOptions struct {
	UserID    int64
	ProjectID int64
}
