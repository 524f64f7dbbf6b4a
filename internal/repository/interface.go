package repository

import (
	"context"

	"mergebot/internal/model"
)

// Repository is the composed interface for the entity store.
type Repository interface {
	InstallationRepository
	ProjectRepository
	UserRepository
	PatchRepository
	LinkRepository

	// WithTransaction runs fn against a transactional view of the store.
	// Any error from fn rolls back every step; nil commits.
	WithTransaction(ctx context.Context, fn func(Repository) error) error
}

// InstallationRepository defines data access for the Installation entity.
type InstallationRepository interface {
	CreateInstallation(ctx context.Context, opt CreateInstallationOptions) (model.Installation, error)
	GetOneInstallation(ctx context.Context, opt GetOneInstallationOptions) (model.Installation, error)
	DeleteInstallationByXref(ctx context.Context, xref int64) error
}

// ProjectRepository defines data access for the Project entity.
type ProjectRepository interface {
	CreateProject(ctx context.Context, opt CreateProjectOptions) (model.Project, error)
	GetOneProject(ctx context.Context, opt GetOneProjectOptions) (model.Project, error)
	DeleteProjectByRepoXref(ctx context.Context, repoXref int64) error
}

// UserRepository defines data access for the User entity.
type UserRepository interface {
	// UpsertUser inserts the user or refreshes login/avatar on xref conflict.
	UpsertUser(ctx context.Context, opt UpsertUserOptions) (model.User, error)
	GetOneUser(ctx context.Context, opt GetOneUserOptions) (model.User, error)
}

// PatchRepository defines data access for the Patch entity.
type PatchRepository interface {
	CreatePatch(ctx context.Context, opt CreatePatchOptions) (model.Patch, error)
	GetOnePatch(ctx context.Context, opt GetOnePatchOptions) (model.Patch, error)
	UpdatePatch(ctx context.Context, opt UpdatePatchOptions) (model.Patch, error)
}

// LinkRepository defines data access for the user/project association.
type LinkRepository interface {
	CreateLinkUserProject(ctx context.Context, opt CreateLinkUserProjectOptions) error
	GetOneLinkUserProject(ctx context.Context, opt GetOneLinkUserProjectOptions) (model.LinkUserProject, error)
}
