package usecase

import (
	"context"
	"sync"

	"mergebot/internal/model"
	"mergebot/internal/registry"
	"mergebot/internal/repository"
	"mergebot/internal/synchronizer"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fakeRepo is an in-memory Repository. WithTransaction runs fn against
// the same store; rollback is not simulated.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64

	installations map[int64]model.Installation // by id
	projects      map[int64]model.Project      // by id
	users         map[int64]model.User         // by id
	patches       map[int64]model.Patch        // by id
	links         []model.LinkUserProject
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		installations: make(map[int64]model.Installation),
		projects:      make(map[int64]model.Project),
		users:         make(map[int64]model.User),
		patches:       make(map[int64]model.Patch),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repository.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) CreateInstallation(ctx context.Context, opt repository.CreateInstallationOptions) (model.Installation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inst := model.Installation{ID: f.id(), Xref: opt.Xref}
	f.installations[inst.ID] = inst
	return inst, nil
}

func (f *fakeRepo) GetOneInstallation(ctx context.Context, opt repository.GetOneInstallationOptions) (model.Installation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inst := range f.installations {
		if opt.ID != 0 && inst.ID != opt.ID {
			continue
		}
		if opt.Xref != 0 && inst.Xref != opt.Xref {
			continue
		}
		return inst, nil
	}
	return model.Installation{}, nil
}

func (f *fakeRepo) DeleteInstallationByXref(ctx context.Context, xref int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, inst := range f.installations {
		if inst.Xref == xref {
			delete(f.installations, id)
			for pid, p := range f.projects {
				if p.InstallationID == id {
					delete(f.projects, pid)
				}
			}
		}
	}
	return nil
}

func (f *fakeRepo) CreateProject(ctx context.Context, opt repository.CreateProjectOptions) (model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Project{ID: f.id(), RepoXref: opt.RepoXref, Name: opt.Name, InstallationID: opt.InstallationID}
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetOneProject(ctx context.Context, opt repository.GetOneProjectOptions) (model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if opt.ID != 0 && p.ID != opt.ID {
			continue
		}
		if opt.RepoXref != 0 && p.RepoXref != opt.RepoXref {
			continue
		}
		return p, nil
	}
	return model.Project{}, nil
}

func (f *fakeRepo) DeleteProjectByRepoXref(ctx context.Context, repoXref int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.projects {
		if p.RepoXref == repoXref {
			delete(f.projects, id)
		}
	}
	return nil
}

func (f *fakeRepo) UpsertUser(ctx context.Context, opt repository.UpsertUserOptions) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Xref == opt.Xref {
			u.Login = opt.Login
			u.AvatarURL = opt.AvatarURL
			f.users[id] = u
			return u, nil
		}
	}
	u := model.User{ID: f.id(), Xref: opt.Xref, Login: opt.Login, AvatarURL: opt.AvatarURL}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetOneUser(ctx context.Context, opt repository.GetOneUserOptions) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if opt.ID != 0 && u.ID != opt.ID {
			continue
		}
		if opt.Xref != 0 && u.Xref != opt.Xref {
			continue
		}
		return u, nil
	}
	return model.User{}, nil
}

func (f *fakeRepo) CreatePatch(ctx context.Context, opt repository.CreatePatchOptions) (model.Patch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Patch{
		ID:           f.id(),
		ProjectID:    opt.ProjectID,
		Number:       opt.Number,
		Title:        opt.Title,
		Body:         opt.Body,
		TargetBranch: opt.TargetBranch,
		Commit:       opt.Commit,
		Open:         opt.Open,
		AuthorID:     opt.AuthorID,
	}
	f.patches[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetOnePatch(ctx context.Context, opt repository.GetOnePatchOptions) (model.Patch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patches {
		if opt.ID != 0 && p.ID != opt.ID {
			continue
		}
		if opt.ProjectID != 0 && (p.ProjectID != opt.ProjectID || p.Number != opt.Number) {
			continue
		}
		return p, nil
	}
	return model.Patch{}, nil
}

func (f *fakeRepo) UpdatePatch(ctx context.Context, opt repository.UpdatePatchOptions) (model.Patch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.patches[opt.ID]
	if opt.Title != nil {
		p.Title = *opt.Title
	}
	if opt.Body != nil {
		p.Body = *opt.Body
	}
	if opt.TargetBranch != nil {
		p.TargetBranch = *opt.TargetBranch
	}
	if opt.Commit != nil {
		p.Commit = *opt.Commit
	}
	if opt.Open != nil {
		p.Open = *opt.Open
	}
	f.patches[opt.ID] = p
	return p, nil
}

func (f *fakeRepo) CreateLinkUserProject(ctx context.Context, opt repository.CreateLinkUserProjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, model.LinkUserProject{UserID: opt.UserID, ProjectID: opt.ProjectID})
	return nil
}

func (f *fakeRepo) GetOneLinkUserProject(ctx context.Context, opt repository.GetOneLinkUserProjectOptions) (model.LinkUserProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.UserID == opt.UserID && l.ProjectID == opt.ProjectID {
			return l, nil
		}
	}
	return model.LinkUserProject{}, nil
}

// fakeProvider covers both the dispatcher's and the synchronizer's
// provider surface.
type fakeProvider struct {
	repos    []model.RepoDescriptor
	pulls    []model.PrSnapshot
	comments []string
	listErr  error
}

func (f *fakeProvider) ListInstallationRepos(ctx context.Context, installationXref int64) ([]model.RepoDescriptor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.repos, nil
}

func (f *fakeProvider) ListOpenPulls(ctx context.Context, repoXref int64) ([]model.PrSnapshot, error) {
	return f.pulls, nil
}

func (f *fakeProvider) PostComment(ctx context.Context, repoXref int64, prNumber int, text string) error {
	f.comments = append(f.comments, text)
	return nil
}

// fakeBatchActor records what the dispatcher delivered.
type fakeBatchActor struct {
	pings     int
	statuses  []registry.StatusUpdate
	cancelled []int64
}

func (f *fakeBatchActor) Ping(ctx context.Context) { f.pings++ }
func (f *fakeBatchActor) UpdateStatus(ctx context.Context, update registry.StatusUpdate) {
	f.statuses = append(f.statuses, update)
}
func (f *fakeBatchActor) CancelPatch(ctx context.Context, patchID int64) {
	f.cancelled = append(f.cancelled, patchID)
}

type fakeAttemptActor struct {
	statuses []registry.StatusUpdate
}

func (f *fakeAttemptActor) UpdateStatus(ctx context.Context, update registry.StatusUpdate) {
	f.statuses = append(f.statuses, update)
}

// fakeRunner records commands handed to the interpreter.
type fakeRunner struct {
	commands []model.Command
	err      error
}

func (f *fakeRunner) Run(ctx context.Context, cmd model.Command) error {
	f.commands = append(f.commands, cmd)
	return f.err
}

// fixture bundles a dispatcher with its collaborators over in-memory
// state.
type fixture struct {
	uc       *implUseCase
	repo     *fakeRepo
	provider *fakeProvider
	reg      registry.Registry
	runner   *fakeRunner
}

func newFixture(cfg Config) *fixture {
	logger := &mockLogger{}
	repo := newFakeRepo()
	provider := &fakeProvider{}
	reg := registry.New()
	runner := &fakeRunner{}
	syncer := synchronizer.New(repo, provider, synchronizer.Config{}, logger)

	return &fixture{
		uc:       New(repo, provider, reg, syncer, runner, cfg, logger),
		repo:     repo,
		provider: provider,
		reg:      reg,
		runner:   runner,
	}
}

// seedProject inserts an installation and one project for it.
func (fx *fixture) seedProject(ctx context.Context, installationXref, repoXref int64, name string) model.Project {
	inst, _ := fx.repo.CreateInstallation(ctx, repository.CreateInstallationOptions{Xref: installationXref})
	project, _ := fx.repo.CreateProject(ctx, repository.CreateProjectOptions{
		RepoXref:       repoXref,
		Name:           name,
		InstallationID: inst.ID,
	})
	return project
}
