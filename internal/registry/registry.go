package registry

import "sync"

// implRegistry is the in-process Registry implementation.
type implRegistry struct {
	mu       sync.RWMutex
	batchers map[int64]BatchActor
	attempts map[int64]AttemptActor
}

// Ensure implRegistry implements Registry interface
var _ Registry = (*implRegistry)(nil)

// New creates an empty actor registry.
func New() *implRegistry {
	return &implRegistry{
		batchers: make(map[int64]BatchActor),
		attempts: make(map[int64]AttemptActor),
	}
}

func (r *implRegistry) RegisterBatchActor(projectID int64, actor BatchActor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batchers[projectID] = actor
}

func (r *implRegistry) RegisterAttemptActor(projectID int64, actor AttemptActor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[projectID] = actor
}

func (r *implRegistry) UnregisterBatchActor(projectID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.batchers, projectID)
}

func (r *implRegistry) UnregisterAttemptActor(projectID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, projectID)
}

func (r *implRegistry) GetBatchActor(projectID int64) (BatchActor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actor, ok := r.batchers[projectID]
	if !ok {
		return nil, ErrActorNotFound
	}
	return actor, nil
}

func (r *implRegistry) GetAttemptActor(projectID int64) (AttemptActor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actor, ok := r.attempts[projectID]
	if !ok {
		return nil, ErrActorNotFound
	}
	return actor, nil
}
