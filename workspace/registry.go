// Package workspace keeps the per-browser client state of the web surface: the
// feed cache, comment threads and upload panels a single viewer is working with.
// file: workspace/registry.go
package workspace

import (
	"context"
	"sync"
	"time"

	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/observability"
	"english-hub/services"
)

// Deps are shared by every workspace.
type Deps struct {
	Gateway  gateway.Gateway
	Notifier services.FeedNotifier
	Upload   services.UploadOptions
}

// Workspace is one viewer's state.
type Workspace struct {
	ID      string
	Feed    *services.FeedStore
	Threads *services.CommentThreads

	mu       sync.Mutex
	uploads  map[string]*services.UploadWorkflow
	opts     services.UploadOptions
	lastSeen time.Time
}

// Upload returns the viewer's upload panel for clubID, creating it closed.
func (w *Workspace) Upload(clubID string) *services.UploadWorkflow {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, ok := w.uploads[clubID]
	if !ok {
		u = services.NewUploadWorkflow(clubID, w.Feed, w.opts)
		w.uploads[clubID] = u
	}
	return u
}

// Registry tracks live workspaces and evicts idle ones.
type Registry struct {
	deps Deps
	now  func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewRegistry creates an empty registry.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:       deps,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Acquire returns the workspace for id, creating it on first use, and marks it active.
func (r *Registry) Acquire(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workspaces[id]
	if !ok {
		feed := services.NewFeedStore(r.deps.Gateway, r.deps.Notifier)
		w = &Workspace{
			ID:      id,
			Feed:    feed,
			Threads: services.NewCommentThreads(r.deps.Gateway),
			uploads: make(map[string]*services.UploadWorkflow),
			opts:    r.deps.Upload,
		}
		r.workspaces[id] = w
		logger.Debug.Printf("[Registry.Acquire] created workspace=%s", id)
		observability.SetActiveWorkspaces(len(r.workspaces))
	}
	w.mu.Lock()
	w.lastSeen = r.now()
	w.mu.Unlock()
	return w
}

// Drop forgets a workspace, e.g. on logout.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workspaces[id]; ok {
		delete(r.workspaces, id)
		observability.SetActiveWorkspaces(len(r.workspaces))
	}
}

// Len reports how many workspaces are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep removes workspaces idle for longer than timeout and returns how many went.
func (r *Registry) Sweep(timeout time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for id, w := range r.workspaces {
		w.mu.Lock()
		idle := now.Sub(w.lastSeen)
		w.mu.Unlock()
		if idle > timeout {
			logger.Info.Printf("[Registry.Sweep] Removing inactive workspace=%s (idle=%v)", id, idle)
			delete(r.workspaces, id)
			removed++
		}
	}
	observability.SetActiveWorkspaces(len(r.workspaces))
	return removed
}

// CleanupInactive sweeps every interval until ctx is cancelled.
func (r *Registry) CleanupInactive(ctx context.Context, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep(timeout)
			}
		}
	}()
}
