// Package registry holds in-flight and recently-completed job state in
// process memory. Nothing here survives a restart; a caller polling an
// unknown id gets a not-found result.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

const (
	// DefaultRetention is how long completed jobs stay pollable.
	DefaultRetention = 24 * time.Hour
	// DefaultSweepInterval is how often the cleanup sweep runs.
	DefaultSweepInterval = time.Hour
)

type Registry struct {
	mu      sync.RWMutex
	imports map[string]*domain.ImportJob
	exports map[string]*domain.ExportJob

	retention     time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

type Option func(*Registry)

func WithRetention(d time.Duration) Option {
	return func(r *Registry) { r.retention = d }
}

func WithSweepInterval(d time.Duration) Option {
	return func(r *Registry) { r.sweepInterval = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		imports:       make(map[string]*domain.ImportJob),
		exports:       make(map[string]*domain.ExportJob),
		retention:     DefaultRetention,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) CreateImport(job *domain.ImportJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.imports[job.ImportID] = job
}

// GetImport returns a snapshot of the job. Copying under the read lock keeps
// pollers from observing a half-applied progress update.
func (r *Registry) GetImport(importID string) (domain.ImportJob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.imports[importID]
	if !ok {
		return domain.ImportJob{}, false
	}
	return *job, true
}

// UpdateImport mutates a job under the write lock. Progress updates from the
// pipeline and poller reads race otherwise.
func (r *Registry) UpdateImport(importID string, mutate func(*domain.ImportJob)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.imports[importID]; ok {
		mutate(job)
	}
}

func (r *Registry) CreateExport(job *domain.ExportJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports[job.ExportID] = job
}

func (r *Registry) GetExport(exportID string) (domain.ExportJob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.exports[exportID]
	if !ok {
		return domain.ExportJob{}, false
	}
	return *job, true
}

func (r *Registry) UpdateExport(exportID string, mutate func(*domain.ExportJob)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.exports[exportID]; ok {
		mutate(job)
	}
}

// Sweep drops jobs whose completion is older than the retention window and
// reports how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.retention)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, job := range r.imports {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.imports, id)
			removed++
		}
	}
	for id, job := range r.exports {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.exports, id)
			removed++
		}
	}
	return removed
}

// Start runs the periodic sweep until ctx is cancelled.
func (r *Registry) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := r.Sweep(); removed > 0 {
					slog.Info("swept stale jobs", "removed", removed)
				}
			}
		}
	}()
}
