package cron

import "context"

// Job is one scheduled unit of work, such as the comparison-expiry sweep.
// Names must be stable: they label metrics and log lines.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a worker ticks through, in registration order.
// Registering a second job under an already-taken name is a no-op so a
// misconfigured worker cannot run the same sweep twice per tick.
type Registry struct {
	jobs  []Job
	names map[string]struct{}
}

// NewRegistry builds a registry preloaded with the given jobs.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{names: make(map[string]struct{}, len(jobs))}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register adds a job unless one with the same name is already present.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, taken := r.names[job.Name()]; taken {
		return
	}
	r.names[job.Name()] = struct{}{}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy of the registered jobs in registration order.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
