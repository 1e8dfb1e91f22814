package cron

import (
	"context"
	"testing"
)

type namedJob struct {
	name string
}

func (j *namedJob) Name() string              { return j.name }
func (j *namedJob) Run(context.Context) error { return nil }

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	expiry := &namedJob{name: "comparison-expiry"}
	followup := &namedJob{name: "quote-followup"}
	registry := NewRegistry(expiry, followup)

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != expiry || jobs[1] != followup {
		t.Fatalf("jobs returned out of registration order")
	}

	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("Jobs must hand out a copy")
	}
}

func TestRegistryIgnoresDuplicateNames(t *testing.T) {
	registry := NewRegistry(&namedJob{name: "comparison-expiry"})
	registry.Register(&namedJob{name: "comparison-expiry"})
	registry.Register(nil)

	if got := len(registry.Jobs()); got != 1 {
		t.Fatalf("duplicate name must not register twice, got %d jobs", got)
	}
}
