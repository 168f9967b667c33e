// Package scheduler provides periodic upstream monitoring for the patient API.
// It probes the label database on a fixed interval and records the result in
// the status store consumed by the health endpoint.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
)

// probeInterval is how often the label database is probed
const probeInterval = 30 * time.Minute

// probeTimeout bounds a single probe call
const probeTimeout = 10 * time.Second

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles upstream probing using dependency injection
type Scheduler struct {
	labels    interfaces.LabelSource
	status    interfaces.StatusStore
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(labels interfaces.LabelSource, status interfaces.StatusStore) *Scheduler {
	return &Scheduler{
		labels:    labels,
		status:    status,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start runs an initial probe and schedules the recurring ones. The initial
// probe result is recorded but never fatal: the API serves degraded answers
// while the label database is down.
func (s *Scheduler) Start() error {
	s.probe()

	_, err := s.scheduler.Every(probeInterval).Do(s.probe)
	if err != nil {
		logging.Error("Failed to schedule upstream probes", "error", err)
		return fmt.Errorf("failed to schedule upstream probes: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// probe checks the label database and records the result
func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := s.labels.Ping(ctx)
	s.status.SetLabelSourceStatus(err == nil)

	if err != nil {
		logging.Warn("Label database probe failed", "error", err)
		return
	}
	logging.Debug("Label database probe succeeded")
}
