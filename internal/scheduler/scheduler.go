// Package scheduler fires recurring model runs from cron expressions.
package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/user/augur/internal/logger"
)

// Handler is the callback invoked when a scheduled run fires.
type Handler func(name, ref string, input map[string]any)

// Scheduler evaluates cron expressions from the entry store and fires runs
// through a handler callback.
type Scheduler struct {
	store   *Store
	handler Handler
	cron    *cron.Cron
}

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New creates a Scheduler backed by the given entry store. The handler is
// called each time a schedule fires.
func New(store *Store, handler Handler) *Scheduler {
	return &Scheduler{
		store:   store,
		handler: handler,
		cron:    cron.New(cron.WithParser(cronParser)),
	}
}

// Start loads entries from the store, registers the enabled ones as cron
// entries, and starts the cron ticker.
func (s *Scheduler) Start() error {
	entries, err := s.store.List()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Schedule == "" || !entry.Enabled {
			continue
		}

		name := entry.Name
		ref := entry.Ref
		input := entry.Input

		_, err := s.cron.AddFunc(entry.Schedule, func() {
			logger.Infof("schedule firing: %s (%s)", name, ref)
			s.handler(name, ref, input)
		})
		if err != nil {
			logger.Errorf("invalid cron schedule for %s: %v", name, err)
			continue
		}
		logger.Infof("registered schedule %s: %s", name, entry.Schedule)
	}

	s.cron.Start()
	return nil
}

// Reload stops the existing cron, creates a new one, and starts again.
func (s *Scheduler) Reload() error {
	s.cron.Stop()
	s.cron = cron.New(cron.WithParser(cronParser))
	return s.Start()
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
