package services

import (
	"context"
	"io"
	"strings"

	"agritrack/internal/metrics"
	"agritrack/internal/repositories"

	"github.com/sirupsen/logrus"
)

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload interface{}) error
}

// Option configures the optional collaborators shared by every service.
type Option func(*base)

// WithEvents publishes lifecycle events through p.
func WithEvents(p EventPublisher) Option {
	return func(b *base) { b.events = p }
}

// WithLogger replaces the default discarding logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *base) { b.log = l }
}

type base struct {
	events EventPublisher
	log    logrus.FieldLogger
}

func newBase(component string, opts []Option) base {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	b := base{log: quiet}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.WithField("component", component)
	return b
}

// emit publishes an event. Failures are logged and counted, never returned.
func (b base) emit(ctx context.Context, eventType string, payload interface{}) {
	if b.events == nil {
		return
	}
	status := "ok"
	if err := b.events.PublishEvent(ctx, eventType, payload); err != nil {
		status = "error"
		b.log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
	metrics.EventsPublished.WithLabelValues(eventType, status).Inc()
}

// authorizeFarm loads the farm only when ownerID owns it. Both a missing and a
// foreign farm yield NotFoundError{"Farm"}.
func authorizeFarm(ctx context.Context, farms repositories.FarmRepository, farmID, ownerID string) error {
	if strings.TrimSpace(farmID) == "" {
		return ErrMissingScopeKey
	}
	if _, err := farms.GetByIDAndOwner(ctx, farmID, ownerID); err != nil {
		return notFound(err, "Farm")
	}
	return nil
}

// authorizeRecord checks that the farm of a loaded record belongs to ownerID,
// reporting a foreign record as a missing one of the given entity.
func authorizeRecord(ctx context.Context, farms repositories.FarmRepository, farmID, ownerID, entity string) error {
	if _, err := farms.GetByIDAndOwner(ctx, farmID, ownerID); err != nil {
		return notFound(err, entity)
	}
	return nil
}

// nonEmpty returns s when it holds something other than whitespace.
// Required text fields ignore blank updates.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
