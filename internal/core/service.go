// Package core implements the emissions data service: CRUD and scoped reads
// over the entity store, with simulated latency and failures, plus the
// dashboard aggregations composed from those reads.
package core

import (
	"context"
	"errors"
	"time"

	"emissiondesk/internal/infra/persistence/memory"
	"emissiondesk/internal/seed"
	"emissiondesk/internal/sim"
	"emissiondesk/pkg/domain"
)

// Service exposes the data operations. It is safe for concurrent use.
type Service struct {
	store   domain.PersistentStore
	sim     Simulator
	logger  Logger
	now     ClockFunc
	metrics MetricsRecorder
	tracer  Tracer
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		sim:     sim.NewRandom(time.Now().UnixNano()),
		logger:  noopLogger{},
		now:     func() time.Time { return time.Now().UTC() },
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// NewInMemoryService creates a service over a fresh store holding the seed
// dataset.
func NewInMemoryService(opts ...Option) *Service {
	return NewService(seed.NewStore(), opts...)
}

// NewEmptyService creates a service over an empty store.
func NewEmptyService(opts ...Option) *Service {
	return NewService(memory.NewStore(), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// run wraps an operation with tracing, metrics and logging.
func (s *Service) run(ctx context.Context, op string, fn func(context.Context) error) error {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, op)
	err := fn(ctx)
	elapsed := time.Since(started)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, elapsed)

	switch {
	case err == nil:
		s.logger.Debug("operation completed", "operation", op, "duration", elapsed)
	case domain.IsRetryable(err):
		s.logger.Warn("operation failed", "operation", op, "kind", domain.KindOf(err), "error", err, "duration", elapsed)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Info("operation cancelled", "operation", op, "error", err)
	default:
		s.logger.Error("operation failed", "operation", op, "kind", domain.KindOf(err), "error", err, "duration", elapsed)
	}
	return err
}

// wait applies the simulated latency. It returns early with the context error
// when ctx ends first; nothing has been mutated at that point.
func (s *Service) wait(ctx context.Context) error {
	return sim.Delay(ctx, s.sim.Latency())
}

// gate is the simulated failure check run after the delay and before any
// state is read for mutation.
func (s *Service) gate(op string) error {
	if s.sim.ShouldFail() {
		return domain.ErrSimulatedFailure{Operation: op, Message: failureMessages[op]}
	}
	return nil
}

// settle runs the delay followed by the failure gate.
func (s *Service) settle(ctx context.Context, op string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.gate(op)
}

func (s *Service) view(ctx context.Context, fn func(domain.TransactionView) error) error {
	return s.store.View(ctx, fn)
}

func (s *Service) apply(ctx context.Context, op string, fn func(domain.Transaction) error) error {
	changes, err := s.store.RunInTransaction(ctx, fn)
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		s.logger.Info("state changed", "operation", op, "changes", len(changes))
	}
	return nil
}
