package core

import "time"

// ClockFunc returns the current time.
type ClockFunc func() time.Time

// Simulator decides the delay and the failure outcome of each call.
type Simulator interface {
	Latency() time.Duration
	ShouldFail() bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger installs a logger. A nil logger keeps the no-op default.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for created timestamps and stats.
func WithClock(clock ClockFunc) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithMetricsRecorder installs a metrics recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithSimulator replaces the randomized latency and failure source.
func WithSimulator(sim Simulator) Option {
	return func(s *Service) {
		if sim != nil {
			s.sim = sim
		}
	}
}
