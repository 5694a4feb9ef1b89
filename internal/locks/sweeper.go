package locks

import (
	"context"
	"time"

	"bustix/pkg/logger"
)

// Sweeper periodically removes expired lock records. The store stays
// correct without it because every read applies the logical expiry test;
// the sweeper only reclaims space and keeps SCANs short.
type Sweeper struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	logger   *logger.Logger
}

func NewSweeper(service Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
		logger:   logger.GetDefault(),
	}
}

// Start launches the background sweep loop.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
	s.logger.Info("Lock sweeper started", "interval", s.interval.String())
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	close(s.done)
	s.logger.Info("Lock sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.service.SweepAll(ctx); err != nil {
		s.logger.WithError(err).Error("Lock sweep failed")
	}
}
