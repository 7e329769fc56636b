package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/city-weather/internal/errclass"
	"github.com/i474232898/city-weather/internal/metrics"
	"github.com/i474232898/city-weather/internal/store"
	"github.com/i474232898/city-weather/internal/weather"
)

// ConditionsFetcher is satisfied by *weather.Service.
type ConditionsFetcher interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (weather.Conditions, error)
}

// Selection is satisfied by *selection.Cell.
type Selection interface {
	Get() (weather.ResolvedCity, bool)
	Subscribe() (<-chan weather.ResolvedCity, func())
}

// ConditionsStore is satisfied by *store.MemoryStore.
type ConditionsStore interface {
	SetLoading(loading bool)
	SetError(msg string)
	Save(snapshot store.Snapshot)
}

// Scheduler keeps the conditions of the selected city current. It refreshes
// whenever the selection changes and on a fixed interval. A refresh started
// later always wins over one started earlier.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   ConditionsFetcher
	selection Selection
	store     ConditionsStore
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger

	mu          sync.Mutex
	gen         uint64
	cancel      context.CancelFunc
	unsubscribe func()
	runs        sync.WaitGroup
}

// New creates a new Scheduler.
func New(selection Selection, fetcher ConditionsFetcher, st ConditionsStore, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		fetcher:   fetcher,
		selection: selection,
		store:     st,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger,
	}
}

// Start schedules the periodic refresh, subscribes to selection changes and
// starts the underlying scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().WaitForSchedule().Do(func() {
		s.run(ctx, "interval")
	})
	if err != nil {
		return err
	}

	updates, unsubscribe := s.selection.Subscribe()
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case city, ok := <-updates:
				if !ok {
					return
				}
				s.logger.Debug("selection changed", zap.String("key", city.Key()))
				s.runs.Add(1)
				go func() {
					defer s.runs.Done()
					s.run(ctx, "selection")
				}()
			}
		}
	}()

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler, cancels any refresh in flight and waits for it.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.runs.Wait()
}

func (s *Scheduler) run(ctx context.Context, trigger string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("conditions refresh failed", zap.String("trigger", trigger), zap.Error(err))
	}
}

// Refresh fetches the conditions of the selected city into the store. It does
// nothing while no city is selected. Results of a refresh overtaken by a newer
// one, or fetched for a city that is no longer selected, are dropped.
func (s *Scheduler) Refresh(ctx context.Context) error {
	city, ok := s.selection.Get()
	if !ok {
		return nil
	}

	rctx, gen := s.begin(ctx)
	defer s.finish(gen)

	s.store.SetLoading(true)
	conditions, err := s.fetcher.CurrentConditions(rctx, city.Latitude, city.Longitude)

	committed := s.commit(gen, city, func() {
		if err != nil {
			s.store.SetError(errclass.Classify(err).Message)
			return
		}
		s.store.Save(store.Snapshot{
			City:       city,
			Weather:    conditions.Weather,
			AirQuality: conditions.AirQuality,
		})
	})

	switch {
	case !committed:
		metrics.RefreshRuns.WithLabelValues("stale").Inc()
		return nil
	case err != nil:
		metrics.RefreshRuns.WithLabelValues("error").Inc()
		return err
	}
	metrics.RefreshRuns.WithLabelValues("ok").Inc()
	s.logger.Debug("conditions refreshed", zap.String("key", city.Key()))
	return nil
}

func (s *Scheduler) begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, s.gen
}

func (s *Scheduler) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// commit runs apply only if gen is still the newest refresh and city is still
// the selected one. The selection can change between Get and begin.
func (s *Scheduler) commit(gen uint64, city weather.ResolvedCity, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	current, ok := s.selection.Get()
	if !ok || current.Key() != city.Key() || current.Coordinates != city.Coordinates {
		return false
	}
	apply()
	return true
}
