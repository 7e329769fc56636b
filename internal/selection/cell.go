package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/city-weather/internal/metrics"
	"github.com/i474232898/city-weather/internal/weather"
)

// ErrSuperseded is returned by Search when a newer write was issued before
// this one completed. The resolved city is dropped.
var ErrSuperseded = errors.New("selection superseded by a newer request")

// SearchError is a failed user search. Its message names the term searched for.
type SearchError struct {
	Term string
	Err  error
}

func (e *SearchError) Error() string {
	if errors.Is(e.Err, weather.ErrCityNotFound) {
		return fmt.Sprintf("The city %q was not found. Try again.", e.Term)
	}
	return fmt.Sprintf("could not search for city %q: %v", e.Term, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// Resolver turns a search term into a city. *weather.Service satisfies it.
type Resolver interface {
	ResolveCity(ctx context.Context, name string) (weather.ResolvedCity, error)
}

// Options configures the cities tried at startup.
type Options struct {
	DefaultCity  string
	FallbackCity string
}

// Cell holds the currently selected city. Every write goes through store, and
// only the most recently issued request may write. Older in-flight requests are
// canceled and their results discarded.
type Cell struct {
	resolver Resolver
	opts     Options
	logger   *zap.Logger

	mu      sync.Mutex
	city    *weather.ResolvedCity
	issued  uint64
	cancel  context.CancelFunc
	subs    map[uint64]chan weather.ResolvedCity
	nextSub uint64
}

// New creates an empty Cell. Call Init to resolve the default city.
func New(resolver Resolver, opts Options, logger *zap.Logger) *Cell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cell{
		resolver: resolver,
		opts:     opts,
		logger:   logger,
		subs:     make(map[uint64]chan weather.ResolvedCity),
	}
}

// Get returns the selected city. ok is false while nothing is selected.
func (c *Cell) Get() (weather.ResolvedCity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.city == nil {
		return weather.ResolvedCity{}, false
	}
	return *c.city, true
}

// Set replaces the selection and invalidates any request still in flight.
func (c *Cell) Set(city weather.ResolvedCity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked()
	c.storeLocked(city)
}

// Search resolves term and, unless a newer request was issued meanwhile,
// stores the result. The upstream receives the normalised term; errors name the
// term as typed.
func (c *Cell) Search(ctx context.Context, term string) (weather.ResolvedCity, error) {
	term = strings.TrimSpace(term)
	log := c.logger.With(zap.String("search_id", uuid.NewString()), zap.String("term", term))

	rctx, token := c.begin(ctx)
	defer c.finish(token)

	city, err := c.resolver.ResolveCity(rctx, NormalizeTerm(term))
	if c.stale(token) {
		metrics.SelectionDiscarded.Inc()
		log.Debug("search superseded")
		return weather.ResolvedCity{}, ErrSuperseded
	}
	if err != nil {
		log.Info("city search failed", zap.Error(err))
		return weather.ResolvedCity{}, &SearchError{Term: term, Err: err}
	}
	if !c.commit(token, city) {
		metrics.SelectionDiscarded.Inc()
		return weather.ResolvedCity{}, ErrSuperseded
	}

	log.Info("city selected", zap.String("key", city.Key()))
	return city, nil
}

// Init resolves the default city in the background, trying the fallback once
// if that fails. On double failure the cell stays empty. The returned channel
// is closed when initialisation is over.
func (c *Cell) Init(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.initDefault(ctx)
	}()
	return done
}

func (c *Cell) initDefault(ctx context.Context) {
	rctx, token := c.begin(ctx)
	defer c.finish(token)

	for _, name := range []string{c.opts.DefaultCity, c.opts.FallbackCity} {
		if name == "" {
			continue
		}
		city, err := c.resolver.ResolveCity(rctx, name)
		if c.stale(token) {
			c.logger.Debug("default city resolution superseded", zap.String("city", name))
			return
		}
		if err == nil {
			if c.commit(token, city) {
				c.logger.Info("default city selected", zap.String("key", city.Key()))
			}
			return
		}
		c.logger.Warn("default city resolution failed", zap.String("city", name), zap.Error(err))
	}

	c.logger.Error("no default city could be resolved, selection left unset",
		zap.String("default", c.opts.DefaultCity),
		zap.String("fallback", c.opts.FallbackCity))
}

// Subscribe returns a channel that always holds the newest selection not yet
// received, starting with the current one if any. Call cancel to unsubscribe.
func (c *Cell) Subscribe() (<-chan weather.ResolvedCity, func()) {
	ch := make(chan weather.ResolvedCity, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	if c.city != nil {
		ch <- *c.city
	}
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

func (c *Cell) begin(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked()
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	return ctx, c.issued
}

func (c *Cell) finish(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == c.issued && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Cell) stale(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token != c.issued
}

func (c *Cell) commit(token uint64, city weather.ResolvedCity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.issued {
		return false
	}
	c.storeLocked(city)
	return true
}

func (c *Cell) supersedeLocked() {
	c.issued++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Cell) storeLocked(city weather.ResolvedCity) {
	c.city = &city
	metrics.SelectionChanges.Inc()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- city
	}
}
