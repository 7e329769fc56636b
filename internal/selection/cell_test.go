package selection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/city-weather/internal/weather"
)

type resolveFunc func(ctx context.Context) (weather.ResolvedCity, error)

type fakeResolver struct {
	mu    sync.Mutex
	funcs map[string]resolveFunc
	calls []string
}

func (f *fakeResolver) ResolveCity(ctx context.Context, name string) (weather.ResolvedCity, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	fn, ok := f.funcs[name]
	f.mu.Unlock()
	if !ok {
		return weather.ResolvedCity{}, weather.ErrCityNotFound
	}
	return fn(ctx)
}

func (f *fakeResolver) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func city(name string) weather.ResolvedCity {
	return weather.ResolvedCity{LocationInfo: weather.LocationInfo{Name: name}}
}

func found(name string) resolveFunc {
	return func(context.Context) (weather.ResolvedCity, error) { return city(name), nil }
}

// blocked resolves to name only after release is closed, ignoring cancellation
// so the late response still arrives.
func blocked(name string, started chan<- struct{}, release <-chan struct{}) resolveFunc {
	return func(context.Context) (weather.ResolvedCity, error) {
		close(started)
		<-release
		return city(name), nil
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("initialisation did not finish")
	}
}

func TestInitSelectsDefaultCity(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{"Sao Paulo": found("São Paulo")}}
	c := New(r, Options{DefaultCity: "Sao Paulo", FallbackCity: "Rio de Janeiro"}, zaptest.NewLogger(t))

	_, ok := c.Get()
	assert.False(t, ok)

	waitDone(t, c.Init(context.Background()))

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "São Paulo", got.Name)
	assert.Equal(t, []string{"Sao Paulo"}, r.called())
}

func TestInitFallsBackOnce(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{
		"Primary": func(context.Context) (weather.ResolvedCity, error) {
			return weather.ResolvedCity{}, errors.New("network down")
		},
		"Fallback": found("Fallback"),
	}}
	c := New(r, Options{DefaultCity: "Primary", FallbackCity: "Fallback"}, zaptest.NewLogger(t))

	waitDone(t, c.Init(context.Background()))

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "Fallback", got.Name)
	assert.Equal(t, []string{"Primary", "Fallback"}, r.called())
}

func TestInitLeavesCellUnsetWhenBothFail(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{}}
	c := New(r, Options{DefaultCity: "Nowhere", FallbackCity: "Neverland"}, zaptest.NewLogger(t))

	waitDone(t, c.Init(context.Background()))

	_, ok := c.Get()
	assert.False(t, ok)
	assert.Equal(t, []string{"Nowhere", "Neverland"}, r.called())
}

func TestSearchOverwritesSelection(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{
		"lisbon": found("Lisbon"),
		"porto":  found("Porto"),
	}}
	c := New(r, Options{}, nil)

	_, err := c.Search(context.Background(), "Lisbon")
	require.NoError(t, err)
	got, err := c.Search(context.Background(), "  Porto ")
	require.NoError(t, err)
	assert.Equal(t, "Porto", got.Name)

	selected, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "Porto", selected.Name)
}

func TestSearchSendsNormalisedTerm(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{"sao paulo": found("São Paulo")}}
	c := New(r, Options{}, nil)

	_, err := c.Search(context.Background(), "São Paulo")
	require.NoError(t, err)
	assert.Equal(t, []string{"sao paulo"}, r.called())
}

func TestSearchFailureNamesTerm(t *testing.T) {
	r := &fakeResolver{funcs: map[string]resolveFunc{"lisbon": found("Lisbon")}}
	c := New(r, Options{}, nil)
	c.Set(city("Lisbon"))

	_, err := c.Search(context.Background(), "Atlantis")
	require.Error(t, err)

	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "Atlantis", searchErr.Term)
	assert.ErrorIs(t, err, weather.ErrCityNotFound)
	assert.Equal(t, `The city "Atlantis" was not found. Try again.`, err.Error())

	selected, _ := c.Get()
	assert.Equal(t, "Lisbon", selected.Name)
}

func TestSearchErrorForOtherFailures(t *testing.T) {
	err := &SearchError{Term: "Oslo", Err: errors.New("connection refused")}
	assert.Contains(t, err.Error(), `"Oslo"`)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := &fakeResolver{funcs: map[string]resolveFunc{
		"slow": blocked("Slow", started, release),
		"fast": found("Fast"),
	}}
	c := New(r, Options{}, nil)

	errs := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "slow")
		errs <- err
	}()
	<-started

	_, err := c.Search(context.Background(), "fast")
	require.NoError(t, err)

	close(release)
	require.ErrorIs(t, <-errs, ErrSuperseded)

	selected, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "Fast", selected.Name)
}

func TestSupersededSearchContextIsCanceled(t *testing.T) {
	started := make(chan struct{})
	r := &fakeResolver{funcs: map[string]resolveFunc{
		"slow": func(ctx context.Context) (weather.ResolvedCity, error) {
			close(started)
			<-ctx.Done()
			return weather.ResolvedCity{}, ctx.Err()
		},
	}}
	c := New(r, Options{}, nil)

	errs := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "slow")
		errs <- err
	}()
	<-started

	c.Set(city("Manual"))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search was not canceled")
	}

	selected, _ := c.Get()
	assert.Equal(t, "Manual", selected.Name)
}

func TestSearchDuringInitWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := &fakeResolver{funcs: map[string]resolveFunc{
		"Default": blocked("Default", started, release),
		"madrid":  found("Madrid"),
	}}
	c := New(r, Options{DefaultCity: "Default"}, zaptest.NewLogger(t))

	done := c.Init(context.Background())
	<-started

	_, err := c.Search(context.Background(), "Madrid")
	require.NoError(t, err)

	close(release)
	waitDone(t, done)

	selected, _ := c.Get()
	assert.Equal(t, "Madrid", selected.Name)
}

func TestSubscribeDeliversNewest(t *testing.T) {
	c := New(&fakeResolver{}, Options{}, nil)
	c.Set(city("First"))

	updates, cancel := c.Subscribe()
	defer cancel()

	assert.Equal(t, "First", (<-updates).Name)

	c.Set(city("Second"))
	c.Set(city("Third"))
	assert.Equal(t, "Third", (<-updates).Name)

	select {
	case got := <-updates:
		t.Fatalf("unexpected extra update %q", got.Name)
	default:
	}

	cancel()
	_, open := <-updates
	assert.False(t, open)
	c.Set(city("Fourth"))
}

func TestNormalizeTerm(t *testing.T) {
	tests := map[string]string{
		"  São Paulo ": "sao paulo",
		"Zürich":       "zurich",
		"Kraków":       "krakow",
		"BERLIN":       "berlin",
		"":             "",
		"   ":          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTerm(in), "input %q", in)
	}
}
