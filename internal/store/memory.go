package store

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh conditions are held.
	ErrNotFound = errors.New("no conditions for the selected city")
)

// Snapshot is the current weather and air quality of one city.
type Snapshot struct {
	City       weather.ResolvedCity          `json:"city"`
	Weather    *openmeteo.ForecastResponse   `json:"weather"`
	AirQuality *openmeteo.AirQualityResponse `json:"airQuality"`
	UpdatedAt  time.Time                     `json:"updatedAt"` // always UTC
}

// Status is a read-only view of the store.
type Status struct {
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	HasError bool      `json:"hasError"`
	Ready    bool      `json:"ready"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// MemoryStore is a concurrency-safe holder of the latest conditions for the
// selected city together with its loading and error flags. Every write replaces
// the held values wholesale.
type MemoryStore struct {
	mu sync.RWMutex

	loading bool
	err     string
	latest  *Snapshot

	// snapshots older than maxAge are treated as missing (0 = unlimited)
	maxAge time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxAge is <= 0, snapshots never expire.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxAge: maxAge,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetLoading flags a refresh in progress.
func (s *MemoryStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError records a failed refresh. The previous snapshot is kept.
func (s *MemoryStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
	if msg != "" {
		s.loading = false
	}
}

// Save replaces the held snapshot and clears the error and loading flags.
func (s *MemoryStore) Save(snapshot Snapshot) {
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = s.now()
	}
	snapshot.UpdatedAt = snapshot.UpdatedAt.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &snapshot
	s.err = ""
	s.loading = false
}

// Clear drops everything held.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = ""
	s.latest = nil
}

// Latest returns the held snapshot if it is still fresh.
func (s *MemoryStore) Latest() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.freshLocked() {
		return Snapshot{}, ErrNotFound
	}
	return *s.latest, nil
}

// Status reports the flags together with the fresh snapshot, if any.
func (s *MemoryStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Loading:  s.loading,
		Error:    s.err,
		HasError: s.err != "",
		Ready:    !s.loading && s.err == "",
	}
	if s.freshLocked() {
		snap := *s.latest
		st.Snapshot = &snap
	}
	return st
}

// CurrentTemperature is the held temperature rounded to a whole degree.
func (s *MemoryStore) CurrentTemperature() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.freshLocked() || s.latest.Weather == nil || s.latest.Weather.Current == nil {
		return 0, false
	}
	return int(math.Round(s.latest.Weather.Current.Temperature)), true
}

// WeatherCode is the held WMO code.
func (s *MemoryStore) WeatherCode() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.freshLocked() || s.latest.Weather == nil || s.latest.Weather.Current == nil {
		return 0, false
	}
	return s.latest.Weather.Current.WeatherCode, true
}

// IsDay reports whether the held reading was taken in daylight.
func (s *MemoryStore) IsDay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.freshLocked() || s.latest.Weather == nil || s.latest.Weather.Current == nil {
		return false
	}
	return s.latest.Weather.Current.IsDay == 1
}

func (s *MemoryStore) freshLocked() bool {
	if s.latest == nil {
		return false
	}
	if s.maxAge > 0 && s.now().Sub(s.latest.UpdatedAt) > s.maxAge {
		return false
	}
	return true
}
