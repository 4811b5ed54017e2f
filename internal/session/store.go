// Package session holds one calculator state per client session and applies
// actions to it one at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"go-chi-calculator/internal/engine"
)

var ErrSessionNotFound = errors.New("session not found")

// Snapshot is a copy of a session at one instant.
type Snapshot struct {
	ID        string
	State     engine.State
	Actions   int
	UpdatedAt time.Time
}

type entry struct {
	state     engine.State
	actions   int
	updatedAt time.Time
}

// Store is safe for concurrent use. Actions against the store are applied
// under a single lock, so a session never has two actions in flight.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time

	active   prometheus.Gauge
	actions  *prometheus.CounterVec
	expired  prometheus.Counter
	onExpire func(id string)
}

// NewStore creates a store whose sessions expire after ttl without activity.
// Collectors are registered on reg.
func NewStore(ttl time.Duration, reg prometheus.Registerer) (*Store, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "calculator_sessions_active",
			Help: "Number of live calculator sessions.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calculator_session_actions_total",
			Help: "Actions applied to calculator sessions, by kind.",
		}, []string{"kind"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "calculator_sessions_expired_total",
			Help: "Sessions removed after being idle longer than the ttl.",
		}),
	}

	for _, c := range []prometheus.Collector{s.active, s.actions, s.expired} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering session collector: %w", err)
		}
	}

	return s, nil
}

// OnExpire sets a callback invoked, outside the store lock, for every session
// removed by Sweep.
func (s *Store) OnExpire(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// Create starts a session at the default state.
func (s *Store) Create() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	e := &entry{state: engine.Default(), updatedAt: s.now()}
	s.sessions[id] = e
	s.active.Set(float64(len(s.sessions)))

	return e.snapshot(id)
}

func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("get %q: %w", id, ErrSessionNotFound)
	}
	return e.snapshot(id), nil
}

// Dispatch applies actions in order and stores the final state. It returns
// the resulting snapshot and one step per action.
func (s *Store) Dispatch(ctx context.Context, id string, actions ...engine.Action) (Snapshot, []engine.Step, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, nil, fmt.Errorf("dispatch to %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, nil, fmt.Errorf("dispatch to %q: %w", id, ErrSessionNotFound)
	}

	steps := make([]engine.Step, 0, len(actions))
	state := e.state
	for _, a := range actions {
		step := engine.Apply(state, a)
		state = step.After
		steps = append(steps, step)
		s.actions.WithLabelValues(a.Kind()).Inc()
	}

	e.state = state
	e.actions += len(actions)
	e.updatedAt = s.now()

	return e.snapshot(id), steps, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrSessionNotFound)
	}
	delete(s.sessions, id)
	s.active.Set(float64(len(s.sessions)))
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle since before now minus the ttl and returns
// their IDs.
func (s *Store) Sweep(now time.Time) []string {
	s.mu.Lock()
	var removed []string
	for id, e := range s.sessions {
		if now.Sub(e.updatedAt) >= s.ttl {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	s.active.Set(float64(len(s.sessions)))
	s.expired.Add(float64(len(removed)))
	onExpire := s.onExpire
	s.mu.Unlock()

	if onExpire != nil {
		for _, id := range removed {
			onExpire(id)
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.Sweep(t)
		}
	}
}

func (e *entry) snapshot(id string) Snapshot {
	return Snapshot{
		ID:        id,
		State:     e.state,
		Actions:   e.actions,
		UpdatedAt: e.updatedAt,
	}
}
