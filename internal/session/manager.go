package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Bank supplies the raw questions a new session draws from.
type Bank interface {
	List(ctx context.Context) ([]geoguess.RawQuestion, error)
}

type Config struct {
	Rules        geoguess.Rules
	TickInterval time.Duration
	TTL          time.Duration
}

type Option func(*Manager)

func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.sched = s }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithOnChange registers a callback that receives every snapshot that
// differs from the previous one. It runs under the session lock and must
// not block or call back into the session.
func WithOnChange(f func(id string, snap engine.Snapshot)) Option {
	return func(m *Manager) { m.onChange = f }
}

// WithOnEnd registers a callback run after a session is deleted or expires.
func WithOnEnd(f func(id string)) Option {
	return func(m *Manager) { m.onEnd = f }
}

// CreateParams configure a new session. An empty SeedPhrase picks a random
// seed.
type CreateParams struct {
	Settings   geoguess.Settings
	SeedPhrase string
}

// Manager is the registry of live sessions.
type Manager struct {
	bank     Bank
	cfg      Config
	logger   *slog.Logger
	sched    Scheduler
	now      func() time.Time
	onChange func(id string, snap engine.Snapshot)
	onEnd    func(id string)

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(bank Bank, cfg Config, logger *slog.Logger, opts ...Option) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	m := &Manager{
		bank:     bank,
		cfg:      cfg,
		logger:   logger,
		sched:    RealScheduler,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Create(ctx context.Context, p CreateParams) (*Session, error) {
	if !p.Settings.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidSettings, p.Settings.Difficulty)
	}

	raw, err := m.bank.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	seed := RandomSeed()
	if p.SeedPhrase != "" {
		seed = SeedFromPhrase(p.SeedPhrase)
	}
	pool, err := geoguess.BuildQuestionPool(raw, seed)
	if err != nil {
		return nil, fmt.Errorf("building question pool: %w", err)
	}

	eng := engine.New(pool, m.cfg.Rules, engine.WithRand(geoguess.NewRand(seed)))
	if p.Settings != (geoguess.Settings{}) {
		eng.Apply(engine.InitializeGame{Settings: p.Settings})
	}

	now := m.now()
	s := &Session{
		id:         uuid.NewString(),
		seed:       seed,
		createdAt:  now,
		eng:        eng,
		sched:      m.sched,
		tickEvery:  m.cfg.TickInterval,
		lastActive: now,
		now:        m.now,
		publish:    m.onChange,
		logger:     m.logger,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("session created",
		"session_id", s.id,
		"seed", seed,
		"questions", eng.Snapshot().Total,
	)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete ends a session and stops its timers.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.end(s)
	m.logger.Info("session ended", "session_id", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the configured TTL and
// returns how many were removed. A zero TTL keeps sessions forever.
func (m *Manager) Sweep() int {
	if m.cfg.TTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.cfg.TTL)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		m.end(s)
		m.logger.Info("session expired", "session_id", s.id)
	}
	return len(expired)
}

func (m *Manager) end(s *Session) {
	s.Close()
	if m.onEnd != nil {
		m.onEnd(s.id)
	}
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Debug("swept idle sessions", "count", n, "remaining", m.Len())
			}
		}
	}
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		m.end(s)
	}
}
