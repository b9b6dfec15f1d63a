package activities

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/stravastats/internal/telemetry/metrics"
)

var (
	ErrHistoryLoading    = errors.New("activity history is loading")
	ErrHistoryLoadFailed = errors.New("activity history load failed")
)

type athleteHistory struct {
	status     Status
	collection Collection
	generation int
	cancel     context.CancelFunc
	done       chan struct{}      // closed when the latest load goroutine returns
	engines    map[string]*Engine // by session id
}

// Service keeps the loaded histories of all athletes in memory, backed by a Store.
// Loads run in the background; callers poll Status until the history is loaded.
type Service struct {
	store          Store
	metricsManager *metrics.Manager
	pageSize       int

	mu       sync.Mutex
	athletes map[int64]*athleteHistory
	wg       sync.WaitGroup
}

func NewService(store Store, pageSize int, metricsManager *metrics.Manager) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:          store,
		metricsManager: metricsManager,
		pageSize:       pageSize,
		athletes:       make(map[int64]*athleteHistory),
	}
}

// history must be called with s.mu held.
func (s *Service) history(athleteID int64) *athleteHistory {
	h, ok := s.athletes[athleteID]
	if !ok {
		h = &athleteHistory{
			status:  Status{State: LoadStateIdle, UpdatedAt: time.Now()},
			engines: make(map[string]*Engine),
		}
		s.athletes[athleteID] = h
	}
	return h
}

func (s *Service) Status(athleteID int64) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history(athleteID).status
}

// Collection returns the athlete's full history. If it is neither in memory nor in the store,
// a background load is started and ErrHistoryLoading is returned.
func (s *Service) Collection(ctx context.Context, athleteID int64, fetcher PageFetcher) (Collection, error) {
	s.mu.Lock()
	h := s.history(athleteID)
	switch h.status.State {
	case LoadStateLoaded:
		collection := h.collection
		s.mu.Unlock()
		return collection, nil
	case LoadStateLoading:
		s.mu.Unlock()
		return nil, ErrHistoryLoading
	case LoadStateFailed:
		msg := h.status.Error
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrHistoryLoadFailed, msg)
	}
	s.mu.Unlock()

	stored, found, err := s.store.Load(ctx, athleteID)
	if err != nil {
		log.Errorf("athlete [%d]: load stored activities: %s", athleteID, err)
	}
	if found {
		s.mu.Lock()
		defer s.mu.Unlock()
		// a load may have started in the meantime, it wins
		if h.status.State == LoadStateIdle {
			h.collection = stored
			h.status = Status{State: LoadStateLoaded, Count: len(stored), UpdatedAt: time.Now()}
		}
		return stored, nil
	}

	s.startLoad(ctx, athleteID, fetcher, false)
	return nil, ErrHistoryLoading
}

// Reload drops the stored history and starts a fresh background load. A load already
// in flight is cancelled, its result dropped, and it is waited for before the stored
// history is deleted, so it cannot save the old history back. Response caches are bypassed.
func (s *Service) Reload(ctx context.Context, athleteID int64, fetcher PageFetcher) error {
	ctx = WithFreshData(ctx)

	s.mu.Lock()
	h := s.history(athleteID)
	superseded := h.cancel != nil
	if superseded {
		h.cancel()
		h.cancel = nil
		h.generation++
	}
	done := h.done
	s.mu.Unlock()

	if superseded && done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			s.failLoad(h, fmt.Errorf("wait for superseded load: %w", ctx.Err()))
			return ctx.Err()
		}
	}

	if err := s.store.Delete(ctx, athleteID); err != nil {
		if superseded {
			s.failLoad(h, fmt.Errorf("delete stored activities: %w", err))
		}
		return fmt.Errorf("delete stored activities: %w", err)
	}
	s.startLoad(ctx, athleteID, fetcher, true)
	return nil
}

// failLoad marks a history whose load was cancelled without a replacement as failed.
func (s *Service) failLoad(h *athleteHistory, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.cancel != nil {
		return
	}
	h.collection = nil
	h.status = Status{State: LoadStateFailed, Error: err.Error(), UpdatedAt: time.Now()}
}

// startLoad starts a background load. Unless force is set, it does nothing when
// the athlete's history is no longer idle.
func (s *Service) startLoad(ctx context.Context, athleteID int64, fetcher PageFetcher, force bool) {
	s.mu.Lock()
	h := s.history(athleteID)
	if !force && h.status.State != LoadStateIdle {
		s.mu.Unlock()
		return
	}

	// the load outlives the request that triggered it
	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if h.cancel != nil {
		h.cancel()
	}
	h.generation++
	generation := h.generation
	h.cancel = cancel
	done := make(chan struct{})
	h.done = done
	h.collection = nil
	h.engines = make(map[string]*Engine)
	h.status = Status{State: LoadStateLoading, UpdatedAt: time.Now()}
	s.mu.Unlock()

	loader := NewLoader(athleteID, fetcher, s.store, s.metricsManager).WithPageSize(s.pageSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		defer cancel()

		collection, err := loader.LoadAll(loadCtx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if h.generation != generation {
			log.Debugf("athlete [%d]: dropping result of superseded load", athleteID)
			return
		}
		h.cancel = nil
		if err != nil {
			log.Errorf("athlete [%d]: load activities: %s", athleteID, err)
			h.status = Status{State: LoadStateFailed, Error: err.Error(), UpdatedAt: time.Now()}
			return
		}
		h.collection = collection
		h.status = Status{State: LoadStateLoaded, Count: len(collection), UpdatedAt: time.Now()}
	}()
}

// Engine returns the filter engine of a session, creating it over the athlete's history
// on first use. Engines are dropped whenever the history is reloaded.
func (s *Service) Engine(ctx context.Context, athleteID int64, sessionID string, fetcher PageFetcher) (*Engine, error) {
	collection, err := s.Collection(ctx, athleteID, fetcher)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history(athleteID)
	engine, ok := h.engines[sessionID]
	if !ok {
		engine = NewEngine(collection)
		h.engines[sessionID] = engine
	}
	return engine, nil
}

// ForgetSession drops the filter engine of a session.
func (s *Service) ForgetSession(athleteID int64, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.athletes[athleteID]; ok {
		delete(h.engines, sessionID)
	}
}

// Wait blocks until all background loads are done.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Shutdown cancels all in-flight loads and waits for them to return.
func (s *Service) Shutdown() {
	s.mu.Lock()
	for _, h := range s.athletes {
		if h.cancel != nil {
			h.cancel()
		}
	}
	s.mu.Unlock()
	s.Wait()
}
