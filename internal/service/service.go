package service

import (
	"context"
	"sync"

	"github.com/jfuenzalida/placebook-api/internal/exchange"
	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jfuenzalida/placebook-api/internal/repository"
	"go.uber.org/zap"
)

// Service coordinates the place store, the published snapshot and the
// currency-rate client. It is the only mutable coordination point between
// the HTTP surface and the store.
type Service struct {
	placeRepo repository.PlaceRepository
	rates     exchange.RateSource
	mediaDir  string
	logger    *zap.Logger

	// reloadMu serializes store reads with their publish, so a slow reload
	// can never overwrite a newer snapshot
	reloadMu sync.Mutex

	mu       sync.RWMutex
	snapshot []model.Place
	loaded   bool
	subs     map[int]chan []model.Place
	nextSub  int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a service instance and kicks off the initial snapshot
// load in the background. Call Close to stop background work.
func NewService(
	placeRepo repository.PlaceRepository,
	rates exchange.RateSource,
	mediaDir string,
	logger *zap.Logger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		placeRepo: placeRepo,
		rates:     rates,
		mediaDir:  mediaDir,
		logger:    logger,
		subs:      make(map[int]chan []model.Place),
		cancel:    cancel,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Reload(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("Initial place load failed", zap.Error(err))
		}
	}()

	return s
}

// Close cancels background work and waits for it to finish. Subscriber
// channels are closed afterwards.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Reload fetches all places from the store and publishes the result as a new
// snapshot, replacing the prior one wholesale.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	places, err := s.placeRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	s.publish(places)
	return nil
}

// Snapshot returns the last published list and whether a load has completed.
// The returned slice is never mutated after publication.
func (s *Service) Snapshot() ([]model.Place, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.loaded
}

// Subscribe registers for snapshot updates. Each subscriber receives the
// latest snapshot only; intermediate ones may be dropped. The returned func
// unsubscribes.
func (s *Service) Subscribe() (<-chan []model.Place, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan []model.Place, 1)
	s.subs[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
	return ch, unsubscribe
}

func (s *Service) publish(places []model.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = places
	s.loaded = true

	for _, ch := range s.subs {
		// Keep only the newest snapshot per subscriber
		select {
		case ch <- places:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- places
		}
	}
}
