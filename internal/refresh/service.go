package refresh

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/model"
)

// Service handles refresh requests
type Service struct {
	fetcher Fetcher

	mu       sync.Mutex
	latest   map[string]string // remote -> id of the newest request
	inFlight int
	onUpdate func(model.StatusSnapshot) // callback for UI updates

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Refresher = (*Service)(nil)

// NewService creates a new refresh service
func NewService(fetcher Fetcher) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		fetcher: fetcher,
		latest:  make(map[string]string),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetUpdateCallback sets the callback function for refresh results. It is
// invoked from worker goroutines.
func (s *Service) SetUpdateCallback(callback func(model.StatusSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Refresh starts a background query for remote and returns the request id.
// A newer request for the same remote supersedes this one.
func (s *Service) Refresh(remote string) string {
	id := generateRequestID()

	s.mu.Lock()
	s.latest[remote] = id
	s.inFlight++
	s.mu.Unlock()

	logging.Debug("refresh requested", zap.String("remote", remote), zap.String("request_id", id))

	s.wg.Add(1)
	go s.run(remote, id)
	return id
}

// RefreshAll starts a query for every remote
func (s *Service) RefreshAll(remotes []string) []string {
	ids := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		ids = append(ids, s.Refresh(remote))
	}
	return ids
}

// Forget drops the bookkeeping for remote so results still in flight are discarded
func (s *Service) Forget(remote string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, remote)
}

// Pending returns the number of queries still running
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Close cancels running queries and waits for their goroutines to exit
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every started query has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// run executes one request
func (s *Service) run(remote, id string) {
	defer s.wg.Done()

	snapshot := s.fetcher.About(s.ctx, remote)
	snapshot.RemoteName = remote

	s.mu.Lock()
	s.inFlight--
	current := s.latest[remote] == id
	callback := s.onUpdate
	s.mu.Unlock()

	if !current {
		logging.Debug("discarding superseded result", zap.String("remote", remote), zap.String("request_id", id))
		return
	}
	if s.ctx.Err() != nil {
		return
	}

	if snapshot.HasError() {
		logging.Warn("refresh failed", zap.String("remote", remote), zap.String("error", snapshot.Error))
	} else {
		logging.Debug("refresh finished", zap.String("remote", remote), zap.String("used", snapshot.Used))
	}

	if callback != nil {
		callback(snapshot)
	}
}

// generateRequestID generates a unique, time-ordered request ID
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
