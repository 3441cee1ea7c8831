package refresh

import (
	"sync"
	"time"
)

// Scheduler calls tick on a fixed interval until stopped
type Scheduler struct {
	tick func()

	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a stopped scheduler
func NewScheduler(tick func()) *Scheduler {
	return &Scheduler{tick: tick}
}

// Start begins ticking every interval. A non-positive interval leaves the
// scheduler stopped. Calling Start again replaces the running loop.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.interval = interval
	if interval <= 0 {
		return
	}

	stop := make(chan struct{})
	s.stop = stop
	s.wg.Add(1)
	go s.loop(interval, stop)
}

// SetInterval restarts the loop with a new interval; 0 disables it
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.Start(interval)
}

// Interval returns the active interval, 0 when stopped
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return 0
	}
	return s.interval
}

// Stop ends the loop. It is safe to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Wait blocks until the loop goroutine has exited
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) loop(interval time.Duration, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}
