package paginator

import (
	"context"
	"sync"
)

// subscription queues the interactions made on one paginator message for
// as long as the paginator runs. Platform listeners push without blocking
// so event dispatch never waits on the paginator loop.
type subscription struct {
	mu      sync.Mutex
	pending []Interaction
	closed  bool
	ready   chan struct{}

	// stop detaches the platform listener. It is called once, outside mu.
	stop func()
}

func newSubscription() *subscription {
	return &subscription{
		ready: make(chan struct{}, 1),
	}
}

// push queues interaction and reports false if the subscription is closed.
func (s *subscription) push(interaction Interaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.pending = append(s.pending, interaction)
	select {
	case s.ready <- struct{}{}:
	default:
	}
	return true
}

// next returns the oldest queued interaction, waiting for one until ctx is
// done, in which case ctx.Err() is returned.
func (s *subscription) next(ctx context.Context) (Interaction, error) {
	for {
		s.mu.Lock()
		if len(s.pending) > 0 {
			interaction := s.pending[0]
			s.pending = s.pending[1:]
			s.mu.Unlock()
			return interaction, nil
		}
		s.mu.Unlock()

		select {
		case <-s.ready:
		case <-ctx.Done():
			return Interaction{}, ctx.Err()
		}
	}
}

// close detaches the listener and returns the interactions nobody read.
// Later calls return nil.
func (s *subscription) close() []Interaction {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	pending := s.pending
	s.pending = nil
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	return pending
}
