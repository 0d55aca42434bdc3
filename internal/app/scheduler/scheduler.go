package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

// CollectFunc settles a user's matured activity and returns the player-facing
// completion message.
type CollectFunc func(ctx context.Context, userID string) (string, error)

const collectTimeout = 30 * time.Second

// Scheduler arms one completion timer per user and fires the collect exactly
// once per armed activity. Arming a user replaces their existing timer;
// cancellation takes effect before any payout side effect begins.
type Scheduler struct {
	collect  CollectFunc
	notifier ports.Notifier
	log      *zap.Logger
	grace    time.Duration

	mu      sync.Mutex
	pending map[string]*pendingTimer
	closed  bool
	wg      sync.WaitGroup
}

type pendingTimer struct {
	timer     *time.Timer
	target    string
	cancelled bool
}

// New builds a scheduler. The grace delay is added on top of each activity's
// end time so the payout lands after the activity is unambiguously due.
func New(collect CollectFunc, notifier ports.Notifier, log *zap.Logger, grace time.Duration) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		collect:  collect,
		notifier: notifier,
		log:      log,
		grace:    grace,
		pending:  map[string]*pendingTimer{},
	}
}

// Arm schedules a completion firing at endAt plus the grace delay, replacing
// any timer already armed for the user.
func (s *Scheduler) Arm(userID string, endAt time.Time, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelLocked(userID)

	p := &pendingTimer{target: target}
	s.wg.Add(1)
	p.timer = time.AfterFunc(time.Until(endAt)+s.grace, func() {
		s.fire(userID, p)
	})
	s.pending[userID] = p
	s.log.Debug("completion timer armed",
		zap.String("user_id", userID),
		zap.Time("end_at", endAt))
}

// Cancel drops the user's pending timer if one exists. A timer that has
// already started firing sees the cancelled flag before it pays out.
func (s *Scheduler) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(userID)
}

func (s *Scheduler) cancelLocked(userID string) {
	p, ok := s.pending[userID]
	if !ok {
		return
	}
	p.cancelled = true
	if p.timer.Stop() {
		s.wg.Done()
	}
	delete(s.pending, userID)
}

// Shutdown cancels every armed timer and waits for in-flight firings to
// finish so no payout is abandoned halfway.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.closed = true
	for userID := range s.pending {
		s.cancelLocked(userID)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) fire(userID string, p *pendingTimer) {
	defer s.wg.Done()

	s.mu.Lock()
	if p.cancelled {
		s.mu.Unlock()
		return
	}
	if s.pending[userID] == p {
		delete(s.pending, userID)
	}
	target := p.target
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	message, err := s.collect(ctx, userID)
	if err != nil {
		// A manual poll beat the timer to the payout. Nothing to do.
		if errors.Is(err, cultivation.ErrNoActivity) || errors.Is(err, cultivation.ErrNotYetDue) {
			s.log.Debug("completion already handled",
				zap.String("user_id", userID),
				zap.Error(err))
			return
		}
		s.log.Error("scheduled collect failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}

	// Payout is applied; a notification failure is logged and never rolled
	// back.
	if s.notifier != nil && message != "" {
		if err := s.notifier.Notify(ctx, target, message); err != nil {
			s.log.Warn("completion notification failed",
				zap.String("user_id", userID),
				zap.String("target", target),
				zap.Error(err))
		}
	}
}
