package trigger

import (
	"container/heap"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmhodges/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"microjournal/notify"
)

var ErrUnknownTrigger = errors.New("unknown trigger")

const defaultTick = 20 * time.Second

// Service owns the pending-trigger queue and the firing loop. All methods are
// safe for concurrent use; firing happens on the Run goroutine.
type Service struct {
	mu     sync.Mutex
	queue  *firingQueue
	nextID ID

	clk      clock.Clock
	loc      *time.Location
	tick     time.Duration
	notifier notify.Notifier
	log      *zap.Logger
	onFire   func(Activation)
}

func NewService(notifier notify.Notifier, loc *time.Location, log *zap.Logger) *Service {
	return &Service{
		queue:    newFiringQueue(),
		clk:      clock.New(),
		loc:      loc,
		tick:     defaultTick,
		notifier: notifier,
		log:      log,
	}
}

// OnFire installs a callback invoked after each delivery. The scheduling
// layer uses it to surface typed activation events; the service itself never
// looks inside the payload.
func (s *Service) OnFire(f func(Activation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFire = f
}

// Register queues a trigger and returns its identifier.
func (s *Service) Register(ctx context.Context, rule Rule, content notify.Content, payload string) (ID, error) {
	if err := rule.validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p := &pending{
		id:      s.nextID,
		at:      s.firstFiring(rule),
		rule:    rule,
		content: content,
		payload: payload,
	}
	heap.Push(s.queue, p)

	s.log.Debug("registered trigger",
		zap.Int64("id", int64(p.id)), zap.Time("at", p.at))
	return p.id, nil
}

// Cancel removes a pending trigger. Cancelling an already-fired one-shot or
// an unknown ID reports ErrUnknownTrigger.
func (s *Service) Cancel(ctx context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.remove(id) {
		return ErrUnknownTrigger
	}
	return nil
}

// Enumerate lists currently pending trigger IDs, for diagnostics only.
func (s *Service) Enumerate() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]ID, 0, s.queue.Len())
	for id := range s.queue.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Run fires due triggers until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("trigger loop stopping")
			return
		case <-ticker.C:
			s.fireDue(ctx, s.clk.Now())
		}
	}
}

// fireDue drains every trigger whose fire time has passed, delivering each
// and re-arming the repeating ones.
func (s *Service) fireDue(ctx context.Context, now time.Time) {
	for {
		s.mu.Lock()
		p := s.queue.peek()
		if p == nil || now.Before(p.at) {
			s.mu.Unlock()
			return
		}
		heap.Pop(s.queue)

		if next, ok := s.nextFiring(p); ok {
			rearmed := *p
			rearmed.at = next
			heap.Push(s.queue, &rearmed)
		}
		onFire := s.onFire
		s.mu.Unlock()

		if err := s.notifier.Send(ctx, p.content); err != nil {
			s.log.Error("failed to deliver trigger",
				zap.Int64("id", int64(p.id)), zap.Error(err))
		} else if onFire != nil {
			onFire(Activation{ID: p.id, Payload: p.payload})
		}
	}
}

// firstFiring computes the initial fire time for a rule: the next wall-clock
// occurrence for repeating rules, now+After for one-shots.
func (s *Service) firstFiring(r Rule) time.Time {
	now := s.clk.Now().In(s.loc)

	switch r.Kind {
	case Once:
		return now.Add(r.After)

	case Weekly:
		at := time.Date(now.Year(), now.Month(), now.Day(), r.Hour, r.Minute, 0, 0, s.loc)
		days := (int(r.Weekday) - int(now.Weekday()) + 7) % 7
		at = at.AddDate(0, 0, days)
		if !at.After(now) {
			at = at.AddDate(0, 0, 7)
		}
		return at

	default: // Daily
		at := time.Date(now.Year(), now.Month(), now.Day(), r.Hour, r.Minute, 0, 0, s.loc)
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at
	}
}

// nextFiring re-arms a fired trigger. One-shots expire.
func (s *Service) nextFiring(p *pending) (time.Time, bool) {
	switch p.rule.Kind {
	case Daily:
		return p.at.AddDate(0, 0, 1), true
	case Weekly:
		return p.at.AddDate(0, 0, 7), true
	default:
		return time.Time{}, false
	}
}
