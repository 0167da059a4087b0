package schedule

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"microjournal/settings"
)

var (
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrSnoozeDisabled   = errors.New("snooze is disabled in settings")
)

// PermissionGate answers whether the host allows notifications at all.
type PermissionGate interface {
	HasPermission() bool
	RequestPermission() bool
}

// State of the coordinator. Every settings update re-enters StateScheduled
// through a full rebuild; there is no externally visible updating state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateScheduled
)

// Activated is emitted when a scheduled notification fires. The engine stays
// ignorant of what the caller does with it (navigation, logging prompts).
type Activated struct {
	Role    Role
	Payload string
}

// Coordinator is the single entry point for (re)scheduling: once at startup
// and once after every persisted settings write. Each update persists and
// rebuilds under one lock, so the apply order can never diverge from the
// persisted write order and at most one generation is ever active.
type Coordinator struct {
	store  settings.Store
	policy *Policy
	gate   PermissionGate
	log    *zap.Logger

	onActivated func(Activated)

	mu      sync.Mutex // serializes save+apply passes
	state   State
	current settings.NotificationSettings // last settings seen by Apply
}

func NewCoordinator(store settings.Store, policy *Policy, gate PermissionGate, log *zap.Logger) *Coordinator {
	return &Coordinator{store: store, policy: policy, gate: gate, log: log}
}

// OnActivated installs the callback that receives typed activation events.
func (c *Coordinator) OnActivated(f func(Activated)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onActivated = f
}

// Start checks the permission gate once, loads persisted settings, and runs
// the first scheduling pass. When permission is denied nothing is scheduled
// and the registry stays empty; the caller surfaces "notifications disabled".
func (c *Coordinator) Start(ctx context.Context) ([]Role, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateLoading

	if !c.gate.HasPermission() && !c.gate.RequestPermission() {
		c.state = StateUninitialized
		return nil, ErrPermissionDenied
	}

	s, err := c.store.Load(ctx)
	if err != nil {
		c.state = StateUninitialized
		return nil, err
	}

	failed := c.policy.Apply(ctx, s)
	c.current = s
	c.state = StateScheduled
	return failed, nil
}

// UpdateSettings persists the full replacement value and rebuilds the
// schedule. Save and rebuild happen under the same lock: concurrent updates
// queue, and whichever write lands in the store last is also the one whose
// schedule is active.
func (c *Coordinator) UpdateSettings(ctx context.Context, s settings.NotificationSettings) ([]Role, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, s); err != nil {
		return nil, err
	}

	failed := c.policy.Apply(ctx, s)
	c.current = s
	c.state = StateScheduled
	return failed, nil
}

// Snooze forwards to the policy when the active settings allow snoozing.
// Before the first successful scheduling pass no settings are active, so
// snoozes are refused.
func (c *Coordinator) Snooze(ctx context.Context, minutes int) error {
	c.mu.Lock()
	allowed := c.current.AllowSnooze
	c.mu.Unlock()

	if !allowed {
		return ErrSnoozeDisabled
	}
	return c.policy.Snooze(ctx, minutes)
}

// State reports the coordinator lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleActivation decodes a fired trigger's payload and emits the typed
// event. Unknown payloads are logged and dropped.
func (c *Coordinator) HandleActivation(payload string) {
	role, err := ParseRole(payload)
	if err != nil {
		c.log.Warn("activation with unknown payload", zap.String("payload", payload))
		return
	}

	c.mu.Lock()
	f := c.onActivated
	c.mu.Unlock()

	if f != nil {
		f(Activated{Role: role, Payload: payload})
	}
}
