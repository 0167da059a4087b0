package schedule

import (
	"context"
	"sync"

	"microjournal/trigger"
)

// Registry owns the mapping from logical role to the opaque identifier the
// trigger registry returned for that role. It holds at most one generation of
// scheduled notifications at a time and is always rebuilt as a whole, never
// patched. One instance is injected into the policy; there is no package
// state.
type Registry struct {
	mu     sync.Mutex
	active map[Role]trigger.ID
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[Role]trigger.ID)}
}

// RecordActive stores the external ID for a role, overwriting any prior
// mapping for the same role.
func (r *Registry) RecordActive(role Role, id trigger.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[role] = id
}

// CancelAll cancels every stored trigger and clears the map regardless of
// individual outcomes. It returns the IDs whose cancellation failed so the
// caller can log them; a stale trigger fires at most once more with outdated
// content and is never retried.
func (r *Registry) CancelAll(ctx context.Context, client Client) []trigger.ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failed []trigger.ID
	for _, id := range r.active {
		if err := client.Cancel(ctx, id); err != nil {
			failed = append(failed, id)
		}
	}

	r.active = make(map[Role]trigger.ID)
	return failed
}

// ActiveRoles returns the set of roles with a registered trigger.
func (r *Registry) ActiveRoles() map[Role]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	roles := make(map[Role]struct{}, len(r.active))
	for role := range r.active {
		roles[role] = struct{}{}
	}
	return roles
}

// roleOf resolves a trigger ID back to its role. Test introspection only;
// activation events are typed from the payload the trigger carries, not from
// this map.
func (r *Registry) roleOf(id trigger.ID) (Role, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for role, tid := range r.active {
		if tid == id {
			return role, true
		}
	}
	return Role{}, false
}
