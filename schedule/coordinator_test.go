package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"microjournal/settings"
)

type fakeStore struct {
	current settings.NotificationSettings
	loadErr error
	saves   int
}

func (f *fakeStore) Load(ctx context.Context) (settings.NotificationSettings, error) {
	if f.loadErr != nil {
		return settings.NotificationSettings{}, f.loadErr
	}
	return f.current, nil
}

func (f *fakeStore) Save(ctx context.Context, s settings.NotificationSettings) error {
	f.current = s
	f.saves++
	return nil
}

type fakeGate struct {
	granted bool
}

func (g *fakeGate) HasPermission() bool     { return g.granted }
func (g *fakeGate) RequestPermission() bool { return g.granted }

func newTestCoordinator(granted bool) (*Coordinator, *Registry, *fakeClient, *fakeStore) {
	client := newFakeClient()
	registry := NewRegistry()
	policy := NewPolicy(registry, client, zap.NewNop())
	store := &fakeStore{current: settings.Default()}
	coord := NewCoordinator(store, policy, &fakeGate{granted: granted}, zap.NewNop())
	return coord, registry, client, store
}

func TestCoordinatorStartSchedules(t *testing.T) {
	coord, registry, _, _ := newTestCoordinator(true)

	failed, err := coord.Start(context.Background())

	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Equal(t, StateScheduled, coord.State())
	// default settings: hourly with 22:00-08:00 quiet window plus weekly review
	assert.Len(t, registry.ActiveRoles(), 15)
}

func TestCoordinatorPermissionDenied(t *testing.T) {
	coord, registry, client, _ := newTestCoordinator(false)

	_, err := coord.Start(context.Background())

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, StateUninitialized, coord.State())
	assert.Empty(t, registry.ActiveRoles())
	assert.Empty(t, client.payloads())
}

func TestCoordinatorUpdateSettingsPersistsAndRebuilds(t *testing.T) {
	coord, registry, _, store := newTestCoordinator(true)
	_, err := coord.Start(context.Background())
	require.NoError(t, err)

	next := settings.Default().
		WithHourlyEnabled(false).
		WithMorning(true, settings.TimeOfDay{Hour: 9}).
		WithEvening(true, settings.TimeOfDay{Hour: 21})

	failed, err := coord.UpdateSettings(context.Background(), next)

	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, next, store.current)

	roles := registry.ActiveRoles()
	assert.Len(t, roles, 3)
	_, ok := roles[MorningLogRole()]
	assert.True(t, ok)
	_, ok = roles[EveningLogRole()]
	assert.True(t, ok)
	_, ok = roles[WeeklyReviewRole()]
	assert.True(t, ok)
}

func TestCoordinatorUpdateIsIdempotent(t *testing.T) {
	coord, registry, _, _ := newTestCoordinator(true)
	_, err := coord.Start(context.Background())
	require.NoError(t, err)

	s := settings.Default()
	_, err = coord.UpdateSettings(context.Background(), s)
	require.NoError(t, err)
	first := registry.ActiveRoles()

	_, err = coord.UpdateSettings(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, first, registry.ActiveRoles())
}

// blockingStore stalls its first Save until released, letting a test hold an
// update mid-persist while another one arrives.
type blockingStore struct {
	fakeStore
	entered chan struct{}
	release chan struct{}
	blocked bool
}

func (b *blockingStore) Save(ctx context.Context, s settings.NotificationSettings) error {
	if !b.blocked {
		b.blocked = true
		b.entered <- struct{}{}
		<-b.release
	}
	return b.fakeStore.Save(ctx, s)
}

func TestCoordinatorOverlappingUpdatesStayConsistent(t *testing.T) {
	client := newFakeClient()
	registry := NewRegistry()
	policy := NewPolicy(registry, client, zap.NewNop())
	store := &blockingStore{
		fakeStore: fakeStore{current: settings.Default()},
		entered:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
	coord := NewCoordinator(store, policy, &fakeGate{granted: true}, zap.NewNop())

	sA := settings.Default().
		WithHourlyEnabled(false).
		WithMorning(true, settings.TimeOfDay{Hour: 8})
	sB := settings.Default().
		WithHourlyEnabled(false).
		WithEvening(true, settings.TimeOfDay{Hour: 21})

	done := make(chan struct{}, 2)
	go func() {
		_, _ = coord.UpdateSettings(context.Background(), sA)
		done <- struct{}{}
	}()

	// first update is parked inside Save; the second queues behind it
	<-store.entered
	go func() {
		_, _ = coord.UpdateSettings(context.Background(), sB)
		done <- struct{}{}
	}()

	close(store.release)
	<-done
	<-done

	// whatever order the updates ran in, the active schedule must reflect
	// the settings the store ended up holding
	want := make(map[Role]struct{})
	for _, n := range BuildSchedule(store.current) {
		want[n.Role] = struct{}{}
	}
	assert.Equal(t, want, registry.ActiveRoles())
	assert.Equal(t, 2, store.saves)
}

func TestCoordinatorSnoozeRespectsAllowSnooze(t *testing.T) {
	coord, _, client, _ := newTestCoordinator(true)

	// no settings active before the first scheduling pass
	assert.ErrorIs(t, coord.Snooze(context.Background(), 15), ErrSnoozeDisabled)

	_, err := coord.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, coord.Snooze(context.Background(), 15))
	assert.Contains(t, client.payloads(), "snoozed")

	_, err = coord.UpdateSettings(context.Background(), settings.Default().WithSnooze(false, 15))
	require.NoError(t, err)

	assert.ErrorIs(t, coord.Snooze(context.Background(), 15), ErrSnoozeDisabled)

	count := 0
	for _, p := range client.payloads() {
		if p == "snoozed" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCoordinatorHandleActivation(t *testing.T) {
	coord, _, _, _ := newTestCoordinator(true)

	var got []Activated
	coord.OnActivated(func(a Activated) { got = append(got, a) })

	coord.HandleActivation("hourly-14")
	coord.HandleActivation("snoozed")
	coord.HandleActivation("garbage")

	require.Len(t, got, 2)
	assert.Equal(t, HourlySlot(14), got[0].Role)
	assert.Equal(t, SnoozedRole(), got[1].Role)
}
