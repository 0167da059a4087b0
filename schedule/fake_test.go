package schedule

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"microjournal/notify"
	"microjournal/trigger"
)

// fakeClient stands in for the external trigger registry in tests.
type fakeClient struct {
	mu     sync.Mutex
	nextID trigger.ID

	registered map[trigger.ID]registration
	cancelled  []trigger.ID

	failPayloads map[string]bool // payloads whose registration fails
	failCancel   bool
}

type registration struct {
	rule    trigger.Rule
	content notify.Content
	payload string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		registered:   make(map[trigger.ID]registration),
		failPayloads: make(map[string]bool),
	}
}

func (f *fakeClient) Register(_ context.Context, rule trigger.Rule, content notify.Content, payload string) (trigger.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPayloads[payload] {
		return 0, errors.New("registration refused")
	}

	f.nextID++
	f.registered[f.nextID] = registration{rule: rule, content: content, payload: payload}
	return f.nextID, nil
}

func (f *fakeClient) Cancel(_ context.Context, id trigger.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelled = append(f.cancelled, id)
	if f.failCancel {
		return errors.New("cancel refused")
	}
	delete(f.registered, id)
	return nil
}

func (f *fakeClient) payloads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.registered))
	for _, r := range f.registered {
		out = append(out, r.payload)
	}
	return out
}
