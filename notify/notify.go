// Package notify delivers notification content to the user. The scheduling
// engine only ever talks to the Notifier interface; the Telegram
// implementation is the reference transport.
package notify

import "context"

// Content is the user-visible text of one notification.
type Content struct {
	Title string
	Body  string
}

type Notifier interface {
	Send(ctx context.Context, c Content) error
}

// SendTest pushes one notification immediately, bypassing the schedule.
// It exists for the user-facing "send test notification" affordance and
// carries no scheduling logic.
func SendTest(ctx context.Context, n Notifier, title, body string) error {
	return n.Send(ctx, Content{Title: title, Body: body})
}
