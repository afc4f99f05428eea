// Package notify pushes marketplace events to ops channels (Slack,
// Discord). Delivery is best-effort: failures are logged, never
// surfaced to the request path.
package notify

import (
	"context"
	"fmt"
)

// Event is a marketplace happening worth telling the ops channel about.
type Event struct {
	Kind   string // "user.signup", "order.published", "collaboration.started"
	Title  string
	Detail string
}

// Notifier delivers events to one destination.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// UserSignedUp builds the signup event.
func UserSignedUp(email string) Event {
	return Event{
		Kind:   "user.signup",
		Title:  "New user signed up",
		Detail: email,
	}
}

// OrderPublished builds the order-creation event.
func OrderPublished(title, ownerEmail string) Event {
	return Event{
		Kind:   "order.published",
		Title:  fmt.Sprintf("Order published: %s", title),
		Detail: fmt.Sprintf("by %s", ownerEmail),
	}
}

// CollaborationStarted builds the acceptance event.
func CollaborationStarted(orderTitle, senderEmail, getterEmail string) Event {
	return Event{
		Kind:   "collaboration.started",
		Title:  fmt.Sprintf("Collaboration started: %s", orderTitle),
		Detail: fmt.Sprintf("%s accepted %s", getterEmail, senderEmail),
	}
}

// Multi fans an event out to several notifiers.
type Multi []Notifier

// Notify delivers the event to every backend.
func (m Multi) Notify(ctx context.Context, ev Event) {
	for _, n := range m {
		n.Notify(ctx, ev)
	}
}

// Nop is a Notifier that discards everything, used when no backend is
// configured.
type Nop struct{}

// Notify discards the event.
func (Nop) Notify(context.Context, Event) {}
