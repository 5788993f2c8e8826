// Package services holds the front-desk engines: the queue, inventory,
// alert and activity services, plus the dashboard snapshot used by the push
// channel. Every mutation records an activity log entry where one is due and
// publishes a push message.
package services

import (
	"wenlock-health-server/internal/realtime"
)

// Notifier delivers push messages to connected displays. Publish must not
// block and never reports failure.
type Notifier interface {
	Publish(p realtime.Payload)
}

// NopNotifier discards every message
type NopNotifier struct{}

func (NopNotifier) Publish(realtime.Payload) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return NopNotifier{}
	}
	return n
}
