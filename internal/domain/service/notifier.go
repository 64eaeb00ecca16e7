package service

import "context"

// Notifier delivers a text message to the configured channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
	Enabled() bool
}
