package usecase

import (
	"context"
	"fmt"
	"strings"

	domsvc "FinDash/internal/domain/service"
)

// Messenger proxies free text to the notification channel.
type Messenger struct {
	notifier domsvc.Notifier
}

func NewMessenger(n domsvc.Notifier) *Messenger {
	return &Messenger{notifier: n}
}

// Send delivers text. It reports false when no channel is configured.
func (m *Messenger) Send(ctx context.Context, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	if !m.notifier.Enabled() {
		return false, nil
	}
	if err := m.notifier.Send(ctx, text); err != nil {
		return false, err
	}
	return true, nil
}
