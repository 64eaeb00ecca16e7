package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"FinDash/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestSend(t *testing.T) {
	api := &fakeAPI{}
	n := newNotifier(api, 42, logger.Nop())

	require.NoError(t, n.Send(context.Background(), "hello"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, "hello", api.sent[0].Text)
}

func TestSendTruncatesLongText(t *testing.T) {
	api := &fakeAPI{}
	n := newNotifier(api, 1, logger.Nop())

	require.NoError(t, n.Send(context.Background(), strings.Repeat("가", maxMessageLen+10)))
	assert.Len(t, []rune(api.sent[0].Text), maxMessageLen)
}

func TestSendWrapsAPIError(t *testing.T) {
	boom := errors.New("forbidden")
	n := newNotifier(&fakeAPI{err: boom}, 1, logger.Nop())
	assert.ErrorIs(t, n.Send(context.Background(), "x"), boom)
}

func TestDisabled(t *testing.T) {
	n := Disabled()
	assert.False(t, n.Enabled())
	assert.ErrorIs(t, n.Send(context.Background(), "x"), ErrDisabled)

	_, err := New(Config{}, logger.Nop())
	assert.Error(t, err)
}
