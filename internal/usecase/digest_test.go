package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/domain/models"
	"FinDash/pkg/logger"
)

func TestDigestSendsOneMessage(t *testing.T) {
	closes := []float64{1000, 1020, 1010, 1050, 1030, 1080}
	fx := newForecastFixture(t, fixedNow, map[string][]models.DailyBar{
		"AAA": dailyBars(fixedNow.AddDate(0, 0, -5), closes...),
	})
	n := &fakeNotifier{enabled: true}
	d := NewDigest(fx.f, fx.bars, n, []string{"AAA", "MISSING"}, 4, logger.Nop())
	d.now = func() time.Time { return fixedNow }

	require.NoError(t, d.Run(context.Background()))
	require.Len(t, n.sent, 1)

	lines := strings.Split(n.sent[0], "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "FinDash 2024-6-14 (4 weeks)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AAA: now 1,080, expect "), lines[1])
	assert.NotContains(t, lines[1], "vol", "too few returns for volatility")
	assert.Equal(t, "MISSING: unavailable", lines[2])
}

func TestDigestDisabledNotifierOnlyLogs(t *testing.T) {
	fx := newForecastFixture(t, fixedNow, map[string][]models.DailyBar{
		"AAA": dailyBars(fixedNow.AddDate(0, 0, -5), 100, 102, 101, 105, 103, 108),
	})
	n := &fakeNotifier{err: errors.New("must not be called")}
	d := NewDigest(fx.f, fx.bars, n, []string{"AAA"}, 4, logger.Nop())

	assert.NoError(t, d.Run(context.Background()))
	assert.Empty(t, n.sent)
}

func TestDigestEmptyWatchList(t *testing.T) {
	fx := newForecastFixture(t, fixedNow, nil)
	n := &fakeNotifier{enabled: true}
	d := NewDigest(fx.f, fx.bars, n, nil, 4, logger.Nop())

	assert.NoError(t, d.Run(context.Background()))
	assert.Empty(t, n.sent)
	assert.Zero(t, fx.prices.calls)
}

func TestMessengerSend(t *testing.T) {
	on := &fakeNotifier{enabled: true}
	ok, err := NewMessenger(on).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"hello"}, on.sent)

	ok, err = NewMessenger(&fakeNotifier{}).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NewMessenger(on).Send(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	failing := &fakeNotifier{enabled: true, err: errors.New("api down")}
	_, err = NewMessenger(failing).Send(context.Background(), "hello")
	assert.Error(t, err)
}
