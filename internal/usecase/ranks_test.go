package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/repository"
	"FinDash/pkg/cache"
	"FinDash/pkg/logger"
)

type ranksFixture struct {
	ranks     *Ranks
	analyze   *repository.AnalyzeFileStore
	cache     *cache.MemoryCache
	publisher *fakePublisher
}

func newRanksFixture(t *testing.T, now time.Time) *ranksFixture {
	t.Helper()
	dir := t.TempDir()
	fx := &ranksFixture{
		analyze:   repository.NewAnalyzeFileStore(dir, logger.Nop()),
		cache:     newMemCache(t),
		publisher: &fakePublisher{},
	}
	store := repository.NewRankXMLStore(dir, logger.Nop())
	fx.ranks = NewRanks(store, fx.analyze, fx.publisher, fx.cache, time.Minute, "KR", logger.Nop())
	fx.ranks.now = func() time.Time { return now }
	return fx
}

func rankItems() []map[string]interface{} {
	return []map[string]interface{}{
		{"code": "005930", "name": "삼성전자", "rank": 1.0},
		{"code": "000660", "name": "SK하이닉스", "rank": "31"},
	}
}

func TestRanksSaveOncePerDay(t *testing.T) {
	fx := newRanksFixture(t, fixedNow)
	ctx := context.Background()

	ok, err := fx.ranks.Save(ctx, "KOSPI", rankItems(), "")
	require.NoError(t, err)
	assert.True(t, ok)

	snapshot, err := fx.analyze.Read(ctx, fixedNow)
	require.NoError(t, err)
	assert.Len(t, snapshot, 2, "submitted list becomes today's snapshot")

	ok, err = fx.ranks.Save(ctx, "KOSPI", rankItems(), "")
	require.NoError(t, err)
	assert.False(t, ok, "second save on the same day is refused")

	rep, err := fx.ranks.Report(ctx, "KOSPI", "")
	require.NoError(t, err)
	rows := rep.PerMonth["2024.6"]
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0].Count, "marker counted once")
	assert.Equal(t, "005930", rows[1].Code)
	assert.Equal(t, "000660", rows[2].Code)
	assert.Equal(t, "0", rows[2].Count, "rank above the top cut is not counted")

	assert.Equal(t, []string{"ranks.saved"}, fx.publisher.types())
}

func TestRanksSaveRefusedWhileLocked(t *testing.T) {
	fx := newRanksFixture(t, fixedNow)
	ctx := context.Background()

	held, err := fx.cache.TryLock(ctx, cache.Key("lock", "ranks", "KR"), time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	ok, err := fx.ranks.Save(ctx, "KOSPI", rankItems(), "KR")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := fx.analyze.Exists(ctx, fixedNow)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRanksSaveValidates(t *testing.T) {
	fx := newRanksFixture(t, fixedNow)

	_, err := fx.ranks.Save(context.Background(), "", rankItems(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bad := []map[string]interface{}{{"code": "A", "rank": "first"}}
	_, err = fx.ranks.Save(context.Background(), "KOSPI", bad, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fx.ranks.Save(context.Background(), "1KOSPI", rankItems(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fx.ranks.Save(context.Background(), "KOSPI", rankItems(), "../x")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fx.ranks.Report(context.Background(), "KOSPI", "../x")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	exists, err := fx.analyze.Exists(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.False(t, exists, "rejected saves leave no snapshot")
}

func TestRanksReportEmptyRegion(t *testing.T) {
	fx := newRanksFixture(t, fixedNow)

	rep, err := fx.ranks.Report(context.Background(), "NASDAQ", "US")
	require.NoError(t, err)
	assert.Empty(t, rep.PerMonth)
	assert.Empty(t, rep.AllPeriod)
}
