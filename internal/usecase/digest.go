package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domsvc "FinDash/internal/domain/service"
	"FinDash/internal/services/features"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/util"

	"github.com/dustin/go-humanize"
)

// volWindow is the number of daily returns behind the digest volatility figure.
const volWindow = 20

// Digest builds the daily forecast summary of the watch list and sends it.
type Digest struct {
	forecaster *Forecaster
	bars       *BarLoader
	notifier   domsvc.Notifier
	symbols    []string
	term       int
	l          *applogger.Logger
	now        func() time.Time
}

func NewDigest(f *Forecaster, bars *BarLoader, n domsvc.Notifier, symbols []string, term int, l *applogger.Logger) *Digest {
	return &Digest{
		forecaster: f,
		bars:       bars,
		notifier:   n,
		symbols:    symbols,
		term:       term,
		l:          l.With("digest"),
		now:        time.Now,
	}
}

// Run computes the digest and sends it. Without a notifier the digest is only logged.
func (d *Digest) Run(ctx context.Context) error {
	if len(d.symbols) == 0 {
		d.l.Debug("digest skipped, empty watch list")
		return nil
	}
	text := d.Build(ctx)
	if !d.notifier.Enabled() {
		d.l.Info("digest", applogger.String("text", text))
		return nil
	}
	if err := d.notifier.Send(ctx, text); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	d.l.Info("digest sent", applogger.Int("symbols", len(d.symbols)))
	return nil
}

// Build renders one line per watched symbol.
func (d *Digest) Build(ctx context.Context) string {
	now := d.now()
	var b strings.Builder
	fmt.Fprintf(&b, "FinDash %s (%d weeks)\n", util.DayKey(now), d.term)

	for _, sym := range d.symbols {
		res, err := d.forecaster.Forecast(ctx, sym, d.term)
		if err != nil {
			d.l.Warn("digest forecast failed", applogger.String("symbol", sym), applogger.Error(err))
			fmt.Fprintf(&b, "%s: unavailable\n", sym)
			continue
		}

		line := fmt.Sprintf("%s: now %s, expect %s", sym, humanize.Comma(res.NowValue), humanize.CommafWithDigits(res.ExpectValue, 2))
		if res.NowValue > 0 {
			chg := (res.ExpectValue - float64(res.NowValue)) / float64(res.NowValue) * 100
			line += fmt.Sprintf(" (%+.1f%%)", chg)
		}
		line += ", month " + humanize.CommafWithDigits(res.AfterMonthExpectValue, 2)
		if vol, ok := d.volatility(ctx, sym, now); ok {
			line += fmt.Sprintf(", vol %.1f%%", vol*100)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Digest) volatility(ctx context.Context, symbol string, now time.Time) (float64, bool) {
	bars, err := d.bars.Load(ctx, symbol, util.SubtractWeeks(now, d.term), now)
	if err != nil {
		return 0, false
	}
	rets := features.LogReturns(features.ClosePoints(bars))
	if len(rets) < volWindow {
		return 0, false
	}
	return features.RealizedVolatility(rets, volWindow), true
}
