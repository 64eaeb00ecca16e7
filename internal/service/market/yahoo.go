package market

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/internal/domain/repository"
	xhttp "FinDash/pkg/http"
	"FinDash/pkg/logger"
)

var (
	ErrNotConfigured = errors.New("market source not configured")
	ErrNoData        = errors.New("no data returned")
)

var numericCode = regexp.MustCompile(`^\d{6}$`)

// indexAliases maps dashboard index names to Yahoo tickers.
var indexAliases = map[string]string{
	"US500":  "^GSPC",
	"S&P500": "^GSPC",
	"SP500":  "^GSPC",
	"SPX":    "^GSPC",
	"KS11":   "^KS11",
	"KOSPI":  "^KS11",
	"KQ11":   "^KQ11",
	"KOSDAQ": "^KQ11",
	"IXIC":   "^IXIC",
	"NASDAQ": "^IXIC",
	"DJI":    "^DJI",
	"VIX":    "^VIX",
}

// YahooSource implements repository.PriceSource with the Yahoo Finance chart API.
type YahooSource struct {
	http    httpBase
	suffix  string
	metrics repository.Metrics
	log     *logger.Logger
}

// NewYahooSource builds a chart client. suffix is appended to six digit exchange codes.
func NewYahooSource(chartURL, suffix string, client *xhttp.Client, m repository.Metrics, l *logger.Logger) *YahooSource {
	return &YahooSource{
		http:    newHTTPBase(chartURL, client),
		suffix:  suffix,
		metrics: m,
		log:     l.With("yahoo"),
	}
}

// Ticker converts a dashboard symbol into a Yahoo ticker.
func (s *YahooSource) Ticker(symbol string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if mapped, ok := indexAliases[sym]; ok {
		return mapped
	}
	if numericCode.MatchString(sym) {
		return sym + s.suffix
	}
	return sym
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyBars returns daily bars for [from, to], oldest first.
func (s *YahooSource) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error) {
	ticker := s.Ticker(symbol)
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", strconv.FormatInt(from.Unix(), 10))
	q.Set("period2", strconv.FormatInt(to.Unix(), 10))
	q.Set("events", "history")

	var chart chartResponse
	err := s.http.getJSON(ctx, url.PathEscape(ticker), q, &chart)
	s.record(err == nil)
	if err != nil {
		s.log.Warn("chart request failed", logger.String("ticker", ticker), logger.Error(err))
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", ticker, chart.Chart.Error.Description)
	}
	return parseChart(chart)
}

func parseChart(chart chartResponse) ([]models.DailyBar, error) {
	if len(chart.Chart.Result) == 0 {
		return nil, ErrNoData
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	loc := time.FixedZone("exchange", result.Meta.GMTOffset)
	quote := result.Indicators.Quote[0]
	bars := make([]models.DailyBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == 0 {
			// null rows are holidays or halted sessions
			continue
		}
		t := time.Unix(ts, 0).In(loc)
		y, m, d := t.Date()
		bars = append(bars, models.DailyBar{
			Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  c,
			Volume: int64(at(quote.Volume, i)),
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	for i := 1; i < len(bars); i++ {
		if prev := bars[i-1].Close; prev > 0 {
			bars[i].Change = bars[i].Close/prev - 1
		}
	}
	return bars, nil
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func (s *YahooSource) record(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordUpstream("yahoo", ok)
	}
}
