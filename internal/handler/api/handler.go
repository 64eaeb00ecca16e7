package api

import (
	"context"
	"errors"

	"FinDash/internal/service/market"
	"FinDash/internal/service/ratelimit"
	"FinDash/internal/services/forecast"
	"FinDash/internal/usecase"
	xhttp "FinDash/pkg/http"
	xlogger "FinDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard endpoints. All of them take a JSON POST body.
type DashboardHandler struct {
	market     *usecase.MarketData
	forecaster *usecase.Forecaster
	ranks      *usecase.Ranks
	docs       *usecase.Documents
	scores     *usecase.Scores
	messenger  *usecase.Messenger
	rl         *ratelimit.Limiter
	logger     *xlogger.Logger
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	mkt *usecase.MarketData,
	forecaster *usecase.Forecaster,
	ranks *usecase.Ranks,
	docs *usecase.Documents,
	scores *usecase.Scores,
	messenger *usecase.Messenger,
	rl *ratelimit.Limiter,
) *DashboardHandler {
	return &DashboardHandler{
		market:     mkt,
		forecaster: forecaster,
		ranks:      ranks,
		docs:       docs,
		scores:     scores,
		messenger:  messenger,
		rl:         rl,
		logger:     logger.With("api"),
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/stock_data/", h.StockData, h.limit("stock_data"))
	e.POST("/stock_list/", h.StockList)
	e.POST("/expect_stock/", h.ExpectStock, h.limit("expect_stock"))

	e.POST("/save_finance_rank/", h.SaveFinanceRank)
	e.POST("/get_finance_rank/", h.GetFinanceRank)

	e.POST("/save_buy_history/", h.SaveBuyHistory)
	e.POST("/get_buy_history/", h.GetBuyHistory)
	e.POST("/get_today_analyze/", h.GetTodayAnalyze)
	e.POST("/get_latest_analyze/", h.GetLatestAnalyze)

	e.POST("/save_game_score/", h.SaveGameScore)
	e.POST("/get_game_scores/", h.GetGameScores)
	e.POST("/get_game_ranking/", h.GetGameRanking)

	e.POST("/send_message/", h.SendMessage)
}

// limit rejects clients that exceed the per-address budget of endpoint.
func (h *DashboardHandler) limit(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if h.rl != nil && !h.rl.Allow(c.RealIP()+":"+endpoint) {
				h.logger.Warn("rate limited",
					xlogger.String("endpoint", endpoint),
					xlogger.String("remote", c.RealIP()),
				)
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
			}
			return next(c)
		}
	}
}

// fail logs err and writes it as an application error.
func (h *DashboardHandler) fail(c echo.Context, op string, err error) error {
	appErr := toAppError(err)
	if appErr.Status >= 500 {
		h.logger.Error(op+" usecase error", xlogger.Error(err))
	} else {
		h.logger.Debug(op+" rejected", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	var statusErr *xhttp.StatusError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, usecase.ErrInvalidArgument):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, market.ErrNoData):
		return xhttp.NotFoundError("data not found").WithError(err)
	case errors.Is(err, forecast.ErrInsufficientData), errors.Is(err, forecast.ErrEmptySeries):
		return xhttp.InsufficientDataError("not enough price data to forecast").WithError(err)
	case errors.Is(err, market.ErrNotConfigured),
		errors.As(err, &statusErr),
		errors.Is(err, context.DeadlineExceeded):
		return xhttp.UpstreamError("market data source unavailable").WithError(err)
	default:
		return xhttp.InternalError("something went wrong").WithError(err)
	}
}
