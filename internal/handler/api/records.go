package api

import (
	models "FinDash/internal/domain/models"
	xhttp "FinDash/pkg/http"
	xlogger "FinDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *DashboardHandler) SaveFinanceRank(c echo.Context) error {
	req := &models.SaveRankRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ok, err := h.ranks.Save(c.Request().Context(), req.Stock, req.Data, req.Region)
	if err != nil {
		return h.fail(c, "save_finance_rank", err)
	}
	return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: ok})
}

func (h *DashboardHandler) GetFinanceRank(c echo.Context) error {
	req := &models.GetRankRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rep, err := h.ranks.Report(c.Request().Context(), req.Stock, req.Region)
	if err != nil {
		return h.fail(c, "get_finance_rank", err)
	}
	return xhttp.SuccessResponse(c, models.DataBody{Data: rep})
}

func (h *DashboardHandler) SaveBuyHistory(c echo.Context) error {
	req := &models.SaveHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.docs.SaveHistory(c.Request().Context(), req.Data); err != nil {
		h.logger.Error("save_buy_history failed", xlogger.Error(err))
		return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: false})
	}
	return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: true})
}

func (h *DashboardHandler) GetBuyHistory(c echo.Context) error {
	data, err := h.docs.History(c.Request().Context())
	if err != nil {
		return h.fail(c, "get_buy_history", err)
	}
	return xhttp.SuccessResponse(c, models.DataBody{Data: data})
}

func (h *DashboardHandler) GetTodayAnalyze(c echo.Context) error {
	data, err := h.docs.TodayAnalyze(c.Request().Context())
	if err != nil {
		return h.fail(c, "get_today_analyze", err)
	}
	return xhttp.SuccessResponse(c, models.DataBody{Data: data})
}

func (h *DashboardHandler) GetLatestAnalyze(c echo.Context) error {
	snap, err := h.docs.LatestAnalyze(c.Request().Context())
	if err != nil {
		return h.fail(c, "get_latest_analyze", err)
	}
	return xhttp.SuccessResponse(c, snap)
}
