package api

import (
	models "FinDash/internal/domain/models"
	xhttp "FinDash/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *DashboardHandler) StockData(c echo.Context) error {
	req := &models.StockDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data, err := h.market.StockData(c.Request().Context(), req.Symbol, req.Duration, *req.IsMonth)
	if err != nil {
		return h.fail(c, "stock_data", err)
	}
	return xhttp.SuccessResponse(c, models.SymbolData{Symbol: req.Symbol, Data: data})
}

func (h *DashboardHandler) StockList(c echo.Context) error {
	req := &models.StockListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.market.StockList(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.fail(c, "stock_list", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, models.SymbolData{Symbol: req.Symbol, Data: rows})
}

func (h *DashboardHandler) ExpectStock(c echo.Context) error {
	req := &models.ExpectStockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecaster.Forecast(c.Request().Context(), req.Symbol, req.Term)
	if err != nil {
		return h.fail(c, "expect_stock", err)
	}
	return xhttp.SuccessResponse(c, models.SymbolData{Symbol: req.Symbol, Data: res})
}
