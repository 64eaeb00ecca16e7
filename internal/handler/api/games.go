package api

import (
	models "FinDash/internal/domain/models"
	xhttp "FinDash/pkg/http"
	xlogger "FinDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *DashboardHandler) SaveGameScore(c echo.Context) error {
	req := &models.SaveScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.scores.Save(c.Request().Context(), req.GameType, req.ID, req.Mode, req.Score); err != nil {
		h.logger.Error("save_game_score failed", xlogger.String("game", req.GameType), xlogger.Error(err))
		return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: false})
	}
	return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: true})
}

func (h *DashboardHandler) GetGameScores(c echo.Context) error {
	req := &models.GameScoresRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	board, err := h.scores.Board(c.Request().Context(), req.GameType)
	if err != nil {
		return h.fail(c, "get_game_scores", err)
	}
	return xhttp.SuccessResponse(c, models.DataBody{Data: board})
}

func (h *DashboardHandler) GetGameRanking(c echo.Context) error {
	req := &models.GameRankingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	top, err := h.scores.Ranking(c.Request().Context(), req.GameType, req.Mode, req.Limit)
	if err != nil {
		return h.fail(c, "get_game_ranking", err)
	}
	return xhttp.SuccessResponse(c, models.DataBody{Data: top})
}

func (h *DashboardHandler) SendMessage(c echo.Context) error {
	req := &models.SendMessageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ok, err := h.messenger.Send(c.Request().Context(), req.Text)
	if err != nil {
		return h.fail(c, "send_message", err)
	}
	return xhttp.SuccessResponse(c, xhttp.SuccessFlag{IsSuccess: ok})
}
