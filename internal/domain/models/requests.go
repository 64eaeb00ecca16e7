package models

// Requests for the dashboard HTTP endpoints. Defined in domain for reuse by handlers and tests.

type StockDataRequest struct {
	Symbol   string `json:"symbol" default:"US500" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0,lte=600"`
	IsMonth  *bool  `json:"isMonth" default:"true"`
}

type StockListRequest struct {
	Symbol string `json:"symbol" default:"S&P500" validate:"required"`
}

type ExpectStockRequest struct {
	Symbol string `json:"symbol" default:"S&P500" validate:"required"`
	Term   int    `json:"term" validate:"gte=0"`
}

type SaveRankRequest struct {
	Stock  string                   `json:"stock" validate:"required"`
	Data   []map[string]interface{} `json:"data"`
	Region string                   `json:"region"`
}

type GetRankRequest struct {
	Stock  string `json:"stock" validate:"required"`
	Region string `json:"region"`
}

type SaveHistoryRequest struct {
	Data map[string]interface{} `json:"data"`
}

type SaveScoreRequest struct {
	GameType string  `json:"gameType" validate:"required"`
	ID       string  `json:"id" validate:"required"`
	Mode     string  `json:"mode"`
	Score    float64 `json:"score" validate:"gte=0"`
}

type GameScoresRequest struct {
	GameType string `json:"gameType"`
}

type GameRankingRequest struct {
	GameType string `json:"gameType" validate:"required"`
	Mode     string `json:"mode"`
	Limit    int    `json:"limit" default:"10" validate:"gte=1,lte=100"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4096"`
}
