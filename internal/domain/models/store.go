package models

import "time"

// Game types created when the score board is first initialized.
const (
	GameSnake         = "SnakeGame"
	GameSpaceShooting = "SpaceShootingGame"
)

// AnalyzeSnapshot is the most recent saved analyze list and its day key.
type AnalyzeSnapshot struct {
	Data []interface{} `json:"data"`
	Date *string       `json:"date"`
}

// GameScore is one submitted score.
type GameScore struct {
	ID        string  `json:"id"`
	Mode      string  `json:"mode"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// ScoreBoard maps game type to its scores, best first.
type ScoreBoard map[string][]GameScore

// Event is a domain event published to the message bus.
type Event struct {
	Type    string      `json:"type"`
	Symbol  string      `json:"symbol,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Event types.
const (
	EventForecastComputed = "forecast.computed"
	EventRanksSaved       = "ranks.saved"
	EventScoreSaved       = "score.saved"
)
