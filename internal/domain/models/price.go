package models

import "time"

// PricePoint is one close price at its sequence position. Order is significant.
type PricePoint struct {
	Index int
	Value float64
}

// DailyBar is one trading day of OHLCV data.
type DailyBar struct {
	Date   time.Time `json:"-"`
	Open   float64   `json:"Open"`
	High   float64   `json:"High"`
	Low    float64   `json:"Low"`
	Close  float64   `json:"Close"`
	Volume int64     `json:"Volume"`
	Change float64   `json:"Change"`
}

// Listing is one row of an exchange listing.
type Listing struct {
	Code         string  `json:"Code"`
	Name         string  `json:"Name"`
	Market       string  `json:"Market,omitempty"`
	Close        float64 `json:"Close"`
	Changes      float64 `json:"Changes"`
	ChangesRatio float64 `json:"ChagesRatio"`
	Open         float64 `json:"Open"`
	High         float64 `json:"High"`
	Low          float64 `json:"Low"`
	Volume       int64   `json:"Volume"`
	Amount       float64 `json:"Amount"`
	Marcap       float64 `json:"Marcap"`
	Stocks       int64   `json:"Stocks"`
}
