package models

// SymbolData is the body of the per-symbol endpoints.
type SymbolData struct {
	Symbol string      `json:"symbol"`
	Data   interface{} `json:"data"`
}

// DataBody wraps a plain payload.
type DataBody struct {
	Data interface{} `json:"data"`
}
