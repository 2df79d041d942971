package model

// IndicatorSummary holds computed technical indicators for the latest bar of a symbol.
type IndicatorSummary struct {
	Symbol      string  `json:"symbol"`
	Date        string  `json:"date"`
	Label       string  `json:"label"`
	Close       float64 `json:"close"`
	MA200       float64 `json:"ma200"`
	RSI         float64 `json:"rsi"`
	RSITone     string  `json:"rsi_tone"`
	RSIColor    string  `json:"rsi_color,omitempty"`
	High52w     float64 `json:"high_52w"`
	Low52w      float64 `json:"low_52w"`
	High30d     float64 `json:"high_30d"`
	Low30d      float64 `json:"low_30d"`
	Position52w float64 `json:"position_52w"` // 0.0 ~ 1.0
}
