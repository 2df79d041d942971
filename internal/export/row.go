package export

import "IndexIndicator/internal/model"

// Row is the flat record written by every Saver.
type Row struct {
	Symbol string  `json:"symbol" parquet:"symbol"`
	Date   string  `json:"date" parquet:"date"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume int64   `json:"volume" parquet:"volume"`
}

// Rows flattens daily records.
func Rows(daily []model.DailyRecord) []Row {
	rows := make([]Row, len(daily))
	for i, d := range daily {
		rows[i] = Row{
			Symbol: d.Symbol,
			Date:   d.Date,
			Open:   d.Open.InexactFloat64(),
			High:   d.High.InexactFloat64(),
			Low:    d.Low.InexactFloat64(),
			Close:  d.Close.InexactFloat64(),
			Volume: d.Volume,
		}
	}
	return rows
}
