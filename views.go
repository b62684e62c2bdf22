package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Amounts arrive in raw won and are displayed in 억 (hundred million won).
const amountUnitDivisor = 100_000_000

// The cumulative buy list on the analysis page shows at most this many
// rows; the underlying model keeps everything the service sent.
const analysisBuyDisplayLimit = 50

// ChangeColor is the rendering hint for a percent-change cell.
type ChangeColor string

const (
	ColorUp      ChangeColor = "up"
	ColorDown    ChangeColor = "down"
	ColorNeutral ChangeColor = "neutral"
)

// StockRow is one render-ready table row.
type StockRow struct {
	Rank   int         `json:"rank"`
	Ticker string      `json:"ticker"`
	Name   string      `json:"name"`
	Amount string      `json:"amount"`
	Price  string      `json:"price,omitempty"`
	Change string      `json:"change"`
	Color  ChangeColor `json:"color"`
}

// DailyTable is the rendered home page.
type DailyTable struct {
	Date string     `json:"date,omitempty"`
	Buy  []StockRow `json:"buy"`
	Sell []StockRow `json:"sell"`
}

// PatternTable wraps a pattern list. Placeholder marks the "no matching
// stocks" case, which renders as a single row spanning all columns and is
// distinct from both the loading and the error state.
type PatternTable struct {
	Rows        []StockRow `json:"rows"`
	Placeholder bool       `json:"placeholder"`
}

// AnalysisTables is the rendered analysis page.
type AnalysisTables struct {
	StartDate   string       `json:"startDate,omitempty"`
	EndDate     string       `json:"endDate,omitempty"`
	Buy         []StockRow   `json:"buy"`
	Sell        []StockRow   `json:"sell"`
	Consecutive PatternTable `json:"consecutive"`
	NewInflow   PatternTable `json:"newInflow"`
}

// FormatAmount renders a raw won amount in 억 with thousands separators
// and at most one decimal place.
func FormatAmount(raw int64) string {
	amount := float64(raw) / amountUnitDivisor
	amount = math.Round(amount*10) / 10
	return humanize.CommafWithDigits(amount, 1) + " 억"
}

// FormatChange renders a percent change, or a dash when the service did
// not compute one.
func FormatChange(pct *float64) string {
	if pct == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", *pct)
}

// ChangeColorFor maps a percent change to its color: strictly positive is
// up, strictly negative is down, zero or absent is neutral.
func ChangeColorFor(pct *float64) ChangeColor {
	switch {
	case pct == nil:
		return ColorNeutral
	case *pct > 0:
		return ColorUp
	case *pct < 0:
		return ColorDown
	default:
		return ColorNeutral
	}
}

// BuildDailyTable renders a daily view model. Rows keep the order the
// service returned; nothing is re-sorted client-side.
func BuildDailyTable(model *DailyViewModel) DailyTable {
	return DailyTable{
		Date: model.Date,
		Buy:  buildRows(model.Buy),
		Sell: buildRows(model.Sell),
	}
}

// BuildAnalysisTables renders a merged analysis view model. The cumulative
// buy list is truncated for display only.
func BuildAnalysisTables(model *AnalysisViewModel) AnalysisTables {
	buy := model.Buy
	if len(buy) > analysisBuyDisplayLimit {
		buy = buy[:analysisBuyDisplayLimit]
	}

	return AnalysisTables{
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		Buy:         buildRows(buy),
		Sell:        buildRows(model.Sell),
		Consecutive: buildPatternTable(model.Consecutive),
		NewInflow:   buildPatternTable(model.NewInflow),
	}
}

func buildPatternTable(stocks []RankedStock) PatternTable {
	if len(stocks) == 0 {
		return PatternTable{Rows: []StockRow{}, Placeholder: true}
	}
	return PatternTable{Rows: buildRows(stocks)}
}

func buildRows(stocks []RankedStock) []StockRow {
	rows := make([]StockRow, 0, len(stocks))
	for _, stock := range stocks {
		row := StockRow{
			Rank:   stock.Rank,
			Ticker: stock.Ticker,
			Name:   stock.Name,
			Amount: FormatAmount(stock.NetBuyAmount),
			Change: FormatChange(stock.PercentChange),
			Color:  ChangeColorFor(stock.PercentChange),
		}
		if stock.ClosePrice > 0 {
			row.Price = humanize.Comma(stock.ClosePrice)
		}
		rows = append(rows, row)
	}
	return rows
}
