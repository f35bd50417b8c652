package main

import (
	"time"

	"imfdata/internal/sdr"
)

const feedDateLayout = "2006-01-02"

var (
	holdingsHeaders = []string{"Entity", "Indicator", "Value", "As of"}
	holdingsAligns  = []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}

	exchangeAligns = []columnAlignment{alignLeft, alignRight}

	interestHeaders = []string{"Effective from", "Effective to", "Rate"}
	interestAligns  = []columnAlignment{alignLeft, alignLeft, alignRight}
)

func exchangeHeaders(basis sdr.Basis) []string {
	if basis == sdr.BasisUSD {
		return []string{"Report date", "SDR per US$"}
	}
	return []string{"Report date", "US$ per SDR"}
}

func buildHoldingRows(rows []sdr.Holding) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.Entity,
			row.Indicator,
			formatValue(row.Value),
			formatFeedDate(row.Date),
		})
	}
	return out
}

func buildExchangeRows(rates []sdr.ExchangeRate) [][]string {
	out := make([][]string, 0, len(rates))
	for _, rate := range rates {
		out = append(out, []string{formatFeedDate(rate.Date), formatValue(rate.Rate)})
	}
	return out
}

func buildInterestRows(rates []sdr.InterestRate) [][]string {
	out := make([][]string, 0, len(rates))
	for _, rate := range rates {
		out = append(out, []string{
			formatFeedDate(rate.EffectiveFrom),
			formatFeedDate(rate.EffectiveTo),
			formatValue(rate.Rate),
		})
	}
	return out
}

func formatFeedDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(feedDateLayout)
}

type holdingJSON struct {
	Entity    string   `json:"entity"`
	Indicator string   `json:"indicator"`
	Value     *float64 `json:"value"`
	Date      string   `json:"date"`
}

func buildHoldingsPayload(rows []sdr.Holding) map[string]any {
	items := make([]holdingJSON, 0, len(rows))
	for _, row := range rows {
		items = append(items, holdingJSON{
			Entity:    row.Entity,
			Indicator: row.Indicator,
			Value:     row.Value,
			Date:      formatFeedDate(row.Date),
		})
	}
	return map[string]any{"rows": items}
}

type exchangeRateJSON struct {
	Date string   `json:"date"`
	Rate *float64 `json:"rate"`
}

func buildExchangePayload(basis sdr.Basis, rates []sdr.ExchangeRate) map[string]any {
	items := make([]exchangeRateJSON, 0, len(rates))
	for _, rate := range rates {
		items = append(items, exchangeRateJSON{Date: formatFeedDate(rate.Date), Rate: rate.Rate})
	}
	return map[string]any{"basis": string(basis), "rows": items}
}

type interestRateJSON struct {
	EffectiveFrom string   `json:"effective_from"`
	EffectiveTo   string   `json:"effective_to"`
	Rate          *float64 `json:"rate"`
}

func buildInterestPayload(rates []sdr.InterestRate) map[string]any {
	items := make([]interestRateJSON, 0, len(rates))
	for _, rate := range rates {
		items = append(items, interestRateJSON{
			EffectiveFrom: formatFeedDate(rate.EffectiveFrom),
			EffectiveTo:   formatFeedDate(rate.EffectiveTo),
			Rate:          rate.Rate,
		})
	}
	return map[string]any{"rows": items}
}
