package sdr

import (
	"context"
	"slices"
	"time"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
	"imfdata/internal/textenc"
)

const interestPath = "/external/np/fin/data/sdr_ir.aspx"

// InterestRate is one published rate with the window it applies to.
type InterestRate struct {
	EffectiveFrom time.Time
	EffectiveTo   time.Time
	Rate          *float64
}

const interestRateMarker = "SDR Interest Rate"

// Summary rows the export carries alongside the rate itself.
var interestSkipRows = []string{"Total", "Floor for SDR Interest Rate"}

// Columns required in the export header.
var interestColumns = []string{"Effective from", "Effective to"}

func (s *Service) fetchInterestRates(ctx context.Context) ([]InterestRate, error) {
	payload, err := s.client.PostForm(ctx, s.baseURL+interestPath, tsvExportForm())
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(payload.Body, payload.Charset)
	if err != nil {
		return nil, err
	}
	rates, err := parseInterestRates(text)
	if err != nil {
		return nil, err
	}
	s.logger.Info("interest rates fetched", logging.Int("rows", len(rates)))
	return rates, nil
}

// parseInterestRates pairs each rate row with the nearest preceding row
// whose first two cells both parse as dates, the effective window. Per
// currency detail rows and the Total and Floor summary rows are skipped.
func parseInterestRates(text string) ([]InterestRate, error) {
	lines := tsvLines(text)
	if len(lines) == 0 {
		return nil, interestShapeError("export is empty")
	}
	header := tsvFields(lines[0])
	for _, column := range interestColumns {
		if !slices.Contains(header, column) {
			return nil, interestShapeError("missing required column: " + column)
		}
	}

	var (
		rates    []InterestRate
		from, to time.Time
		havePair bool
	)
	for _, line := range lines[1:] {
		fields := tsvFields(line)
		if len(fields) < 2 || fields[1] == "" {
			continue
		}
		if slices.Contains(interestSkipRows, fields[0]) {
			continue
		}
		if fields[0] == interestRateMarker {
			if !havePair {
				return nil, interestShapeError("rate row appears before any effective window")
			}
			rates = append(rates, InterestRate{EffectiveFrom: from, EffectiveTo: to, Rate: parseNumber(fields[1])})
			continue
		}
		parsedFrom, okFrom := parseDate(fields[0])
		parsedTo, okTo := parseDate(fields[1])
		if okFrom && okTo {
			from, to = parsedFrom, parsedTo
			havePair = true
		}
	}
	return rates, nil
}

func interestShapeError(message string) error {
	return feeds.Wrap(feeds.ErrUnexpectedFile, "sdr", "parse interest rates", message, nil)
}
