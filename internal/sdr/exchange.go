package sdr

import (
	"context"
	"fmt"
	"slices"
	"time"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
	"imfdata/internal/textenc"
)

const exchangePath = "/external/np/fin/data/rms_sdrv.aspx"

// Basis selects which direction of the published valuation to extract.
type Basis string

const (
	// BasisSDR reports the value of one SDR in US dollars.
	BasisSDR Basis = "SDR"
	// BasisUSD reports the value of one US dollar in SDRs.
	BasisUSD Basis = "USD"
)

// Validate rejects bases other than SDR and USD.
func (b Basis) Validate() error {
	switch b {
	case BasisSDR, BasisUSD:
		return nil
	default:
		return feeds.Wrap(feeds.ErrInvalidVersion, "sdr", "validate basis",
			fmt.Sprintf("basis %q is not SDR or USD", string(b)), nil)
	}
}

// marker returns the summary-row label carrying the rate for the basis.
func (b Basis) marker() string {
	if b == BasisUSD {
		return "U.S.$1.00 = SDR"
	}
	return "SDR1 = US$"
}

// ExchangeRate is one report date's valuation on the requested basis.
type ExchangeRate struct {
	Date time.Time
	Rate *float64
}

const reportDateColumn = "Report date"

func (s *Service) fetchExchangeRates(ctx context.Context, basis Basis) ([]ExchangeRate, error) {
	payload, err := s.client.PostForm(ctx, s.baseURL+exchangePath, tsvExportForm())
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(payload.Body, payload.Charset)
	if err != nil {
		return nil, err
	}
	rates, err := parseExchangeRates(text, basis)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exchange rates fetched",
		logging.String("basis", string(basis)),
		logging.Int("rows", len(rates)))
	return rates, nil
}

// parseExchangeRates walks the block-structured export. A row with a
// populated fourth column whose first cell parses as a date opens a report
// block; the block's summary row for the requested basis carries the rate in
// its second cell. Per-currency detail rows are skipped.
func parseExchangeRates(text string, basis Basis) ([]ExchangeRate, error) {
	lines := tsvLines(text)
	if len(lines) == 0 {
		return nil, exchangeShapeError("export is empty", nil)
	}
	header := tsvFields(lines[0])
	if !slices.Contains(header, reportDateColumn) {
		return nil, exchangeShapeError("missing required column: "+reportDateColumn, nil)
	}

	marker := basis.marker()
	var (
		rates    []ExchangeRate
		current  time.Time
		haveDate bool
	)
	for _, line := range lines[1:] {
		fields := tsvFields(line)
		switch {
		case fields[0] == marker:
			if !haveDate {
				return nil, exchangeShapeError("summary row appears before any report date", nil)
			}
			rates = append(rates, ExchangeRate{Date: current, Rate: parseNumber(fieldAt(fields, 1))})
		case len(fields) >= 4 && fields[3] != "" && fields[0] != "":
			if parsed, ok := parseDate(fields[0]); ok {
				current = parsed
				haveDate = true
			}
		}
	}
	return rates, nil
}

func exchangeShapeError(message string, err error) error {
	return feeds.Wrap(feeds.ErrUnexpectedFile, "sdr", "parse exchange rates", message, err)
}
