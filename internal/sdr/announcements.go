package sdr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"imfdata/internal/feeds"
	"imfdata/internal/htmlx"
	"imfdata/internal/logging"
	"imfdata/internal/textenc"
)

const (
	latestListingPath = "/external/np/fin/tad/extsdr1.aspx"
	holdingsPath      = "/external/np/fin/tad/extsdr2.aspx"
)

// Indicator names carried on holdings rows.
const (
	IndicatorHoldings    = "holdings"
	IndicatorAllocations = "allocations"
)

// Holding is one long-form row: an entity paired with either its SDR
// holdings or its SDR allocations for the publication month.
type Holding struct {
	Entity    string
	Indicator string
	Value     *float64
	Date      time.Time
}

// Preamble lines before the data rows in the TSV export: title, coverage
// note, unit note, column headings.
const holdingsMetadataLines = 4

// scrapeLatestMonth reads the publication date off the listing page. The
// date sits in the first cell of the second row of the fifth table.
func (s *Service) scrapeLatestMonth(ctx context.Context) (Month, error) {
	payload, err := s.client.Get(ctx, s.baseURL+latestListingPath)
	if err != nil {
		return Month{}, err
	}
	text, err := textenc.Decode(payload.Body, payload.Charset)
	if err != nil {
		return Month{}, err
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return Month{}, listingShapeError("listing page is not parseable html", err)
	}

	tables := htmlx.Tables(doc)
	if len(tables) < 5 {
		return Month{}, listingShapeError(fmt.Sprintf("found %d tables, need at least 5", len(tables)), nil)
	}
	rows := htmlx.Rows(tables[4])
	if len(rows) < 2 {
		return Month{}, listingShapeError(fmt.Sprintf("date table has %d rows, need at least 2", len(rows)), nil)
	}
	cells := htmlx.Cells(rows[1])
	if len(cells) == 0 {
		return Month{}, listingShapeError("date row has no cells", nil)
	}

	raw := htmlx.Text(cells[0])
	parsed, ok := parseDate(raw)
	if !ok {
		return Month{}, listingShapeError(fmt.Sprintf("first cell %q is not a date", raw), nil)
	}

	month := Month{Year: parsed.Year(), Month: parsed.Month()}
	s.logger.Debug("latest holdings month discovered", logging.String("month", month.String()))
	return month, nil
}

func listingShapeError(message string, err error) error {
	return feeds.Wrap(feeds.ErrUnexpectedFile, "sdr", "scrape latest month", message, err)
}

func (s *Service) fetchHoldings(ctx context.Context, month Month) ([]Holding, error) {
	query := url.Values{
		"date1key": []string{fmt.Sprintf("%d-%d-%d", month.Year, int(month.Month), month.LastDay())},
		"tsvflag":  []string{"Y"},
	}
	payload, err := s.client.Get(ctx, s.baseURL+holdingsPath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(payload.Body, payload.Charset)
	if err != nil {
		return nil, err
	}
	rows, err := parseHoldings(text, month)
	if err != nil {
		return nil, err
	}
	s.logger.Info("holdings fetched",
		logging.String("month", month.String()),
		logging.Int("rows", len(rows)))
	return rows, nil
}

// parseHoldings flattens the export into long form, all holdings rows first
// and then all allocations rows, preserving the upstream entity order in
// each half. The endpoint answers requests for unpublished months with an
// HTML placeholder instead of a TSV body.
func parseHoldings(text string, month Month) ([]Holding, error) {
	if looksLikeHTML(text) {
		return nil, holdingsUnavailable(month)
	}
	lines := tsvLines(text)
	if len(lines) <= holdingsMetadataLines {
		return nil, holdingsUnavailable(month)
	}

	type record struct {
		entity      string
		holdings    *float64
		allocations *float64
	}
	data := lines[holdingsMetadataLines:]
	records := make([]record, 0, len(data))
	sawColumns := false
	for _, line := range data {
		fields := tsvFields(line)
		if len(fields) >= 3 {
			sawColumns = true
		}
		records = append(records, record{
			entity:      fieldAt(fields, 0),
			holdings:    coerceNumber(fieldAt(fields, 1)),
			allocations: coerceNumber(fieldAt(fields, 2)),
		})
	}
	if !sawColumns {
		return nil, holdingsUnavailable(month)
	}

	date := month.Date()
	rows := make([]Holding, 0, len(records)*2)
	for _, rec := range records {
		rows = append(rows, Holding{Entity: rec.entity, Indicator: IndicatorHoldings, Value: rec.holdings, Date: date})
	}
	for _, rec := range records {
		rows = append(rows, Holding{Entity: rec.entity, Indicator: IndicatorAllocations, Value: rec.allocations, Date: date})
	}
	return rows, nil
}

func holdingsUnavailable(month Month) error {
	return feeds.Wrap(feeds.ErrNoData, "sdr", "fetch holdings",
		fmt.Sprintf("data not available for %s", month), nil)
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}
