package weo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"imfdata/internal/feeds"
	"imfdata/internal/htmlx"
	"imfdata/internal/logging"
	"imfdata/internal/textenc"
	"imfdata/internal/transport"
)

const (
	defaultBaseURL = "https://www.imf.org"
	// Visible text of the archive download anchor on the database page.
	sdmxLinkText = "SDMX Data"
)

// Getter is the transport surface the feed consumes.
type Getter interface {
	Get(ctx context.Context, url string) (*transport.Payload, error)
}

// Fetcher downloads and parses the payload archive for one release. It
// reports a missing database page or download link as not-published and
// leaves transport faults untouched.
type Fetcher struct {
	client  Getter
	baseURL string
	logger  *slog.Logger
}

// NewFetcher constructs a fetcher against the publisher site. An empty
// baseURL selects the production site.
func NewFetcher(client Getter, baseURL string, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.NewComponentLogger(logger, "weo"),
	}
}

// Fetch downloads the archive for release and flattens it into rows.
func (f *Fetcher) Fetch(ctx context.Context, release Release) ([]Observation, error) {
	if err := release.Validate(); err != nil {
		return nil, err
	}

	pageURL := f.pageURL(release)
	page, err := f.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	archiveURL, err := f.archiveURL(page, release)
	if err != nil {
		return nil, err
	}

	logging.WithContext(ctx, f.logger).Debug("downloading release archive",
		logging.String(logging.FieldRelease, release.String()),
		logging.String(logging.FieldURL, archiveURL))

	archive, err := f.client.Get(ctx, archiveURL)
	if err != nil {
		return nil, err
	}

	rows, err := ParseArchive(archive.Body)
	if err != nil {
		return nil, err
	}

	logging.WithContext(ctx, f.logger).Debug("release archive parsed",
		logging.String(logging.FieldRelease, release.String()),
		logging.Int("rows", len(rows)))
	return rows, nil
}

// pageURL templates the address of the release's database page.
func (f *Fetcher) pageURL(release Release) string {
	return fmt.Sprintf("%s/en/Publications/WEO/weo-database/%d/%s/download-entire-database",
		f.baseURL, release.Year, release.Period)
}

// archiveURL locates the archive download link on the database page. The
// page publishing without the link yet is the publisher's way of saying the
// release is not out.
func (f *Fetcher) archiveURL(page *transport.Payload, release Release) (string, error) {
	pageText, err := textenc.Decode(page.Body, page.Charset)
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(pageText))
	if err != nil {
		return "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse database page", "page is not parseable html", err)
	}
	href, ok := htmlx.FindAnchor(doc, sdmxLinkText)
	if !ok {
		return "", feeds.Wrap(feeds.ErrNoData, "weo", "locate download link",
			fmt.Sprintf("no %q link on the database page for %s", sdmxLinkText, release), nil)
	}
	resolved, err := resolveLink(page.FinalURL, href)
	if err != nil {
		return "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "locate download link",
			fmt.Sprintf("unresolvable link %q", href), err)
	}
	return resolved, nil
}

func resolveLink(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
