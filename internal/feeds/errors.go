package feeds

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidVersion marks caller-supplied request parameters, release
	// identifiers above all, that fail validation before any network
	// activity takes place.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrNoData marks a publication that does not exist upstream. For
	// unpinned requests the resolver may recover from it by rolling back.
	ErrNoData = errors.New("no data")
	// ErrUnexpectedFile marks payloads whose structure no longer matches the
	// publisher's format. It signals format drift, never a retryable fault.
	ErrUnexpectedFile = errors.New("unexpected file")
	// ErrConnection marks transport failures: unreachable host, timeouts,
	// and non-success statuses other than the not-published cases.
	ErrConnection = errors.New("connection error")
)

// Wrap builds an error message that includes feed context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, feed, operation, message string, err error) error {
	detail := buildDetail(feed, operation, message)
	if marker == nil {
		marker = ErrConnection
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether the resolver may respond to the error by
// rolling the requested release back. Only a missing publication qualifies;
// transport faults and format drift always surface unchanged.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNoData)
}

func buildDetail(feed, operation, message string) string {
	parts := make([]string, 0, 3)
	if feed = strings.TrimSpace(feed); feed != "" {
		parts = append(parts, feed)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "feed failure"
	}
	return strings.Join(parts, ": ")
}
