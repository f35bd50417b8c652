package sdr

import (
	"strconv"
	"strings"
	"time"
)

// Date spellings seen across the exports: the listing page and the rate
// exports use long month names, older exports use ISO or slashed forms.
var dateLayouts = []string{"January 2, 2006", "2006-01-02", "1/2/2006"}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// tsvLines splits a decoded export into lines, dropping blank lines and
// trailing carriage returns.
func tsvLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func tsvFields(line string) []string {
	fields := strings.Split(line, "\t")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}

func fieldAt(fields []string, index int) string {
	if index < len(fields) {
		return fields[index]
	}
	return ""
}

// parseNumber converts a cell to a float, nil when the cell does not hold a
// plain number.
func parseNumber(raw string) *float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}

// coerceNumber strips everything except digits and decimal points before
// parsing, so grouped amounts like "1,234,567.89" survive. Cells with
// nothing numeric left become nil.
func coerceNumber(raw string) *float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return parseNumber(b.String())
}
