package main

import (
	"strings"

	"imfdata/internal/weo"
)

var (
	weoHeaders = []string{"Concept", "Reference area", "Unit", "Scale", "Time", "Value"}
	weoAligns  = []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
)

func buildObservationRows(rows []weo.Observation) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.ConceptCode,
			row.RefAreaLabel,
			row.UnitLabel,
			row.ScaleLabel,
			row.TimePeriod,
			formatValue(row.Value),
		})
	}
	return out
}

func filterObservations(rows []weo.Observation, concept, area string) []weo.Observation {
	concept = strings.TrimSpace(concept)
	area = strings.TrimSpace(area)
	if concept == "" && area == "" {
		return rows
	}
	filtered := make([]weo.Observation, 0, len(rows))
	for _, row := range rows {
		if concept != "" && !strings.EqualFold(row.ConceptCode, concept) {
			continue
		}
		if area != "" && !strings.EqualFold(row.RefAreaCode, area) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// observationJSON mirrors the canonical column order of the flattened
// dataset.
type observationJSON struct {
	UnitCode       string   `json:"unit_code"`
	UnitLabel      string   `json:"unit_label"`
	ConceptCode    string   `json:"concept_code"`
	ConceptLabel   string   `json:"concept_label"`
	RefAreaCode    string   `json:"ref_area_code"`
	RefAreaLabel   string   `json:"ref_area_label"`
	FreqCode       string   `json:"freq_code"`
	FreqLabel      string   `json:"freq_label"`
	ScaleCode      string   `json:"scale_code"`
	ScaleLabel     string   `json:"scale_label"`
	Notes          string   `json:"notes,omitempty"`
	TimePeriod     string   `json:"time_period"`
	Value          *float64 `json:"value"`
	LastActualDate string   `json:"last_actual_date,omitempty"`
}

type weoFetchPayload struct {
	EffectiveVersion string            `json:"effective_version"`
	RowCount         int               `json:"row_count"`
	Rows             []observationJSON `json:"rows"`
}

func buildWEOFetchPayload(release weo.Release, rows []weo.Observation) weoFetchPayload {
	payload := weoFetchPayload{
		EffectiveVersion: release.String(),
		RowCount:         len(rows),
		Rows:             make([]observationJSON, 0, len(rows)),
	}
	for _, row := range rows {
		payload.Rows = append(payload.Rows, observationJSON{
			UnitCode:       row.UnitCode,
			UnitLabel:      row.UnitLabel,
			ConceptCode:    row.ConceptCode,
			ConceptLabel:   row.ConceptLabel,
			RefAreaCode:    row.RefAreaCode,
			RefAreaLabel:   row.RefAreaLabel,
			FreqCode:       row.FreqCode,
			FreqLabel:      row.FreqLabel,
			ScaleCode:      row.ScaleCode,
			ScaleLabel:     row.ScaleLabel,
			Notes:          row.Notes,
			TimePeriod:     row.TimePeriod,
			Value:          row.Value,
			LastActualDate: row.LastActualDate,
		})
	}
	return payload
}
