package weo

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"imfdata/internal/feeds"
	"imfdata/internal/textenc"
)

// Observation is one flattened data point. Field order mirrors the canonical
// column order of the published table: dimension code and label pairs, then
// notes, the time period, the observed value, and the last-actual marker.
type Observation struct {
	UnitCode       string
	UnitLabel      string
	ConceptCode    string
	ConceptLabel   string
	RefAreaCode    string
	RefAreaLabel   string
	FreqCode       string
	FreqLabel      string
	ScaleCode      string
	ScaleLabel     string
	Notes          string
	TimePeriod     string
	Value          *float64
	LastActualDate string
}

// Table is one fully parsed release payload. Rows are immutable once the
// table is handed out; the cache returns the same table to every caller.
type Table struct {
	Release Release
	Rows    []Observation
}

// Series dimension attributes and the schema code lists carrying their
// labels. The list names are fixed per the publisher's SDMX structure
// definition.
const (
	attrUnit           = "UNIT"
	attrConcept        = "CONCEPT"
	attrRefArea        = "REF_AREA"
	attrFreq           = "FREQ"
	attrScale          = "SCALE"
	attrNotes          = "NOTES"
	attrLastActualDate = "LASTACTUALDATE"
	attrTimePeriod     = "TIME_PERIOD"
	attrObsValue       = "OBS_VALUE"
)

var dimensionLists = map[string]string{
	attrUnit:    "IMF.CL_WEO_UNIT.1.0",
	attrConcept: "IMF.CL_WEO_CONCEPT.1.0",
	attrRefArea: "IMF.CL_WEO_REF_AREA.1.0",
	attrFreq:    "IMF.CL_FREQ.1.0",
	attrScale:   "IMF.CL_WEO_SCALE.1.0",
}

// Placeholder spellings the publisher uses for absent values.
var nullMarkers = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"--":   {},
	"NULL": {},
}

// ParseArchive flattens a downloaded SDMX archive into observation rows.
// The archive must hold exactly one data entry (.xml) and one schema entry
// (.xsd); any structural deviation is reported as format drift, never
// silently skipped.
func ParseArchive(raw []byte) ([]Observation, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "open archive", "payload is not a zip archive", err)
	}

	var dataFiles, schemaFiles []*zip.File
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(file.Name)) {
		case ".xml":
			dataFiles = append(dataFiles, file)
		case ".xsd":
			schemaFiles = append(schemaFiles, file)
		}
	}
	if len(dataFiles) != 1 || len(schemaFiles) != 1 {
		return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "open archive",
			fmt.Sprintf("expected one data entry and one schema entry, found %d and %d",
				len(dataFiles), len(schemaFiles)), nil)
	}

	schemaText, err := readArchiveEntry(schemaFiles[0])
	if err != nil {
		return nil, err
	}
	codeLists, err := parseCodeLists(schemaText)
	if err != nil {
		return nil, err
	}

	dataText, err := readArchiveEntry(dataFiles[0])
	if err != nil {
		return nil, err
	}
	return parseSeriesData(dataText, codeLists)
}

func readArchiveEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "read archive entry", file.Name, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "read archive entry", file.Name, err)
	}
	return textenc.Decode(raw, "")
}

type schemaDocument struct {
	SimpleTypes []schemaSimpleType `xml:"simpleType"`
}

type schemaSimpleType struct {
	Name         string              `xml:"name,attr"`
	Enumerations []schemaEnumeration `xml:"restriction>enumeration"`
}

type schemaEnumeration struct {
	Value         string   `xml:"value,attr"`
	Documentation []string `xml:"annotation>documentation"`
}

// parseCodeLists extracts every dimension code list from the schema entry.
// Each list maps code to human-readable label.
func parseCodeLists(schemaText string) (map[string]map[string]string, error) {
	var schema schemaDocument
	if err := xml.Unmarshal([]byte(schemaText), &schema); err != nil {
		return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse schema", "schema entry is not valid xml", err)
	}

	byName := make(map[string]map[string]string, len(schema.SimpleTypes))
	for _, simpleType := range schema.SimpleTypes {
		codes := make(map[string]string, len(simpleType.Enumerations))
		for _, enum := range simpleType.Enumerations {
			label := ""
			if len(enum.Documentation) > 0 {
				label = strings.TrimSpace(enum.Documentation[0])
			}
			codes[enum.Value] = label
		}
		byName[simpleType.Name] = codes
	}

	for attr, listName := range dimensionLists {
		if _, ok := byName[listName]; !ok {
			return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse schema",
				fmt.Sprintf("schema entry is missing code list %q for %s", listName, attr), nil)
		}
	}
	return byName, nil
}

type dataDocument struct {
	DataSet dataSet `xml:"DataSet"`
}

type dataSet struct {
	Series []dataSeries `xml:"Series"`
}

type dataSeries struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Obs   []dataObs  `xml:"Obs"`
}

type dataObs struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func parseSeriesData(dataText string, codeLists map[string]map[string]string) ([]Observation, error) {
	var document dataDocument
	if err := xml.Unmarshal([]byte(dataText), &document); err != nil {
		return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse data", "data entry is not valid xml", err)
	}
	if len(document.DataSet.Series) == 0 {
		return nil, feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse data", "data entry holds no series", nil)
	}

	var rows []Observation
	for _, series := range document.DataSet.Series {
		attrs := attrMap(series.Attrs)

		unitCode, unitLabel, err := resolveDimension(attrs, attrUnit, codeLists)
		if err != nil {
			return nil, err
		}
		conceptCode, conceptLabel, err := resolveDimension(attrs, attrConcept, codeLists)
		if err != nil {
			return nil, err
		}
		refAreaCode, refAreaLabel, err := resolveDimension(attrs, attrRefArea, codeLists)
		if err != nil {
			return nil, err
		}
		freqCode, freqLabel, err := resolveDimension(attrs, attrFreq, codeLists)
		if err != nil {
			return nil, err
		}
		scaleCode, scaleLabel, err := resolveDimension(attrs, attrScale, codeLists)
		if err != nil {
			return nil, err
		}

		for _, obs := range series.Obs {
			obsAttrs := attrMap(obs.Attrs)
			rows = append(rows, Observation{
				UnitCode:       unitCode,
				UnitLabel:      unitLabel,
				ConceptCode:    conceptCode,
				ConceptLabel:   conceptLabel,
				RefAreaCode:    refAreaCode,
				RefAreaLabel:   refAreaLabel,
				FreqCode:       freqCode,
				FreqLabel:      freqLabel,
				ScaleCode:      scaleCode,
				ScaleLabel:     scaleLabel,
				Notes:          attrs[attrNotes],
				TimePeriod:     obsAttrs[attrTimePeriod],
				Value:          parseObservationValue(obsAttrs[attrObsValue]),
				LastActualDate: attrs[attrLastActualDate],
			})
		}
	}
	return rows, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		m[attr.Name.Local] = attr.Value
	}
	return m
}

func resolveDimension(attrs map[string]string, name string, codeLists map[string]map[string]string) (string, string, error) {
	code, ok := attrs[name]
	if !ok {
		return "", "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse data",
			fmt.Sprintf("series is missing dimension %s", name), nil)
	}
	label, ok := codeLists[dimensionLists[name]][code]
	if !ok {
		return "", "", feeds.Wrap(feeds.ErrUnexpectedFile, "weo", "parse data",
			fmt.Sprintf("code %q is not in code list %q", code, dimensionLists[name]), nil)
	}
	return code, label, nil
}

// parseObservationValue coerces the publisher's value spellings into a
// nullable float. Thousands separators and stray number punctuation are
// stripped; placeholder markers and anything still unparseable become nil.
// Rows are never dropped over an unparseable value.
func parseObservationValue(raw string) *float64 {
	if _, isNull := nullMarkers[raw]; isNull {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', ' ', '\'':
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimSpace(cleaned)
	if _, isNull := nullMarkers[cleaned]; isNull {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}
