package testsupport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// SDMXObs is one observation inside a test series.
type SDMXObs struct {
	TimePeriod string
	Value      string
}

// SDMXSeries is one series element inside a test archive. Dimension fields
// left empty are omitted from the generated markup, which lets tests build
// structurally deficient payloads.
type SDMXSeries struct {
	Unit           string
	Concept        string
	RefArea        string
	Freq           string
	Scale          string
	Notes          string
	LastActualDate string
	Obs            []SDMXObs
}

// SDMXArchive assembles an in-memory publisher archive: one schema entry
// carrying the dimension code lists and one data entry carrying the series.
type SDMXArchive struct {
	CodeLists map[string]map[string]string
	Series    []SDMXSeries

	SchemaEntryName string
	DataEntryName   string
	OmitSchema      bool
	OmitData        bool
	ExtraEntries    map[string]string
}

// DefaultCodeLists returns code lists covering the codes used by
// DefaultSeries.
func DefaultCodeLists() map[string]map[string]string {
	return map[string]map[string]string{
		"IMF.CL_WEO_UNIT.1.0":     {"B": "National currency"},
		"IMF.CL_WEO_CONCEPT.1.0":  {"NGDP_R": "Gross domestic product, constant prices"},
		"IMF.CL_WEO_REF_AREA.1.0": {"111": "United States"},
		"IMF.CL_FREQ.1.0":         {"A": "Annual"},
		"IMF.CL_WEO_SCALE.1.0":    {"B": "Billions"},
	}
}

// DefaultSeries returns one series with two observations, the second using a
// thousands separator.
func DefaultSeries() []SDMXSeries {
	return []SDMXSeries{{
		Unit:           "B",
		Concept:        "NGDP_R",
		RefArea:        "111",
		Freq:           "A",
		Scale:          "B",
		LastActualDate: "2025",
		Obs: []SDMXObs{
			{TimePeriod: "2024", Value: "21.354"},
			{TimePeriod: "2025", Value: "1,234.5"},
		},
	}}
}

// Build renders the archive to zip bytes.
func (a SDMXArchive) Build(t testing.TB) []byte {
	t.Helper()

	if a.CodeLists == nil {
		a.CodeLists = DefaultCodeLists()
	}
	if a.Series == nil {
		a.Series = DefaultSeries()
	}
	if a.SchemaEntryName == "" {
		a.SchemaEntryName = "WEOApr2026.xsd"
	}
	if a.DataEntryName == "" {
		a.DataEntryName = "WEOApr2026.xml"
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	write := func(name, content string) {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create archive entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write archive entry %s: %v", name, err)
		}
	}

	if !a.OmitSchema {
		write(a.SchemaEntryName, renderSchema(a.CodeLists))
	}
	if !a.OmitData {
		write(a.DataEntryName, renderData(a.Series))
	}
	for name, content := range a.ExtraEntries {
		write(name, content)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func renderSchema(codeLists map[string]map[string]string) string {
	listNames := make([]string, 0, len(codeLists))
	for name := range codeLists {
		listNames = append(listNames, name)
	}
	sort.Strings(listNames)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">` + "\n")
	for _, listName := range listNames {
		codes := codeLists[listName]
		codeValues := make([]string, 0, len(codes))
		for code := range codes {
			codeValues = append(codeValues, code)
		}
		sort.Strings(codeValues)

		fmt.Fprintf(&sb, `  <xs:simpleType name="%s">`+"\n", xmlEscape(listName))
		sb.WriteString(`    <xs:restriction base="xs:string">` + "\n")
		for _, code := range codeValues {
			fmt.Fprintf(&sb, `      <xs:enumeration value="%s">`+"\n", xmlEscape(code))
			sb.WriteString(`        <xs:annotation>` + "\n")
			fmt.Fprintf(&sb, `          <xs:documentation xml:lang="en">%s</xs:documentation>`+"\n", xmlEscape(codes[code]))
			sb.WriteString(`        </xs:annotation>` + "\n")
			sb.WriteString(`      </xs:enumeration>` + "\n")
		}
		sb.WriteString(`    </xs:restriction>` + "\n")
		sb.WriteString(`  </xs:simpleType>` + "\n")
	}
	sb.WriteString(`</xs:schema>` + "\n")
	return sb.String()
}

func renderData(series []SDMXSeries) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<CompactData xmlns="http://www.imf.org/weo">` + "\n")
	sb.WriteString(`  <Header><ID>WEO</ID></Header>` + "\n")
	sb.WriteString(`  <DataSet>` + "\n")
	for _, s := range series {
		sb.WriteString(`    <Series`)
		writeAttr(&sb, "UNIT", s.Unit)
		writeAttr(&sb, "CONCEPT", s.Concept)
		writeAttr(&sb, "REF_AREA", s.RefArea)
		writeAttr(&sb, "FREQ", s.Freq)
		writeAttr(&sb, "SCALE", s.Scale)
		writeAttr(&sb, "NOTES", s.Notes)
		writeAttr(&sb, "LASTACTUALDATE", s.LastActualDate)
		sb.WriteString(">\n")
		for _, obs := range s.Obs {
			sb.WriteString(`      <Obs`)
			writeAttr(&sb, "TIME_PERIOD", obs.TimePeriod)
			writeAttr(&sb, "OBS_VALUE", obs.Value)
			sb.WriteString("/>\n")
		}
		sb.WriteString(`    </Series>` + "\n")
	}
	sb.WriteString(`  </DataSet>` + "\n")
	sb.WriteString(`</CompactData>` + "\n")
	return sb.String()
}

func writeAttr(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, ` %s="%s"`, name, xmlEscape(value))
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
