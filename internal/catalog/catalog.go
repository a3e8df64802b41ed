// Package catalog parses the site table into Site records. The delimiter
// and column layout are resolved once from the header; rows are validated
// strictly so scheduling never starts on a bad table.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

var requiredColumns = []string{"SiteName", "Latitude", "Longitude", "City", "EasyAccess", "Subcon"}
var optionalColumns = []string{"TeamNumber", "Date"}

// layout maps column names to field indices, resolved once from the header.
type layout struct {
	delimiter rune
	index     map[string]int
}

func (l *layout) field(record []string, column string) string {
	idx, ok := l.index[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (l *layout) has(column string) bool {
	_, ok := l.index[column]
	return ok
}

// DetectDelimiter picks `,` or `;` by counting occurrences in the header
// line. The higher count wins; ties fall back to `,`.
func DetectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func resolveLayout(header []string, delimiter rune) (*layout, error) {
	l := &layout{delimiter: delimiter, index: make(map[string]int, len(header))}
	for i, name := range header {
		l.index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if !l.has(col) {
			return nil, &models.MalformedInputError{Line: 1, Column: col, Reason: "required column missing"}
		}
	}
	return l, nil
}

// LoadFile reads the site table at path. See Load.
func LoadFile(path string) ([]*models.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a delimited site table. Rows come back in input order. Any
// defect aborts with a MalformedInputError naming the line and column.
func Load(r io.Reader) ([]*models.Site, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input table: %w", err)
	}

	text := string(data)
	headerLine, _, _ := strings.Cut(text, "\n")
	delimiter := DetectDelimiter(headerLine)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &models.MalformedInputError{Line: 1, Reason: "empty input table"}
	}
	if err != nil {
		return nil, &models.MalformedInputError{Line: 1, Reason: err.Error()}
	}

	table, err := resolveLayout(header, delimiter)
	if err != nil {
		return nil, err
	}

	var sites []*models.Site
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// field-count mismatches and quoting defects land here
			return nil, &models.MalformedInputError{Line: parseErr.Line, Reason: csvReason(parseErr)}
		}
		if err != nil {
			return nil, &models.MalformedInputError{Line: line, Reason: err.Error()}
		}

		site, err := parseSite(table, record, line)
		if err != nil {
			return nil, err
		}
		if site == nil {
			continue // blank padding row
		}
		site.Index = len(sites)
		sites = append(sites, site)
	}
	return sites, nil
}

func csvReason(err *csv.ParseError) string {
	if errors.Is(err.Err, csv.ErrFieldCount) {
		return "row has a different field count than the header"
	}
	return err.Err.Error()
}

func parseSite(table *layout, record []string, line int) (*models.Site, error) {
	name := table.field(record, "SiteName")
	if name == "" && strings.TrimSpace(strings.Join(record, "")) == "" {
		return nil, nil
	}

	lat, err := parseCoordinate(table, record, "Latitude", line, 90)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoordinate(table, record, "Longitude", line, 180)
	if err != nil {
		return nil, err
	}

	easyLabel := table.field(record, "EasyAccess")
	easy, err := parseBool(easyLabel)
	if err != nil {
		return nil, &models.MalformedInputError{Line: line, Column: "EasyAccess", Reason: err.Error()}
	}

	site := &models.Site{
		Name:            name,
		Latitude:        lat,
		Longitude:       lon,
		City:            table.field(record, "City"),
		EasyAccess:      easy,
		EasyAccessLabel: easyLabel,
		Subcon:          table.field(record, "Subcon"),
	}
	if table.has("TeamNumber") {
		site.Team = table.field(record, "TeamNumber")
	}
	if table.has("Date") {
		site.Date = table.field(record, "Date")
	}
	return site, nil
}

func parseCoordinate(table *layout, record []string, column string, line int, bound float64) (float64, error) {
	raw := table.field(record, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &models.MalformedInputError{Line: line, Column: column, Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < -bound || v > bound {
		return 0, &models.MalformedInputError{Line: line, Column: column, Reason: fmt.Sprintf("out of range: %q", raw)}
	}
	return v, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", raw)
}
