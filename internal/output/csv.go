package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// Write serializes the schedule table: canonical column order, one row per
// site, input row order preserved so the result diffs cleanly against the
// source table.
func Write(w io.Writer, sites []*models.Site, delimiter rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	if err := writer.Write(models.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range sites {
		if err := writer.Write(siteRecord(s)); err != nil {
			return fmt.Errorf("write row for %s: %w", s.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the table to path. Nothing is left behind on error.
func WriteFile(path string, sites []*models.Site, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output table: %w", err)
	}
	if err := Write(f, sites, delimiter); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func siteRecord(s *models.Site) []string {
	easy := s.EasyAccessLabel
	if easy == "" {
		easy = strconv.FormatBool(s.EasyAccess)
	}
	return []string{
		s.Name,
		strconv.FormatFloat(s.Latitude, 'f', -1, 64),
		strconv.FormatFloat(s.Longitude, 'f', -1, 64),
		s.City,
		easy,
		s.Subcon,
		s.Team,
		s.Date,
	}
}
