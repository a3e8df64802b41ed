// Package output serializes the finished schedule. The CSV table is the
// canonical artifact; the other sinks (console, Postgres, Kafka, Parquet)
// are optional fan-out destinations behind ScheduleSink.
package output

import (
	"context"
	"os"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

type ScheduleSink interface {
	WriteSchedule(ctx context.Context, sites []*models.Site) error
	Close() error
}

// ConsoleSink dumps the schedule table to stdout, mainly for --verbose runs
// and quick inspection without an output file.
type ConsoleSink struct {
	Delimiter rune
}

func (c *ConsoleSink) WriteSchedule(_ context.Context, sites []*models.Site) error {
	return Write(os.Stdout, sites, c.Delimiter)
}

func (c *ConsoleSink) Close() error { return nil }
