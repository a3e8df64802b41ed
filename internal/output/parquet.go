package output

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

type parquetVisit struct {
	SiteName   string  `parquet:"name=site_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Latitude   float64 `parquet:"name=latitude, type=DOUBLE"`
	Longitude  float64 `parquet:"name=longitude, type=DOUBLE"`
	City       string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	EasyAccess bool    `parquet:"name=easy_access, type=BOOLEAN"`
	Subcon     string  `parquet:"name=subcon, type=BYTE_ARRAY, convertedtype=UTF8"`
	Team       string  `parquet:"name=team_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	VisitDate  string  `parquet:"name=visit_date, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ParquetSink writes the schedule as a single Parquet file for downstream
// analytics.
type ParquetSink struct {
	file   source.ParquetFile
	writer *writer.ParquetWriter
}

func NewParquetSink(path string) (*ParquetSink, error) {
	file, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	pw, err := writer.NewParquetWriter(file, new(parquetVisit), 4)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	return &ParquetSink{file: file, writer: pw}, nil
}

func (p *ParquetSink) WriteSchedule(_ context.Context, sites []*models.Site) error {
	for _, s := range sites {
		row := parquetVisit{
			SiteName:   s.Name,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			City:       s.City,
			EasyAccess: s.EasyAccess,
			Subcon:     s.Subcon,
			Team:       s.Team,
			VisitDate:  s.Date,
		}
		if err := p.writer.Write(row); err != nil {
			return fmt.Errorf("write parquet row for %s: %w", s.Name, err)
		}
	}
	return nil
}

func (p *ParquetSink) Close() error {
	if err := p.writer.WriteStop(); err != nil {
		p.file.Close()
		return fmt.Errorf("finalize parquet file: %w", err)
	}
	return p.file.Close()
}
