// Package scheduler holds the scheduling core (grouper + assigner) and the
// pipeline that runs catalog -> grouper -> assigner -> exporter/visualizer
// to completion on one input table.
package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/DRAGVAN/siteVisitProject/internal/catalog"
	"github.com/DRAGVAN/siteVisitProject/internal/cloudwriter"
	"github.com/DRAGVAN/siteVisitProject/internal/logger"
	"github.com/DRAGVAN/siteVisitProject/internal/models"
	"github.com/DRAGVAN/siteVisitProject/internal/output"
	"github.com/DRAGVAN/siteVisitProject/internal/visualizer"
)

// Pipeline is the single-shot batch run. It is synchronous by design: the
// per-team cursors advance in strict group order, so callers must not
// parallelize assignment.
type Pipeline struct {
	Config   *models.Config
	Renderer visualizer.Renderer
	Sinks    []output.ScheduleSink

	log zerolog.Logger
}

// NewPipeline wires the default renderer and the sinks enabled in config.
// Sink construction failures are fatal: an explicitly requested destination
// that cannot be reached should stop the run before any scheduling work.
func NewPipeline(ctx context.Context, cfg *models.Config) (*Pipeline, error) {
	p := &Pipeline{
		Config: cfg,
		log:    logger.New("pipeline", cfg.Verbose),
	}
	if cfg.MapFile != "" {
		p.Renderer = visualizer.NewLeafletRenderer(cfg.MapFile)
	}

	if cfg.Verbose {
		p.Sinks = append(p.Sinks, &output.ConsoleSink{Delimiter: rune(cfg.OutputDelimiter[0])})
	}
	if cfg.PostgresEnabled {
		sink, err := output.NewPostgresSink(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("postgres sink: %w", err)
		}
		p.Sinks = append(p.Sinks, sink)
	}
	if cfg.KafkaEnabled {
		sink, err := output.NewKafkaSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("kafka sink: %w", err)
		}
		p.Sinks = append(p.Sinks, sink)
	}
	if cfg.ParquetEnabled {
		sink, err := output.NewParquetSink(cfg.ParquetFile)
		if err != nil {
			return nil, fmt.Errorf("parquet sink: %w", err)
		}
		p.Sinks = append(p.Sinks, sink)
	}
	return p, nil
}

// Run executes the whole pipeline. Parsing errors abort before any output
// exists; rendering errors only cost the map artifact.
func (p *Pipeline) Run(ctx context.Context) error {
	defer p.closeSinks()

	sites, err := catalog.LoadFile(p.Config.InputFile)
	if err != nil {
		return err
	}
	p.log.Info().Int("sites", len(sites)).Str("input", p.Config.InputFile).Msg("catalog loaded")

	groups := NewGrouper(p.Config).Group(sites)
	p.log.Debug().Int("groups", len(groups)).Msg("proximity grouping done")

	schedule, err := NewAssigner(p.Config).Assign(sites, groups)
	if err != nil {
		return err
	}
	p.logSummary(sites, schedule)

	if err := output.WriteFile(p.Config.OutputFile, sites, rune(p.Config.OutputDelimiter[0])); err != nil {
		return err
	}
	p.log.Info().Str("output", p.Config.OutputFile).Msg("schedule table written")

	if err := p.fanOut(ctx, sites); err != nil {
		return err
	}

	p.render(sites)
	p.uploadArtifacts()
	return nil
}

func (p *Pipeline) fanOut(ctx context.Context, sites []*models.Site) error {
	if len(p.Sinks) == 0 {
		return nil
	}
	var bar *progressbar.ProgressBar
	if p.Config.Verbose {
		bar = progressbar.Default(int64(len(p.Sinks)), "exporting schedule")
	}
	for _, sink := range p.Sinks {
		if err := sink.WriteSchedule(ctx, sites); err != nil {
			return fmt.Errorf("schedule sink: %w", err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return nil
}

// render draws the map. A missing rendering capability is a degraded
// result, not a failure.
func (p *Pipeline) render(sites []*models.Site) {
	if p.Renderer == nil {
		return
	}
	doc := visualizer.BuildDocument(sites)
	if err := p.Renderer.Render(doc); err != nil {
		p.log.Warn().Err(err).Msg("map not produced")
		return
	}
	p.log.Info().Str("map", p.Config.MapFile).Msg("map written")
}

func (p *Pipeline) uploadArtifacts() {
	cs := p.Config.CloudStorage
	if !cs.Enabled {
		return
	}
	factory, err := cloudwriter.NewS3WriterFactory(cs.Region)
	if err != nil {
		p.log.Warn().Err(err).Msg("artifact upload skipped")
		return
	}
	for _, artifact := range []string{p.Config.OutputFile, p.Config.MapFile} {
		if artifact == "" {
			continue
		}
		if err := cloudwriter.UploadFile(factory, cs.BucketName, cs.Prefix, artifact); err != nil {
			p.log.Warn().Err(err).Str("artifact", artifact).Msg("artifact upload failed")
			continue
		}
		p.log.Info().Str("artifact", artifact).Str("bucket", cs.BucketName).Msg("artifact uploaded")
	}
}

func (p *Pipeline) logSummary(sites []*models.Site, schedule *models.Schedule) {
	minDate, maxDate := "", ""
	bySubcon := make(map[string]int)
	byCity := make(map[string]int)
	for _, s := range sites {
		if s.Date == "" {
			continue
		}
		if minDate == "" || s.Date < minDate {
			minDate = s.Date
		}
		if s.Date > maxDate {
			maxDate = s.Date
		}
		bySubcon[s.Subcon]++
		byCity[s.City]++
	}

	p.log.Info().
		Int("total_sites", len(sites)).
		Int("teams", len(schedule.Teams)).
		Str("first_visit", minDate).
		Str("last_visit", maxDate).
		Interface("by_subcon", bySubcon).
		Interface("by_city", byCity).
		Msg("schedule summary")
}

func (p *Pipeline) closeSinks() {
	for _, sink := range p.Sinks {
		if err := sink.Close(); err != nil {
			p.log.Error().Err(err).Msg("sink close failed")
		}
	}
}
