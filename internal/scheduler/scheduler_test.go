package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
	"github.com/DRAGVAN/siteVisitProject/internal/visualizer"
)

const pipelineInput = `SiteName,Latitude,Longitude,City,EasyAccess,Subcon,TeamNumber,Date
Alpha,48.850,2.350,Paris,yes,AcmeCo,,
Beta,48.855,2.355,Paris,no,AcmeCo,,
Gamma,48.900,2.400,Paris,no,AcmeCo,,
Delta,45.760,4.830,Lyon,yes,OtherCo,,
`

func pipelineConfig(t *testing.T, input string) *models.Config {
	t.Helper()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(input), 0o644))

	return &models.Config{
		InputFile:        inPath,
		OutputFile:       filepath.Join(dir, "schedule.csv"),
		MapFile:          filepath.Join(dir, "map.html"),
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxPairDistance:  5.0,
		MaxGroupSize:     2,
		PreferHardAccess: true,
		DefaultTeam:      "1",
		OutputDelimiter:  ";",
	}
}

func runPipeline(t *testing.T, cfg *models.Config) error {
	t.Helper()
	p, err := NewPipeline(context.Background(), cfg)
	require.NoError(t, err)
	return p.Run(context.Background())
}

func TestPipelineProducesScheduleAndMap(t *testing.T) {
	cfg := pipelineConfig(t, pipelineInput)
	require.NoError(t, runPipeline(t, cfg))

	out, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Alpha;48.85;2.35;Paris;yes;AcmeCo;1;2025-01-01")
	assert.Contains(t, string(out), "2025-01-02")

	_, err = os.Stat(cfg.MapFile)
	assert.NoError(t, err)
}

func TestPipelineDeterministic(t *testing.T) {
	cfg1 := pipelineConfig(t, pipelineInput)
	require.NoError(t, runPipeline(t, cfg1))
	cfg2 := pipelineConfig(t, pipelineInput)
	require.NoError(t, runPipeline(t, cfg2))

	out1, err := os.ReadFile(cfg1.OutputFile)
	require.NoError(t, err)
	out2, err := os.ReadFile(cfg2.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)

	map1, err := os.ReadFile(cfg1.MapFile)
	require.NoError(t, err)
	map2, err := os.ReadFile(cfg2.MapFile)
	require.NoError(t, err)
	assert.Equal(t, map1, map2)
}

func TestPipelineMalformedInputWritesNothing(t *testing.T) {
	bad := "SiteName,Latitude,Longitude,City,EasyAccess,Subcon\nAlpha,abc,2.0,Paris,yes,AcmeCo\n"
	cfg := pipelineConfig(t, bad)

	err := runPipeline(t, cfg)
	var malformed *models.MalformedInputError
	require.ErrorAs(t, err, &malformed)

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr), "no output on malformed input")
}

type brokenRenderer struct{}

func (brokenRenderer) Render(*visualizer.Document) error {
	return &models.RenderingUnavailableError{Reason: "capability unavailable"}
}

func TestPipelineSurvivesRenderingFailure(t *testing.T) {
	cfg := pipelineConfig(t, pipelineInput)
	p, err := NewPipeline(context.Background(), cfg)
	require.NoError(t, err)
	p.Renderer = brokenRenderer{}

	require.NoError(t, p.Run(context.Background()))

	_, err = os.Stat(cfg.OutputFile)
	assert.NoError(t, err, "schedule must still be written")
	_, err = os.Stat(cfg.MapFile)
	assert.True(t, os.IsNotExist(err), "no map artifact expected")
}
