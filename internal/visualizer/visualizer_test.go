package visualizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

func scheduledSites() []*models.Site {
	return []*models.Site{
		{Name: "Alpha", Latitude: 48.85, Longitude: 2.35, City: "Paris", Subcon: "AcmeCo", Team: "1", Date: "2025-01-01"},
		{Name: "Beta", Latitude: 48.86, Longitude: 2.36, City: "Paris", Subcon: "AcmeCo", Team: "1", Date: "2025-01-01"},
		{Name: "Gamma", Latitude: 45.76, Longitude: 4.83, City: "Lyon", Subcon: "OtherCo", Team: "2", Date: "2025-01-01"},
	}
}

func TestBuildDocumentMarkers(t *testing.T) {
	doc := BuildDocument(scheduledSites())

	var cityMarkers, siteMarkers int
	for _, m := range doc.Markers {
		switch m.Kind {
		case MarkerCity:
			cityMarkers++
		case MarkerSite:
			siteMarkers++
		}
	}
	assert.Equal(t, 2, cityMarkers, "one marker per city centroid")
	assert.Equal(t, 3, siteMarkers, "one marker per site")
	assert.Len(t, doc.Legend, 2, "one legend entry per team")
}

func TestBuildDocumentPolylines(t *testing.T) {
	doc := BuildDocument(scheduledSites())

	// only the Paris pair shares a (team, date); Gamma stays lineless
	require.Len(t, doc.Polylines, 1)
	assert.Len(t, doc.Polylines[0].Coordinates, 2)
}

func TestBuildDocumentTeamColorsStable(t *testing.T) {
	a := BuildDocument(scheduledSites())
	b := BuildDocument(scheduledSites())
	assert.Equal(t, a, b)
}

func TestBuildDocumentEmpty(t *testing.T) {
	doc := BuildDocument(nil)
	assert.Empty(t, doc.Markers)
	assert.Empty(t, doc.Polylines)
}

func TestLeafletRendererWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.html")
	r := NewLeafletRenderer(path)
	require.NoError(t, r.Render(BuildDocument(scheduledSites())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "leaflet")
	assert.Contains(t, html, "Alpha")
	assert.Contains(t, html, "Team 1")
}

func TestLeafletRendererUnavailable(t *testing.T) {
	r := NewLeafletRenderer(filepath.Join(t.TempDir(), "missing", "nested", "map.html"))
	err := r.Render(BuildDocument(scheduledSites()))

	var unavailable *models.RenderingUnavailableError
	require.ErrorAs(t, err, &unavailable)
}
