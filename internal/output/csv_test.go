package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

func scheduledSites() []*models.Site {
	return []*models.Site{
		{
			Name: "Alpha", Latitude: 48.85, Longitude: 2.35, City: "Paris",
			EasyAccess: true, EasyAccessLabel: "Yes", Subcon: "AcmeCo",
			Team: "1", Date: "2025-01-01",
		},
		{
			Name: "Beta", Latitude: 48.86, Longitude: 2.36, City: "Paris",
			EasyAccess: false, EasyAccessLabel: "no", Subcon: "AcmeCo",
			Team: "1", Date: "2025-01-02",
		},
	}
}

func TestWriteSemicolonTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, scheduledSites(), ';'))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SiteName;Latitude;Longitude;City;EasyAccess;Subcon;TeamNumber;Date", lines[0])
	assert.Equal(t, "Alpha;48.85;2.35;Paris;Yes;AcmeCo;1;2025-01-01", lines[1])
	assert.Equal(t, "Beta;48.86;2.36;Paris;no;AcmeCo;1;2025-01-02", lines[2])
}

func TestWritePreservesInputOrder(t *testing.T) {
	sites := scheduledSites()
	sites[0], sites[1] = sites[1], sites[0]

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sites, ';'))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "Beta;"))
	assert.True(t, strings.HasPrefix(lines[2], "Alpha;"))
}

func TestWriteFormatsBoolWhenNoLabel(t *testing.T) {
	sites := scheduledSites()
	sites[0].EasyAccessLabel = ""

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sites, ','))
	assert.Contains(t, buf.String(), "Alpha,48.85,2.35,Paris,true,AcmeCo,1,2025-01-01")
}
