package visualizer

import (
	"encoding/json"
	"html/template"
	"os"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// LeafletRenderer writes the document as a single HTML file backed by the
// Leaflet library. Any failure comes back as RenderingUnavailableError so
// the caller can degrade to "no map produced".
type LeafletRenderer struct {
	Path string
}

func NewLeafletRenderer(path string) *LeafletRenderer {
	return &LeafletRenderer{Path: path}
}

func (r *LeafletRenderer) Render(doc *Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return &models.RenderingUnavailableError{Reason: "encode map data", Err: err}
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return &models.RenderingUnavailableError{Reason: "create map file", Err: err}
	}

	data := struct {
		Doc     *Document
		Payload template.JS
	}{Doc: doc, Payload: template.JS(payload)}

	if err := mapTemplate.Execute(f, data); err != nil {
		f.Close()
		os.Remove(r.Path)
		return &models.RenderingUnavailableError{Reason: "render map document", Err: err}
	}
	if err := f.Close(); err != nil {
		return &models.RenderingUnavailableError{Reason: "close map file", Err: err}
	}
	return nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Site visit plan</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend {
    position: absolute; bottom: 30px; right: 10px; z-index: 1000;
    background: white; border: 2px solid grey; border-radius: 5px;
    padding: 10px; font: 14px Arial, sans-serif; max-height: 400px; overflow-y: auto;
  }
</style>
</head>
<body>
<div id="map"></div>
<div class="legend">
<h4 style="margin:0 0 8px 0">Team routes</h4>
{{range .Doc.Legend}}<p style="margin:3px 0"><span style="color:{{.Color}}">&#9644;</span> {{.Label}}</p>
{{end}}</div>
<script>
var data = {{.Payload}};
var map = L.map('map').setView([data.center.lat, data.center.lon], data.zoom);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

data.markers.forEach(function (m) {
  var opts = m.kind === 'city'
    ? { radius: 10, color: 'black', fillColor: 'black', fillOpacity: 0.8 }
    : { radius: 6, color: m.color, fillColor: m.color, fillOpacity: 0.9 };
  L.circleMarker([m.coordinate.lat, m.coordinate.lon], opts)
    .bindTooltip(m.label)
    .bindPopup(m.popup)
    .addTo(map);
});

data.polylines.forEach(function (p) {
  var latlngs = p.coordinates.map(function (c) { return [c.lat, c.lon]; });
  L.polyline(latlngs, { color: p.color, weight: 4, opacity: 0.7 })
    .bindTooltip(p.label)
    .addTo(map);
});
</script>
</body>
</html>
`))
