// Package visualizer turns a finished schedule into a map document: one
// marker per site, one marker per city centre, one polyline per team
// workday. Rendering itself sits behind the Renderer port so the pipeline
// survives a missing rendering capability.
package visualizer

import (
	"fmt"
	"sort"

	"github.com/DRAGVAN/siteVisitProject/internal/geo"
	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// Renderer draws a Document somewhere. Implementations must not be load
// bearing for scheduling: a failed Render degrades to "no map produced".
type Renderer interface {
	Render(doc *Document) error
}

type MarkerKind string

const (
	MarkerSite MarkerKind = "site"
	MarkerCity MarkerKind = "city"
)

type Marker struct {
	Kind       MarkerKind     `json:"kind"`
	Label      string         `json:"label"`
	Popup      string         `json:"popup"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Color      string         `json:"color"`
}

type Polyline struct {
	Label       string           `json:"label"`
	Color       string           `json:"color"`
	Coordinates []geo.Coordinate `json:"coordinates"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Document struct {
	Center    geo.Coordinate `json:"center"`
	Zoom      int            `json:"zoom"`
	Markers   []Marker       `json:"markers"`
	Polylines []Polyline     `json:"polylines"`
	Legend    []LegendEntry  `json:"legend"`
}

// teamColors is cycled through to give every team a stable route colour.
var teamColors = []string{
	"red", "blue", "green", "purple", "orange", "darkred",
	"cadetblue", "darkblue", "darkgreen", "darkpurple", "pink",
	"lightblue", "lightgreen", "gray", "black", "beige",
}

// BuildDocument lays out markers and route lines for the scheduled sites.
// Input order and assigned dates fully determine the result.
func BuildDocument(sites []*models.Site) *Document {
	doc := &Document{Zoom: 10}
	if len(sites) == 0 {
		return doc
	}

	doc.Center = geo.Centroid(siteCoordinates(sites))

	centroids := cityCentroids(sites)
	for _, city := range sortedKeys(centroids) {
		doc.Markers = append(doc.Markers, Marker{
			Kind:       MarkerCity,
			Label:      city + " - city center",
			Popup:      fmt.Sprintf("<b>%s</b><br>city center (departure point)", city),
			Coordinate: centroids[city],
			Color:      "black",
		})
	}

	colors := assignTeamColors(sites)
	for _, e := range legendEntries(colors) {
		doc.Legend = append(doc.Legend, e)
	}

	order := visitOrder(sites, centroids)
	for _, s := range sites {
		if s.Date == "" {
			continue
		}
		label := s.Name
		if n, ok := order[s]; ok {
			label = fmt.Sprintf("%d. %s", n, s.Name)
		}
		doc.Markers = append(doc.Markers, Marker{
			Kind:  MarkerSite,
			Label: label,
			Popup: fmt.Sprintf(
				"<b>%s</b><br>Subcon: %s<br>City: %s<br>Team: %s<br>Date: %s<br>EasyAccess: %t",
				s.Name, s.Subcon, s.City, s.Team, s.Date, s.EasyAccess,
			),
			Coordinate: geo.NewCoordinate(s.Latitude, s.Longitude),
			Color:      colors[s.Team],
		})
	}

	doc.Polylines = routeLines(sites, centroids, colors)
	return doc
}

// routeLines draws one line per (team, date) holding at least two sites,
// members ordered nearest-to-centre first.
func routeLines(sites []*models.Site, centroids map[string]geo.Coordinate, colors map[string]string) []Polyline {
	type dayKey struct{ team, date string }

	days := make(map[dayKey][]*models.Site)
	var order []dayKey
	for _, s := range sites {
		if s.Date == "" {
			continue
		}
		k := dayKey{s.Team, s.Date}
		if _, seen := days[k]; !seen {
			order = append(order, k)
		}
		days[k] = append(days[k], s)
	}

	var lines []Polyline
	for _, k := range order {
		members := days[k]
		if len(members) < 2 {
			continue
		}
		sortByCentroidDistance(members, centroids[members[0].City])
		coords := siteCoordinates(members)
		lines = append(lines, Polyline{
			Label: fmt.Sprintf("team %s - %s (%d sites)", k.team, k.date, len(members)),
			Color: colors[k.team],
			Coordinates: coords,
		})
	}
	return lines
}

// visitOrder numbers the sites of each city by date, then by distance to
// the city centre, matching the order a team would drive them.
func visitOrder(sites []*models.Site, centroids map[string]geo.Coordinate) map[*models.Site]int {
	byCity := make(map[string][]*models.Site)
	for _, s := range sites {
		if s.Date != "" {
			byCity[s.City] = append(byCity[s.City], s)
		}
	}

	order := make(map[*models.Site]int, len(sites))
	for city, members := range byCity {
		center := centroids[city]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Date != members[j].Date {
				return members[i].Date < members[j].Date
			}
			di := geo.Haversine(geo.NewCoordinate(members[i].Latitude, members[i].Longitude), center)
			dj := geo.Haversine(geo.NewCoordinate(members[j].Latitude, members[j].Longitude), center)
			return di < dj
		})
		for i, s := range members {
			order[s] = i + 1
		}
	}
	return order
}

func assignTeamColors(sites []*models.Site) map[string]string {
	colors := make(map[string]string)
	n := 0
	for _, s := range sites {
		if s.Team == "" {
			continue
		}
		if _, ok := colors[s.Team]; !ok {
			colors[s.Team] = teamColors[n%len(teamColors)]
			n++
		}
	}
	return colors
}

func legendEntries(colors map[string]string) []LegendEntry {
	var entries []LegendEntry
	for _, team := range sortedKeys(colors) {
		entries = append(entries, LegendEntry{Label: "Team " + team, Color: colors[team]})
	}
	return entries
}

func cityCentroids(sites []*models.Site) map[string]geo.Coordinate {
	byCity := make(map[string][]geo.Coordinate)
	for _, s := range sites {
		byCity[s.City] = append(byCity[s.City], geo.NewCoordinate(s.Latitude, s.Longitude))
	}
	centroids := make(map[string]geo.Coordinate, len(byCity))
	for city, coords := range byCity {
		centroids[city] = geo.Centroid(coords)
	}
	return centroids
}

func sortByCentroidDistance(members []*models.Site, center geo.Coordinate) {
	sort.SliceStable(members, func(i, j int) bool {
		di := geo.Haversine(geo.NewCoordinate(members[i].Latitude, members[i].Longitude), center)
		dj := geo.Haversine(geo.NewCoordinate(members[j].Latitude, members[j].Longitude), center)
		return di < dj
	})
}

func siteCoordinates(sites []*models.Site) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(sites))
	for i, s := range sites {
		coords[i] = geo.NewCoordinate(s.Latitude, s.Longitude)
	}
	return coords
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
