package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in the
// output table.
const DateLayout = "2006-01-02"

// Columns is the canonical column order of the input and output tables.
var Columns = []string{
	"SiteName", "Latitude", "Longitude", "City",
	"EasyAccess", "Subcon", "TeamNumber", "Date",
}

// Site is one row of the visit table. Team and Date are empty on input
// unless the row carries a pre-assigned placement; Date is always populated
// on output.
type Site struct {
	Name       string  `json:"site_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	City       string  `json:"city"`
	EasyAccess bool    `json:"easy_access"`
	// EasyAccessLabel keeps the input spelling (Yes/no/1/...) so the
	// output table stays diff-friendly against the source.
	EasyAccessLabel string `json:"-"`
	Subcon     string  `json:"subcon"`
	Team       string  `json:"team_number,omitempty"`
	Date       string  `json:"date,omitempty"`

	// Index is the zero-based position of the row in the input table.
	// Downstream tie-breaking relies on it.
	Index int `json:"-"`
}

// Preassigned reports whether the row arrived with a fixed team. Such sites
// bypass proximity grouping and only need a date.
func (s *Site) Preassigned() bool {
	return s.Team != ""
}

func (s *Site) String() string {
	return fmt.Sprintf("%s (%s/%s)", s.Name, s.City, s.Subcon)
}

// VisitGroup is the unit of scheduling: 1..max_group_size sites visited by
// one team on one date. Members always share City and Subcon.
type VisitGroup struct {
	Sites  []*Site
	City   string
	Subcon string
	Team   string
	Date   string
}

// Workday is one consumed calendar slot of a team.
type Workday struct {
	Date  time.Time
	Group *VisitGroup
}

// Schedule maps each team to its ordered sequence of workdays. Dates within
// one team are strictly increasing.
type Schedule struct {
	Teams map[string][]Workday
}

func NewSchedule() *Schedule {
	return &Schedule{Teams: make(map[string][]Workday)}
}

// Append records a workday for a team. Callers append in cursor order, so
// the slice stays date-sorted without re-sorting.
func (s *Schedule) Append(team string, day Workday) {
	s.Teams[team] = append(s.Teams[team], day)
}
