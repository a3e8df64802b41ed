package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// Assigner turns visit-groups into a calendar. Each team owns a date
// cursor; consuming a slot stamps the cursor date on the group and advances
// the cursor by exactly one day. One group per team per day.
type Assigner struct {
	// StartDate seeds every team cursor.
	StartDate time.Time
	// DefaultTeam receives all groups when the input carries no
	// pre-assigned team at all.
	DefaultTeam string
}

func NewAssigner(cfg *models.Config) *Assigner {
	return &Assigner{StartDate: cfg.StartDate, DefaultTeam: cfg.DefaultTeam}
}

// Assign dates every site. Pre-assigned sites keep their team and consume a
// workday each, in input order, before the greedy groups are handed out
// round-robin over the known teams. The cursor map lives only for the
// duration of the call, so repeated runs never leak calendar state.
func (a *Assigner) Assign(sites []*models.Site, groups []*models.VisitGroup) (*models.Schedule, error) {
	for _, g := range groups {
		if err := checkGroupTeams(g); err != nil {
			return nil, err
		}
	}

	teams := a.teamRoster(sites)
	cursors := make(map[string]time.Time, len(teams))
	schedule := models.NewSchedule()

	consume := func(team string, g *models.VisitGroup) {
		cursor, ok := cursors[team]
		if !ok {
			cursor = a.StartDate
		}
		date := cursor.Format(models.DateLayout)
		g.Team = team
		g.Date = date
		for _, s := range g.Sites {
			s.Team = team
			s.Date = date
		}
		schedule.Append(team, models.Workday{Date: cursor, Group: g})
		cursors[team] = cursor.AddDate(0, 0, 1)
	}

	// fixed placements first, each one its own workday
	for _, s := range sites {
		if s.Preassigned() {
			consume(s.Team, &models.VisitGroup{
				Sites: []*models.Site{s}, City: s.City, Subcon: s.Subcon,
			})
		}
	}

	for i, g := range groups {
		consume(teams[i%len(teams)], g)
	}
	return schedule, nil
}

// teamRoster returns the distinct pre-assigned team identifiers in sorted
// order, or the default team when the input names none.
func (a *Assigner) teamRoster(sites []*models.Site) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, s := range sites {
		if s.Preassigned() && !seen[s.Team] {
			seen[s.Team] = true
			teams = append(teams, s.Team)
		}
	}
	if len(teams) == 0 {
		return []string{a.DefaultTeam}
	}
	sort.Strings(teams)
	return teams
}

// checkGroupTeams guards the invariant that grouping never mixes
// pre-assigned sites in. A violation is a logic defect, not bad input.
func checkGroupTeams(g *models.VisitGroup) error {
	for _, s := range g.Sites {
		if s.Preassigned() {
			return &models.ConsistencyError{
				Detail: fmt.Sprintf("site %s carries pre-assigned team %q but was grouped for assignment", s.Name, s.Team),
			}
		}
	}
	return nil
}
