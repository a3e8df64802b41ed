package scheduler

import (
	"sort"

	"github.com/DRAGVAN/siteVisitProject/internal/geo"
	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// Grouper partitions the unscheduled sites of each (city, subcontractor)
// bucket into visit-groups. Pairing is a deterministic greedy matching over
// the candidate pairs within MaxDistance, not an optimal tour.
type Grouper struct {
	// MaxDistance is the pairing threshold in kilometers.
	MaxDistance float64
	// MaxGroupSize caps group membership. 2 means plain pairing; larger
	// values allow leftover singles to attach to an existing group.
	MaxGroupSize int
	// PreferHardAccess deprioritizes easy-access sites when two candidate
	// pairs are equally close. Hard-to-reach sites gain the most from
	// sharing a travel day, easy ones are cheap to schedule alone.
	PreferHardAccess bool
}

func NewGrouper(cfg *models.Config) *Grouper {
	return &Grouper{
		MaxDistance:      cfg.MaxPairDistance,
		MaxGroupSize:     cfg.MaxGroupSize,
		PreferHardAccess: cfg.PreferHardAccess,
	}
}

type candidatePair struct {
	a, b     *models.Site
	distance float64
}

// Group clusters sites by city, then by subcontractor, and runs the greedy
// matching inside each bucket. Pre-assigned sites are skipped entirely;
// they are already fixed placements. Groups come back in creation order.
func (g *Grouper) Group(sites []*models.Site) []*models.VisitGroup {
	type bucketKey struct{ city, subcon string }

	buckets := make(map[bucketKey][]*models.Site)
	var order []bucketKey
	for _, s := range sites {
		if s.Preassigned() {
			continue
		}
		k := bucketKey{s.City, s.Subcon}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], s)
	}

	var groups []*models.VisitGroup
	for _, k := range order {
		groups = append(groups, g.groupBucket(buckets[k])...)
	}
	return groups
}

// groupBucket matches one (city, subcontractor) bucket. Sites arrive in
// input order and the result is fully determined by it.
func (g *Grouper) groupBucket(sites []*models.Site) []*models.VisitGroup {
	pairs := g.candidatePairs(sites)

	assigned := make(map[*models.Site]bool, len(sites))
	var groups []*models.VisitGroup
	for _, p := range pairs {
		if assigned[p.a] || assigned[p.b] {
			continue
		}
		assigned[p.a] = true
		assigned[p.b] = true
		groups = append(groups, newGroup(p.a, p.b))
	}

	var singles []*models.Site
	for _, s := range sites {
		if !assigned[s] {
			singles = append(singles, s)
		}
	}

	if g.MaxGroupSize > 2 {
		singles = g.attach(groups, singles)
	}
	for _, s := range singles {
		groups = append(groups, newGroup(s))
	}
	return groups
}

// candidatePairs lists every pair within MaxDistance, closest first. Ties
// prefer pairs with fewer easy-access members (when configured), then the
// input order of the first and second site.
func (g *Grouper) candidatePairs(sites []*models.Site) []candidatePair {
	var pairs []candidatePair
	for i, a := range sites {
		for _, b := range sites[i+1:] {
			d := siteDistance(a, b)
			if d <= g.MaxDistance {
				pairs = append(pairs, candidatePair{a: a, b: b, distance: d})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].distance != pairs[j].distance {
			return pairs[i].distance < pairs[j].distance
		}
		if g.PreferHardAccess {
			ei, ej := easyCount(pairs[i]), easyCount(pairs[j])
			if ei != ej {
				return ei < ej
			}
		}
		if pairs[i].a.Index != pairs[j].a.Index {
			return pairs[i].a.Index < pairs[j].a.Index
		}
		return pairs[i].b.Index < pairs[j].b.Index
	})
	return pairs
}

// attach folds leftover singles into existing groups, nearest group first,
// while the group stays under MaxGroupSize and the single is within
// MaxDistance of at least one member.
func (g *Grouper) attach(groups []*models.VisitGroup, singles []*models.Site) []*models.Site {
	var remaining []*models.Site
	for _, s := range singles {
		best := -1
		bestDist := g.MaxDistance
		for gi, grp := range groups {
			if len(grp.Sites) >= g.MaxGroupSize {
				continue
			}
			for _, member := range grp.Sites {
				if d := siteDistance(s, member); d <= bestDist && (best == -1 || d < bestDist) {
					best = gi
					bestDist = d
				}
			}
		}
		if best >= 0 {
			groups[best].Sites = append(groups[best].Sites, s)
		} else {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

func newGroup(sites ...*models.Site) *models.VisitGroup {
	return &models.VisitGroup{
		Sites:  sites,
		City:   sites[0].City,
		Subcon: sites[0].Subcon,
	}
}

func siteDistance(a, b *models.Site) float64 {
	return geo.Haversine(
		geo.NewCoordinate(a.Latitude, a.Longitude),
		geo.NewCoordinate(b.Latitude, b.Longitude),
	)
}

func easyCount(p candidatePair) int {
	n := 0
	if p.a.EasyAccess {
		n++
	}
	if p.b.EasyAccess {
		n++
	}
	return n
}
