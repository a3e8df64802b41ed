package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

// one kilometer expressed in degrees of latitude
const kmLat = 1.0 / 111.19493

func site(name, city, subcon string, latKm float64) *models.Site {
	return &models.Site{Name: name, City: city, Subcon: subcon, Latitude: latKm * kmLat}
}

func indexed(sites ...*models.Site) []*models.Site {
	for i, s := range sites {
		s.Index = i
	}
	return sites
}

func defaultGrouper() *Grouper {
	return &Grouper{MaxDistance: 5.0, MaxGroupSize: 2, PreferHardAccess: true}
}

func TestGroupPairsClosestSites(t *testing.T) {
	// A-B 1km, B-C 1km, A-C 2km: the tie resolves by input order, so A+B
	// pair up and C stays a singleton.
	sites := indexed(
		site("A", "X", "S", 0),
		site("B", "X", "S", 1),
		site("C", "X", "S", 2),
	)

	groups := defaultGrouper().Group(sites)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Sites, 2)
	assert.Equal(t, "A", groups[0].Sites[0].Name)
	assert.Equal(t, "B", groups[0].Sites[1].Name)
	require.Len(t, groups[1].Sites, 1)
	assert.Equal(t, "C", groups[1].Sites[0].Name)
}

func TestGroupRespectsDistanceThreshold(t *testing.T) {
	sites := indexed(
		site("A", "X", "S", 0),
		site("B", "X", "S", 6), // 6km away, above the 5km threshold
	)
	groups := defaultGrouper().Group(sites)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Len(t, g.Sites, 1)
	}
}

func TestGroupNeverCrossesCity(t *testing.T) {
	sites := indexed(
		site("A", "X", "S", 0),
		site("B", "Y", "S", 0.1),
	)
	groups := defaultGrouper().Group(sites)
	require.Len(t, groups, 2)
}

func TestGroupNeverCrossesSubcontractor(t *testing.T) {
	sites := indexed(
		site("A", "X", "S1", 0),
		site("B", "X", "S2", 0.1),
	)
	groups := defaultGrouper().Group(sites)
	require.Len(t, groups, 2)
}

func TestGroupSkipsPreassignedSites(t *testing.T) {
	a := site("A", "X", "S", 0)
	b := site("B", "X", "S", 0.1)
	b.Team = "3"
	groups := defaultGrouper().Group(indexed(a, b))

	require.Len(t, groups, 1)
	assert.Equal(t, "A", groups[0].Sites[0].Name)
}

func TestGroupSingleSiteCluster(t *testing.T) {
	groups := defaultGrouper().Group(indexed(site("A", "X", "S", 0)))
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Sites, 1)
}

func TestGroupHardAccessPreferredOnEqualDistance(t *testing.T) {
	// E1-E2 and H1-H2 are both 1km pairs; the hard-access pair must win
	// the earlier slot despite E1 coming first in input order.
	e1 := site("E1", "X", "S", 0)
	e1.EasyAccess = true
	e2 := site("E2", "X", "S", 1)
	e2.EasyAccess = true
	h1 := site("H1", "X", "S", 10)
	h2 := site("H2", "X", "S", 11)
	groups := defaultGrouper().Group(indexed(e1, e2, h1, h2))

	require.Len(t, groups, 2)
	assert.Equal(t, "H1", groups[0].Sites[0].Name)
	assert.Equal(t, "H2", groups[0].Sites[1].Name)
}

func TestGroupMaxGroupSizeThree(t *testing.T) {
	g := &Grouper{MaxDistance: 5.0, MaxGroupSize: 3, PreferHardAccess: true}
	sites := indexed(
		site("A", "X", "S", 0),
		site("B", "X", "S", 1),
		site("C", "X", "S", 2),
	)
	groups := g.Group(sites)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Sites, 3)
}

func TestGroupPairwiseInvariants(t *testing.T) {
	sites := indexed(
		site("A", "X", "S", 0),
		site("B", "X", "S", 1),
		site("C", "X", "S", 1.5),
		site("D", "X", "T", 1.2),
		site("E", "Y", "S", 0),
	)
	groups := defaultGrouper().Group(sites)

	seen := make(map[string]int)
	for _, g := range groups {
		assert.LessOrEqual(t, len(g.Sites), 2)
		for _, s := range g.Sites {
			seen[s.Name]++
			assert.Equal(t, g.City, s.City)
			assert.Equal(t, g.Subcon, s.Subcon)
		}
		for i, a := range g.Sites {
			for _, b := range g.Sites[i+1:] {
				assert.LessOrEqual(t, siteDistance(a, b), 5.0)
			}
		}
	}
	// every site lands in exactly one group
	assert.Len(t, seen, len(sites))
	for name, n := range seen {
		assert.Equal(t, 1, n, "site %s grouped %d times", name, n)
	}
}
