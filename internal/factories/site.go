// Package factories fabricates realistic sample site tables for demos and
// load testing.
package factories

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/DRAGVAN/siteVisitProject/internal/models"
)

type SiteFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewSiteFactory(seed int64) *SiteFactory {
	return &SiteFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// CreateSites spreads count sites over cityCount fictional cities. Each
// city gets a random centre and a handful of subcontractors; sites jitter
// around the centre within urbanRadius kilometers so a share of them lands
// inside realistic pairing distance of each other.
func (sf *SiteFactory) CreateSites(count, cityCount int, urbanRadius float64) []*models.Site {
	type cityInfo struct {
		name     string
		lat, lon float64
		subcons  []string
	}

	cities := make([]cityInfo, cityCount)
	for i := range cities {
		subcons := make([]string, 1+sf.rng.Intn(2))
		for j := range subcons {
			subcons[j] = sf.fake.Company().Name()
		}
		cities[i] = cityInfo{
			name:    sf.fake.Address().City(),
			lat:     -55 + sf.rng.Float64()*110, // keep clear of the poles
			lon:     -180 + sf.rng.Float64()*360,
			subcons: subcons,
		}
	}

	sites := make([]*models.Site, count)
	for i := range sites {
		city := cities[sf.rng.Intn(len(cities))]

		latRange := urbanRadius / 111.0
		lonRange := latRange / math.Cos(city.lat*math.Pi/180.0)
		lat := city.lat + (sf.rng.Float64()*2-1)*latRange
		lon := city.lon + (sf.rng.Float64()*2-1)*lonRange

		easy := "no"
		if sf.rng.Float64() < 0.6 {
			easy = "yes"
		}

		sites[i] = &models.Site{
			Name:            fmt.Sprintf("SITE-%s", cuid.Slug()),
			Latitude:        lat,
			Longitude:       lon,
			City:            city.name,
			EasyAccess:      easy == "yes",
			EasyAccessLabel: easy,
			Subcon:          city.subcons[sf.rng.Intn(len(city.subcons))],
			Index:           i,
		}
	}
	return sites
}
