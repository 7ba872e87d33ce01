// Package cluster groups facility records that share a site. Records are
// keyed by their coordinates rounded to 3 decimal places (~100 m), which
// folds multi-unit plants into one marker. Sites with genuinely distinct
// facilities closer than ~100 m merge too; that is an accepted
// approximation of the keying heuristic, not a bug.
package cluster

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/litescript/atomview/internal/facility"
)

// Key identifies a site: latitude and longitude rounded to 3 decimals.
type Key struct {
	Lat float64
	Lon float64
}

// KeyFor derives the location key for a coordinate pair.
func KeyFor(latDeg, lonDeg float64) Key {
	return Key{Lat: round3(latDeg), Lon: round3(lonDeg)}
}

func round3(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // fold -0 into +0 so both sides of the rounding agree
	}
	return r
}

func (k Key) String() string {
	return fmt.Sprintf("%.3f,%.3f", k.Lat, k.Lon)
}

// Cluster is a non-empty group of records at one site, ordered as supplied,
// with the representative cached at build time.
type Cluster struct {
	Key            Key
	Members        []facility.Record
	Representative facility.Record
}

// Count returns the number of member records.
func (c *Cluster) Count() int {
	return len(c.Members)
}

// unitSuffix matches trailing unit designators like "-1", " Unit 2", " 3".
var unitSuffix = regexp.MustCompile(`(?i)[\s-]+(unit[\s-]*)?\d+$`)

// DisplayName returns the name shown for the cluster. Multi-member clusters
// drop the representative's trailing unit-number suffix so "Gravelines-1"
// reads as "Gravelines"; if stripping empties the name, the raw name is
// kept. The UI appends the "(N units)" qualifier itself.
func (c *Cluster) DisplayName() string {
	name := c.Representative.Name
	if len(c.Members) < 2 {
		return name
	}
	stripped := strings.TrimSpace(unitSuffix.ReplaceAllString(name, ""))
	if stripped == "" {
		return name
	}
	return stripped
}

// Build groups records by location key. It is a pure function of its input:
// rebuilding from the same (or an equal) record list yields identical
// membership and the same representative choice. The representative is the
// member with the highest status priority, ties broken by larger capacity
// (missing capacity counts as 0), and by input order after that.
func Build(records []facility.Record) map[Key]*Cluster {
	clusters := make(map[Key]*Cluster)
	for _, r := range records {
		key := KeyFor(r.Latitude, r.Longitude)
		c, ok := clusters[key]
		if !ok {
			c = &Cluster{Key: key}
			clusters[key] = c
		}
		c.Members = append(c.Members, r)
	}

	for _, c := range clusters {
		c.Representative = representative(c.Members)
	}
	return clusters
}

func representative(members []facility.Record) facility.Record {
	best := members[0]
	for _, m := range members[1:] {
		if better(m, best) {
			best = m
		}
	}
	return best
}

func better(a, b facility.Record) bool {
	if a.Status.Priority() != b.Status.Priority() {
		return a.Status.Priority() > b.Status.Priority()
	}
	return a.CapacityMW > b.CapacityMW
}

// Sorted returns the clusters ordered by ascending representative status
// priority, then by key, so iteration paints higher-priority sites last.
func Sorted(clusters map[Key]*Cluster) []*Cluster {
	out := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		pi := out[i].Representative.Status.Priority()
		pj := out[j].Representative.Status.Priority()
		if pi != pj {
			return pi < pj
		}
		if out[i].Key.Lat != out[j].Key.Lat {
			return out[i].Key.Lat < out[j].Key.Lat
		}
		return out[i].Key.Lon < out[j].Key.Lon
	})
	return out
}
