package cluster

import (
	"fmt"
	"io"
	"sort"

	"github.com/litescript/atomview/internal/facility"
)

// WriteSummary prints a plain-text overview of the dataset: per-status
// record counts, total reported capacity, and the largest multi-unit sites.
// Used by the headless -summary mode.
func WriteSummary(w io.Writer, records []facility.Record) {
	clusters := Build(records)

	counts := make(map[facility.Status]int)
	var totalMW float64
	for _, r := range records {
		counts[r.Status]++
		totalMW += r.CapacityMW
	}

	fmt.Fprintf(w, "Facilities: %d records at %d sites\n", len(records), len(clusters))
	fmt.Fprintf(w, "Reported capacity: %.0f MW\n\n", totalMW)

	fmt.Fprintln(w, "By status:")
	for _, s := range facility.AllStatuses {
		if counts[s] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-20s %4d\n", s.Description(), counts[s])
	}

	multi := make([]*Cluster, 0)
	for _, c := range clusters {
		if c.Count() > 1 {
			multi = append(multi, c)
		}
	}
	sort.Slice(multi, func(i, j int) bool {
		if multi[i].Count() != multi[j].Count() {
			return multi[i].Count() > multi[j].Count()
		}
		return multi[i].DisplayName() < multi[j].DisplayName()
	})

	if len(multi) > 0 {
		fmt.Fprintln(w, "\nMulti-unit sites:")
		limit := len(multi)
		if limit > 10 {
			limit = 10
		}
		for _, c := range multi[:limit] {
			fmt.Fprintf(w, "  %-30s (%d units) %s\n",
				c.DisplayName(), c.Count(), c.Representative.Country)
		}
	}
}
