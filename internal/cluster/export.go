package cluster

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/litescript/atomview/internal/facility"
)

// SnapshotExport is the JSON-serializable view of the clustered dataset.
type SnapshotExport struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Records     int                     `json:"records"`
	Sites       []SiteExport            `json:"sites"`
	Statuses    map[facility.Status]int `json:"status_counts"`
	TotalMW     float64                 `json:"total_capacity_mw"`
}

// SiteExport is one clustered location with derived fields.
type SiteExport struct {
	Name       string            `json:"name"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Country    string            `json:"country"`
	Status     facility.Status   `json:"status"`
	Units      int               `json:"units"`
	CapacityMW float64           `json:"capacity_mw"`
	Members    []facility.Record `json:"members"`
}

// ExportSnapshot clusters the records and converts them to the exportable
// format, sites ordered by display priority.
func ExportSnapshot(records []facility.Record, generatedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt: generatedAt,
		Records:     len(records),
		Statuses:    make(map[facility.Status]int),
	}

	for _, r := range records {
		export.Statuses[r.Status]++
		export.TotalMW += r.CapacityMW
	}

	for _, c := range Sorted(Build(records)) {
		total := 0.0
		for _, m := range c.Members {
			total += m.CapacityMW
		}
		export.Sites = append(export.Sites, SiteExport{
			Name:       c.DisplayName(),
			Latitude:   c.Key.Lat,
			Longitude:  c.Key.Lon,
			Country:    c.Representative.Country,
			Status:     c.Representative.Status,
			Units:      c.Count(),
			CapacityMW: total,
			Members:    c.Members,
		})
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
