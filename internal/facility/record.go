package facility

// Record is a single geolocated facility. Records are loaded once per
// session and treated as read-only by everything downstream; the globe view
// never mutates them.
//
// CapacityMW uses the zero value to mean "not reported": tie-breaks treat
// it as 0, while the visual capacity scale substitutes its configured
// default.
type Record struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Status      Status  `json:"status"`
	CapacityMW  float64 `json:"capacity_mw,omitempty"`

	ReactorType  string `json:"reactor_type,omitempty"`
	ReactorModel string `json:"reactor_model,omitempty"`
	Description  string `json:"description,omitempty"`
	InfoURL      string `json:"info_url,omitempty"`
}

// HoverInfo is the minimal projection reported on pointer-over, together
// with the marker's current screen position.
type HoverInfo struct {
	Name    string
	Status  Status
	ScreenX int
	ScreenY int
	Units   int
}

// StatusSet is the set of statuses currently visible.
type StatusSet map[Status]bool

// AllVisible returns a set containing every status.
func AllVisible() StatusSet {
	set := make(StatusSet, len(AllStatuses))
	for _, s := range AllStatuses {
		set[s] = true
	}
	return set
}

// Clone returns an independent copy of the set.
func (s StatusSet) Clone() StatusSet {
	out := make(StatusSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Filter returns the records whose status is in the set, preserving order.
func Filter(records []Record, visible StatusSet) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if visible[r.Status] {
			out = append(out, r)
		}
	}
	return out
}
