// Package facility defines the immutable facility record model consumed by
// the globe view, plus the dataset loader that feeds it.
package facility

// Status is the lifecycle stage of a facility. The set is fixed and totally
// ordered; the order drives both paint order and cluster tie-breaking.
type Status string

const (
	StatusOperational       Status = "operational"
	StatusUnderConstruction Status = "under_construction"
	StatusPlanned           Status = "planned"
	StatusSuspended         Status = "suspended"
	StatusShutdown          Status = "shutdown"
	StatusCancelled         Status = "cancelled"
)

// AllStatuses lists every status in descending priority order.
var AllStatuses = []Status{
	StatusOperational,
	StatusUnderConstruction,
	StatusPlanned,
	StatusSuspended,
	StatusShutdown,
	StatusCancelled,
}

var statusPriority = map[Status]int{
	StatusOperational:       6,
	StatusUnderConstruction: 5,
	StatusPlanned:           4,
	StatusSuspended:         3,
	StatusShutdown:          2,
	StatusCancelled:         1,
}

var statusColors = map[Status]string{
	StatusOperational:       "#4ADE80", // green
	StatusUnderConstruction: "#FACC15", // amber
	StatusPlanned:           "#60A5FA", // blue
	StatusSuspended:         "#FB923C", // orange
	StatusShutdown:          "#94A3B8", // slate
	StatusCancelled:         "#64748B", // dim slate
}

var statusDescriptions = map[Status]string{
	StatusOperational:       "Generating power",
	StatusUnderConstruction: "Under construction",
	StatusPlanned:           "Planned",
	StatusSuspended:         "Construction suspended",
	StatusShutdown:          "Permanently shut down",
	StatusCancelled:         "Cancelled",
}

// Priority returns the rendering/tie-break priority; higher wins. Unknown
// statuses rank below every known one.
func (s Status) Priority() int {
	return statusPriority[s]
}

// Valid reports whether s is a member of the fixed enumeration.
func (s Status) Valid() bool {
	_, ok := statusPriority[s]
	return ok
}

// Color returns the hex display color for the status.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#FFFFFF"
}

// Description returns the short human-readable label for the status.
func (s Status) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return string(s)
}

// Active reports whether the facility is operating or being built; only
// active facilities get the energetic marker animations (pulse, plumes).
func (s Status) Active() bool {
	return s == StatusOperational || s == StatusUnderConstruction
}
