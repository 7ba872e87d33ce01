// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Marker style selector, cluster detail panel, geolocation fly-to
// 0.2.0 - Day/night shading, cloud layer, capacity-scaled markers
// 0.1.0 - Initial release: globe renderer, facility dataset, headless summary
