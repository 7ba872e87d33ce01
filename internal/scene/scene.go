// Package scene owns the camera, the frame loop, and the live marker set.
// It is the single writer of all animation state: the UI submits record
// lists, filters, and navigation commands, and reads back hover and
// selection results.
package scene

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
	"github.com/litescript/atomview/internal/facility"
	"github.com/litescript/atomview/internal/geo"
	"github.com/litescript/atomview/internal/globe"
	"github.com/litescript/atomview/internal/marker"
)

// flyToDuration is the camera flight time for rotateToLocation.
const flyToDuration = 1200 * time.Millisecond

// flyToZoom is the zoom level a flight settles at when the camera is
// currently zoomed out wider than it.
const flyToZoom = 1.8

// flight is an in-progress camera animation. Zoom changes mid-flight do
// not restart or retarget it.
type flight struct {
	fromLat, fromLon float64
	toLat, toLon     float64
	elapsed          time.Duration
}

// markerEntry pairs one cluster with its live visual state.
type markerEntry struct {
	cluster *cluster.Cluster
	state   *marker.VisualState
}

// Scene is the controller: camera, renderer, marker set, selection.
type Scene struct {
	log zerolog.Logger

	cam      geo.Camera
	renderer *globe.Renderer
	assets   *marker.Assets
	style    marker.Style

	records []facility.Record
	visible facility.StatusSet
	entries []markerEntry // paint order: ascending status priority

	selected   *cluster.Key
	hovered    *facility.HoverInfo
	flight     *flight
	width      int
	height     int
	renderFail error
}

// New builds a scene over a loaded record set. A nil textures value is
// accepted and falls through to the renderer's placeholder material.
func New(records []facility.Record, textures *globe.Textures, styleName string, log zerolog.Logger) (*Scene, error) {
	assets := marker.NewAssets()
	style, err := marker.ForName(styleName, assets)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		log:      log,
		cam:      geo.NewCamera(),
		renderer: globe.New(textures),
		assets:   assets,
		style:    style,
		visible:  facility.AllVisible(),
	}
	s.SetRecords(records)
	return s, nil
}

// Camera returns the current camera state.
func (s *Scene) Camera() geo.Camera { return s.cam }

// Renderer exposes the globe renderer for lighting and cloud toggles.
func (s *Scene) Renderer() *globe.Renderer { return s.renderer }

// Style returns the active marker style.
func (s *Scene) Style() marker.Style { return s.style }

// SetStyle swaps the marker style and rebuilds visual state; selection
// survives the swap.
func (s *Scene) SetStyle(name string) error {
	style, err := marker.ForName(name, s.assets)
	if err != nil {
		return err
	}
	s.style = style
	s.rebuild()
	return nil
}

// SetRecords replaces the record list and rebuilds the marker set.
func (s *Scene) SetRecords(records []facility.Record) {
	s.records = records
	s.rebuild()
}

// SetVisibleStatuses replaces the status filter and rebuilds the marker
// set. A selection whose cluster is filtered out is cleared.
func (s *Scene) SetVisibleStatuses(visible facility.StatusSet) {
	s.visible = visible
	s.rebuild()
}

// VisibleStatuses returns the current status filter.
func (s *Scene) VisibleStatuses() facility.StatusSet { return s.visible }

// rebuild recomputes clusters and visual states from the authoritative
// record list. Animation phases are seeded from the cluster key so markers
// do not pulse in lockstep.
func (s *Scene) rebuild() {
	filtered := facility.Filter(s.records, s.visible)
	clusters := cluster.Sorted(cluster.Build(filtered))

	s.entries = s.entries[:0]
	selectionAlive := false
	for _, cl := range clusters {
		st := &marker.VisualState{
			Phase: phaseSeed(cl.Key),
			Scale: geo.CapacityScale(cl.Representative.CapacityMW),
		}
		if s.selected != nil && cl.Key == *s.selected {
			st.Selected = true
			selectionAlive = true
		}
		s.entries = append(s.entries, markerEntry{cluster: cl, state: st})
	}
	if !selectionAlive {
		s.selected = nil
	}
	s.hovered = nil
}

// phaseSeed derives a stable phase offset in [0, 1) from a cluster key.
func phaseSeed(k cluster.Key) float64 {
	h := math.Mod(math.Abs(k.Lat*13.37+k.Lon*7.91), 1)
	return h
}

// Resize records the canvas size used for projection and picking.
func (s *Scene) Resize(width, height int) {
	s.width = width
	s.height = height
}

// RotateToLocation starts a smooth camera flight to frame the coordinate.
// A new call retargets the flight from the current position.
func (s *Scene) RotateToLocation(lat, lon float64) {
	s.flight = &flight{
		fromLat: s.cam.CenterLat,
		fromLon: s.cam.CenterLon,
		toLat:   lat,
		toLon:   geo.NormalizeLon(lon),
	}
	if s.cam.Zoom < flyToZoom {
		s.cam.Zoom = flyToZoom
	}
}

// FlyToTarget returns the destination of the in-progress flight, or false
// when the camera is at rest.
func (s *Scene) FlyToTarget() (lat, lon float64, ok bool) {
	if s.flight == nil {
		return 0, 0, false
	}
	return s.flight.toLat, s.flight.toLon, true
}

// RotateBy nudges the camera by a latitude/longitude delta, cancelling any
// flight in progress. Latitude clamps at the poles; longitude wraps.
func (s *Scene) RotateBy(dLat, dLon float64) {
	s.flight = nil
	lat := s.cam.CenterLat + dLat
	if lat > 89 {
		lat = 89
	} else if lat < -89 {
		lat = -89
	}
	s.cam.CenterLat = lat
	s.cam.CenterLon = geo.NormalizeLon(s.cam.CenterLon + dLon)
}

// ZoomIn steps the camera closer. It never interrupts a flight.
func (s *Scene) ZoomIn() {
	s.cam.Zoom = math.Min(s.cam.Zoom*geo.ZoomStep, geo.MaxZoom)
}

// ZoomOut steps the camera wider. It never interrupts a flight.
func (s *Scene) ZoomOut() {
	s.cam.Zoom = math.Max(s.cam.Zoom/geo.ZoomStep, geo.MinZoom)
}

// ResetView cancels any flight, restores the home framing, and clears the
// selection and hover state. The status filter is kept.
func (s *Scene) ResetView() {
	s.flight = nil
	s.cam = geo.NewCamera()
	s.selected = nil
	s.hovered = nil
	for _, e := range s.entries {
		e.state.Selected = false
		e.state.Hovered = false
	}
}

// Advance runs one frame: the camera moves first, then the cloud layer,
// then every marker is projected against the frame's camera and its
// animation advanced. Marker updates always see the camera state computed
// in the same frame.
func (s *Scene) Advance(dt time.Duration) {
	s.advanceFlight(dt)
	s.renderer.Advance(dt)

	for _, e := range s.entries {
		s.project(e)
		s.style.UpdateFrame(e.state, dt.Seconds())
	}
}

// advanceFlight moves the camera along the active flight with an ease-out
// cubic, taking the short way around the date line.
func (s *Scene) advanceFlight(dt time.Duration) {
	f := s.flight
	if f == nil {
		return
	}
	f.elapsed += dt
	t := float64(f.elapsed) / float64(flyToDuration)
	if t >= 1 {
		s.cam.CenterLat = f.toLat
		s.cam.CenterLon = f.toLon
		s.flight = nil
		return
	}
	eased := 1 - math.Pow(1-t, 3)
	s.cam.CenterLat = geo.Lerp(f.fromLat, f.toLat, eased)
	s.cam.CenterLon = geo.LerpAngle(f.fromLon, f.toLon, eased)
}

// project refreshes one marker's screen position and edge fade from the
// current camera. Markers sit at the active style's surface height, so a
// tall style like pins drifts slightly off the surface point near the limb.
func (s *Scene) project(e markerEntry) {
	st := e.state
	p := geo.SurfaceOffset(geo.LatLonToPoint(e.cluster.Key.Lat, e.cluster.Key.Lon, 1), s.style.SurfaceHeight())
	x, y, facing, _ := s.cam.ProjectPoint(p, s.width, s.height)
	st.ScreenX = x
	st.ScreenY = y
	st.Facing = facing
	st.Opacity = geo.EdgeFade(facing)
	st.Visible = facing > geo.EdgeFadeThreshold && st.Opacity > 0.02
}

// Render draws the frame. A panic anywhere in the draw path is contained
// here: the scene flags itself failed and returns the error instead of
// taking the whole program down.
func (s *Scene) Render(cv *canvas.Canvas) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render: %v", r)
			s.renderFail = err
			s.log.Error().Interface("panic", r).Msg("render pass failed")
		}
	}()

	if s.renderFail != nil {
		return s.renderFail
	}

	s.renderer.Draw(cv, s.cam, time.Now())
	for _, e := range s.entries {
		s.style.Render(cv, e.state, e.cluster)
	}
	return nil
}

// MarkFailed puts the scene into the failed state on behalf of an outer
// draw layer; Retry clears it the same way as for internal panics.
func (s *Scene) MarkFailed(err error) {
	if err != nil {
		s.renderFail = err
	}
}

// Failed reports whether the scene is in the failed state.
func (s *Scene) Failed() bool { return s.renderFail != nil }

// Retry clears the failed state and remounts the marker set so the next
// Render starts from a clean frame.
func (s *Scene) Retry() {
	s.renderFail = nil
	s.rebuild()
}

// Hover runs the pointer-over test at a cell. The topmost marker wins;
// leaving all markers clears the hover state. The returned info carries the
// marker's current screen position for the tooltip.
func (s *Scene) Hover(x, y int) *facility.HoverInfo {
	hit := s.pick(x, y)

	for _, e := range s.entries {
		e.state.Hovered = false
	}
	if hit == nil {
		s.hovered = nil
		return nil
	}

	hit.state.Hovered = true
	rep := hit.cluster.Representative
	s.hovered = &facility.HoverInfo{
		Name:    hit.cluster.DisplayName(),
		Status:  rep.Status,
		ScreenX: hit.state.ScreenX,
		ScreenY: hit.state.ScreenY,
		Units:   hit.cluster.Count(),
	}
	return s.hovered
}

// Hovered returns the current hover info, or nil.
func (s *Scene) Hovered() *facility.HoverInfo { return s.hovered }

// Click toggles selection at a cell. Clicking the selected marker clears
// the selection; clicking any other marker selects that cluster, whose
// representative stands for the whole co-located group. Returns the
// resulting selection.
func (s *Scene) Click(x, y int) *cluster.Cluster {
	hit := s.pick(x, y)
	if hit == nil {
		return s.Selected()
	}

	if s.selected != nil && *s.selected == hit.cluster.Key {
		s.clearSelection()
		return nil
	}

	s.clearSelection()
	key := hit.cluster.Key
	s.selected = &key
	hit.state.Selected = true
	return hit.cluster
}

func (s *Scene) clearSelection() {
	s.selected = nil
	for _, e := range s.entries {
		e.state.Selected = false
	}
}

// Selected returns the selected cluster, or nil.
func (s *Scene) Selected() *cluster.Cluster {
	if s.selected == nil {
		return nil
	}
	for _, e := range s.entries {
		if e.cluster.Key == *s.selected {
			return e.cluster
		}
	}
	return nil
}

// SelectCluster programmatically selects a cluster by key and flies the
// camera to it.
func (s *Scene) SelectCluster(key cluster.Key) {
	for _, e := range s.entries {
		if e.cluster.Key == key {
			s.clearSelection()
			k := key
			s.selected = &k
			e.state.Selected = true
			s.RotateToLocation(key.Lat, key.Lon)
			return
		}
	}
}

// pick returns the topmost marker whose hit test passes, or nil. Entries
// render in ascending priority order, so picking walks them backward.
func (s *Scene) pick(x, y int) *markerEntry {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if s.style.HitTest(e.state, x, y) {
			return e
		}
	}
	return nil
}

// Clusters returns the displayed clusters in paint order.
func (s *Scene) Clusters() []*cluster.Cluster {
	out := make([]*cluster.Cluster, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.cluster
	}
	return out
}

// StatusCounts tallies displayed records per status for the footer legend.
func (s *Scene) StatusCounts() map[facility.Status]int {
	counts := make(map[facility.Status]int)
	for _, e := range s.entries {
		for _, r := range e.cluster.Members {
			counts[r.Status]++
		}
	}
	return counts
}

// SortedStatuses returns the statuses present in the current view, highest
// priority first.
func (s *Scene) SortedStatuses() []facility.Status {
	counts := s.StatusCounts()
	out := make([]facility.Status, 0, len(counts))
	for st := range counts {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}
