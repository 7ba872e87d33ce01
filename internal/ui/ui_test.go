package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/atomview/internal/facility"
	"github.com/litescript/atomview/internal/geoip"
	"github.com/litescript/atomview/internal/globe"
	"github.com/litescript/atomview/internal/marker"
	"github.com/litescript/atomview/internal/scene"
)

type fakeLocator struct {
	loc geoip.Location
	err error
}

func (f *fakeLocator) Locate(ctx context.Context) (geoip.Location, error) {
	return f.loc, f.err
}

func testModel(t *testing.T, locator Locator) Model {
	t.Helper()
	records := []facility.Record{
		{ID: "a", Name: "Alpha", Latitude: 10, Longitude: 20, Status: facility.StatusOperational, CapacityMW: 1500},
		{ID: "b", Name: "Beta", Latitude: -30, Longitude: 150, Status: facility.StatusShutdown, CapacityMW: 400},
	}
	sc, err := scene.New(records, nil, marker.StyleDefault, zerolog.Nop())
	require.NoError(t, err)

	m := New(sc, locator, time.Second, 30, false, zerolog.Nop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

func frame(m Model) Model {
	updated, _ := m.Update(FrameMsg(time.Now()))
	next, _ := updated.(Model).Update(FrameMsg(time.Now().Add(33 * time.Millisecond)))
	return next.(Model)
}

func TestViewBeforeSizeIsPlaceholder(t *testing.T) {
	sc, err := scene.New(nil, nil, marker.StyleDefault, zerolog.Nop())
	require.NoError(t, err)
	m := New(sc, nil, time.Second, 30, false, zerolog.Nop())
	assert.Contains(t, m.View(), "Initializing")
}

func TestTooSmallTerminal(t *testing.T) {
	m := testModel(t, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 6})
	assert.Contains(t, updated.(Model).View(), "too small")
}

func TestQuitKeys(t *testing.T) {
	m := testModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersGlobe(t *testing.T) {
	m := frame(testModel(t, nil))
	out := m.View()
	assert.NotEmpty(t, out)
	assert.Equal(t, 30, strings.Count(out, "\n")+1, "view fills the terminal height")
}

func TestCloudToggleKey(t *testing.T) {
	m := testModel(t, nil)
	require.True(t, m.scene.Renderer().Clouds().Visible())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = updated.(Model)
	assert.False(t, m.scene.Renderer().Clouds().Visible())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = updated.(Model)
	assert.True(t, m.scene.Renderer().Clouds().Visible())
}

func TestLightingCycleKey(t *testing.T) {
	m := testModel(t, nil)
	require.Equal(t, globe.LightingRealistic, m.scene.Renderer().Mode())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	assert.Equal(t, globe.LightingDay, updated.(Model).scene.Renderer().Mode())
}

func TestStyleCycleKey(t *testing.T) {
	m := testModel(t, nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Equal(t, marker.StylePins, updated.(Model).scene.Style().Name())
}

func TestStatusToggleKey(t *testing.T) {
	m := testModel(t, nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	m = updated.(Model)
	assert.False(t, m.scene.VisibleStatuses()[facility.StatusOperational])

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	m = updated.(Model)
	assert.True(t, m.scene.VisibleStatuses()[facility.StatusOperational])
}

func TestZoomKeys(t *testing.T) {
	m := testModel(t, nil)
	before := m.scene.Camera().Zoom

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	m = updated.(Model)
	assert.Greater(t, m.scene.Camera().Zoom, before)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	m = updated.(Model)
	assert.InDelta(t, before, m.scene.Camera().Zoom, 1e-9)
}

func TestArrowKeysRotate(t *testing.T) {
	m := testModel(t, nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	cam := updated.(Model).scene.Camera()
	assert.InDelta(t, 5, cam.CenterLon, 1e-9)

	updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, 5, updated.(Model).scene.Camera().CenterLat, 1e-9)
}

func TestGeolocateFlow(t *testing.T) {
	loc := geoip.Location{Latitude: 51.5, Longitude: -0.1, City: "London", Country: "UK"}
	m := testModel(t, &fakeLocator{loc: loc})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = updated.(Model)
	require.NotNil(t, cmd, "g must launch the lookup command")
	assert.True(t, m.locating)

	msg := cmd()
	result, ok := msg.(LocateResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Err)

	updated, _ = m.Update(result)
	m = updated.(Model)
	assert.False(t, m.locating)

	lat, lon, flying := m.scene.FlyToTarget()
	require.True(t, flying, "successful lookup starts a camera flight")
	assert.InDelta(t, 51.5, lat, 1e-9)
	assert.InDelta(t, -0.1, lon, 1e-9)
}

func TestGeolocateErrorsSurfaceInStatus(t *testing.T) {
	m := testModel(t, &fakeLocator{err: geoip.ErrTimeout})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	require.NotNil(t, cmd)
	updated, _ = updated.(Model).Update(cmd().(LocateResultMsg))
	m = updated.(Model)

	assert.False(t, m.locating)
	assert.Contains(t, m.statusMsg, "timed out")

	_, _, flying := m.scene.FlyToTarget()
	assert.False(t, flying, "failed lookup must not move the camera")
}

func TestLocateErrorMessages(t *testing.T) {
	assert.Contains(t, locateErrorMessage(geoip.ErrDenied), "denied")
	assert.Contains(t, locateErrorMessage(geoip.ErrUnavailable), "unreachable")
	assert.Contains(t, locateErrorMessage(errors.New("weird")), "failed")
}

func TestMouseWheelZooms(t *testing.T) {
	m := testModel(t, nil)
	before := m.scene.Camera().Zoom

	updated, _ := m.Update(tea.MouseMsg{
		X: 40, Y: 10,
		Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp,
	})
	assert.Greater(t, updated.(Model).scene.Camera().Zoom, before)
}

func TestMouseDragRotates(t *testing.T) {
	m := testModel(t, nil)

	updated, _ := m.Update(tea.MouseMsg{
		X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	updated, _ = updated.(Model).Update(tea.MouseMsg{
		X: 35, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft,
	})
	m = updated.(Model)
	assert.InDelta(t, 5, m.scene.Camera().CenterLon, 1e-9, "dragging left pans east")

	updated, _ = m.Update(tea.MouseMsg{
		X: 35, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft,
	})
	assert.Nil(t, updated.(Model).scene.Selected(), "a drag release is not a click")
}

func TestMouseClickSelects(t *testing.T) {
	m := testModel(t, nil)
	m.scene.RotateToLocation(10, 20)
	for i := 0; i < 100; i++ {
		m.scene.Advance(20 * time.Millisecond)
	}

	x, y, _, _ := m.scene.Camera().Project(10, 20, 80, 27)
	updated, _ := m.Update(tea.MouseMsg{
		X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	updated, _ = updated.(Model).Update(tea.MouseMsg{
		X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft,
	})
	assert.NotNil(t, updated.(Model).scene.Selected())
}

func TestRetryKeyClearsFailure(t *testing.T) {
	m := testModel(t, nil)
	m.scene.MarkFailed(errors.New("boom"))
	assert.Contains(t, m.View(), "retry")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	assert.False(t, m.scene.Failed())
}

func TestFooterShowsLegendAndCounts(t *testing.T) {
	m := frame(testModel(t, nil))
	out := m.View()
	assert.Contains(t, out, "oper 1")
	assert.Contains(t, out, "shut 1")
	assert.Contains(t, out, "locate me")
}

func TestOverlayLabelWidthCountsRunes(t *testing.T) {
	// "Alpha · live" is 12 cells but 14 bytes; byte math would flip the
	// label to the left even though it still fits on the right.
	label := "Alpha · live"
	assert.Equal(t, 67, overlayLabelX(64, label, 80))

	// Past the edge it flips, landing at markerX - 3 - runeWidth.
	assert.Equal(t, 70-3-12, overlayLabelX(70, label, 80))

	// A flip that would start off-canvas clamps to column zero.
	assert.Equal(t, 0, overlayLabelX(2, label, 10))
}

func TestPanelWidthCountsRunes(t *testing.T) {
	lines := []string{"┌──────┐", "ab"}
	assert.Equal(t, 8, panelWidth(lines))
}
