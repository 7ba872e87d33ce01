// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/litescript/atomview/internal/canvas"
	"github.com/litescript/atomview/internal/cluster"
	"github.com/litescript/atomview/internal/facility"
	"github.com/litescript/atomview/internal/geoip"
	"github.com/litescript/atomview/internal/marker"
	"github.com/litescript/atomview/internal/scene"
	"github.com/litescript/atomview/internal/version"
)

// Minimum terminal size the globe view supports.
const (
	minWidth  = 40
	minHeight = 16
)

// footerLines is the screen space reserved below the canvas.
const footerLines = 3

// autoRotateIdle is how long input must be quiet before the globe starts
// drifting on its own.
const autoRotateIdle = 10 * time.Second

// autoRotateDegPerSec is the idle drift speed.
const autoRotateDegPerSec = 3.0

// Msg types for Bubble Tea
type (
	// FrameMsg drives the single render/animation loop.
	FrameMsg time.Time

	// LocateResultMsg carries the outcome of a geolocation lookup.
	LocateResultMsg struct {
		Location geoip.Location
		Err      error
	}
)

// Locator is the one-shot geolocation dependency.
type Locator interface {
	Locate(ctx context.Context) (geoip.Location, error)
}

// Model is the root Bubble Tea model.
type Model struct {
	log   zerolog.Logger
	scene *scene.Scene

	locator       Locator
	locateTimeout time.Duration

	fps        int
	width      int
	height     int
	ready      bool
	locating   bool
	statusMsg  string
	showDetail bool
	lastFrame  time.Time
	lastInput  time.Time
	autoRotate bool

	dragging bool
	dragX    int
	dragY    int
}

// New creates the root UI model.
func New(sc *scene.Scene, locator Locator, locateTimeout time.Duration, fps int, autoRotate bool, log zerolog.Logger) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		log:           log,
		scene:         sc,
		locator:       locator,
		locateTimeout: locateTimeout,
		fps:           fps,
		autoRotate:    autoRotate,
		lastInput:     time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.scene.Resize(msg.Width, m.canvasHeight())
		return m, nil

	case FrameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			dt := now.Sub(m.lastFrame)
			if dt > 250*time.Millisecond {
				dt = 250 * time.Millisecond
			}
			m.advance(dt)
		}
		m.lastFrame = now
		return m, m.frameCmd()

	case LocateResultMsg:
		m.locating = false
		if msg.Err != nil {
			m.statusMsg = locateErrorMessage(msg.Err)
			m.log.Warn().Err(msg.Err).Msg("geolocation failed")
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Flying to %s, %s", msg.Location.City, msg.Location.Country)
		m.scene.RotateToLocation(msg.Location.Latitude, msg.Location.Longitude)
		return m, nil
	}

	return m, nil
}

// advance runs one frame of the scene, including idle auto-rotation.
func (m *Model) advance(dt time.Duration) {
	if m.autoRotate && time.Since(m.lastInput) > autoRotateIdle {
		if _, _, flying := m.scene.FlyToTarget(); !flying {
			m.scene.RotateBy(0, autoRotateDegPerSec*dt.Seconds())
		}
	}
	m.scene.Advance(dt)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastInput = time.Now()
	m.statusMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up":
		m.scene.RotateBy(5, 0)
	case "down":
		m.scene.RotateBy(-5, 0)
	case "left":
		m.scene.RotateBy(0, -5)
	case "right":
		m.scene.RotateBy(0, 5)

	case "+", "=":
		m.scene.ZoomIn()
	case "-", "_":
		m.scene.ZoomOut()
	case "0", "home":
		m.scene.ResetView()
		m.showDetail = false

	case "l":
		m.scene.Renderer().CycleMode()
	case "c":
		clouds := m.scene.Renderer().Clouds()
		clouds.SetVisible(!clouds.Visible())
	case "m":
		m.cycleStyle()

	case "1", "2", "3", "4", "5", "6":
		m.toggleStatus(int(msg.String()[0] - '1'))

	case "g":
		if m.scene.Failed() {
			break
		}
		if !m.locating && m.locator != nil {
			m.locating = true
			return m, m.locateCmd()
		}

	case "enter":
		if m.scene.Selected() != nil {
			m.showDetail = !m.showDetail
		}
	case "esc":
		m.showDetail = false

	case "r":
		if m.scene.Failed() {
			m.scene.Retry()
		}
	}

	return m, nil
}

func (m *Model) cycleStyle() {
	current := m.scene.Style().Name()
	for i, name := range marker.StyleNames {
		if name == current {
			next := marker.StyleNames[(i+1)%len(marker.StyleNames)]
			if err := m.scene.SetStyle(next); err == nil {
				m.statusMsg = "Marker style: " + next
			}
			return
		}
	}
}

// toggleStatus flips the visibility of the i-th status in display order.
func (m *Model) toggleStatus(i int) {
	if i < 0 || i >= len(facility.AllStatuses) {
		return
	}
	status := facility.AllStatuses[i]
	visible := m.scene.VisibleStatuses().Clone()
	visible[status] = !visible[status]
	m.scene.SetVisibleStatuses(visible)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.lastInput = time.Now()
	if msg.Y >= m.canvasHeight() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			// Drag rotates: horizontal cells are half-width, so the
			// longitude step is halved to keep the feel isotropic.
			m.scene.RotateBy(float64(msg.Y-m.dragY)*2, float64(m.dragX-msg.X))
			m.dragX, m.dragY = msg.X, msg.Y
			break
		}
		m.scene.Hover(msg.X, msg.Y)

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scene.ZoomIn()
		case tea.MouseButtonWheelDown:
			m.scene.ZoomOut()
		case tea.MouseButtonLeft:
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}

	case tea.MouseActionRelease:
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			m.dragging = false
			// A release without movement is a click.
			if msg.X == m.dragX && msg.Y == m.dragY {
				if sel := m.scene.Click(msg.X, msg.Y); sel != nil {
					m.showDetail = true
				} else {
					m.showDetail = false
				}
			}
		}
	}
	return m, nil
}

func (m Model) locateCmd() tea.Cmd {
	locator := m.locator
	timeout := m.locateTimeout
	if timeout <= 0 {
		timeout = geoip.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		loc, err := locator.Locate(ctx)
		return LocateResultMsg{Location: loc, Err: err}
	}
}

func locateErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, geoip.ErrTimeout):
		return "Geolocation timed out"
	case errors.Is(err, geoip.ErrDenied):
		return "Geolocation denied by service"
	case errors.Is(err, geoip.ErrUnavailable):
		return "Geolocation service unreachable"
	default:
		return "Geolocation failed"
	}
}

func (m Model) canvasHeight() int {
	h := m.height - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}
	if m.scene.Failed() {
		return m.renderFailed()
	}

	cv := canvas.New(m.width, m.canvasHeight())
	if err := m.scene.Render(cv); err != nil {
		return m.renderFailed()
	}

	m.overlayTooltip(cv)
	if m.showDetail {
		m.overlayDetail(cv)
	}

	return cv.String() + "\n" + m.renderFooter()
}

func (m Model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small: need at least %dx%d", minWidth, minHeight)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#FB923C")).Render(msg)
}

func (m Model) renderFailed() string {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	return errStyle.Render("  Rendering failed.") + "\n" +
		dim.Render("  [r] retry  [q] quit")
}

// overlayTooltip draws the hover tooltip beside the hovered marker.
func (m Model) overlayTooltip(cv *canvas.Canvas) {
	info := m.scene.Hovered()
	if info == nil {
		return
	}

	label := info.Name
	if info.Units > 1 {
		label = fmt.Sprintf("%s (%d units)", info.Name, info.Units)
	}
	label += " · " + info.Status.Description()

	x := overlayLabelX(info.ScreenX, label, cv.Width())
	cv.WriteString(x, info.ScreenY, label, lipgloss.Color(info.Status.Color()))
}

// overlayLabelX places a tooltip beside a marker, flipping to the left side
// when the label would run off the right edge. Widths are in runes to match
// the canvas cell grid.
func overlayLabelX(markerX int, label string, canvasW int) int {
	w := utf8.RuneCountInString(label)
	x := markerX + 3
	if x+w >= canvasW {
		x = markerX - 3 - w
		if x < 0 {
			x = 0
		}
	}
	return x
}

// overlayDetail draws the selected cluster's panel in the top-right corner.
func (m Model) overlayDetail(cv *canvas.Canvas) {
	sel := m.scene.Selected()
	if sel == nil {
		return
	}

	lines := detailLines(sel)
	panelW := panelWidth(lines)
	x := cv.Width() - panelW - 2
	if x < 0 {
		x = 0
	}

	border := lipgloss.Color("60")
	text := lipgloss.Color("#CBD5E1")
	for i, l := range lines {
		cv.WriteString(x, 1+i, strings.Repeat(" ", panelW), border)
		cv.WriteString(x, 1+i, l, text)
	}
}

// panelWidth is the widest line in runes.
func panelWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	return w
}

func (m Model) renderFooter() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var legend []string
	counts := m.scene.StatusCounts()
	visible := m.scene.VisibleStatuses()
	for i, status := range facility.AllStatuses {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(status.Color()))
		entry := fmt.Sprintf("[%d]%s %d", i+1, shortStatusLabel(status), counts[status])
		if visible[status] {
			legend = append(legend, swatch.Render(entry))
		} else {
			legend = append(legend, dim.Render(entry))
		}
	}

	var status string
	switch {
	case m.locating:
		status = accent.Render("◌ locating…")
	case m.statusMsg != "":
		status = dim.Render(m.statusMsg)
	default:
		status = dim.Render(fmt.Sprintf("atomview v%s · %s · %s light · clouds %s",
			version.Version,
			m.scene.Style().Name(),
			m.scene.Renderer().Mode(),
			onOff(m.scene.Renderer().Clouds().Visible())))
	}

	help := dim.Render("arrows: rotate | +/-: zoom | g: locate me | l: light | c: clouds | m: style | 0: reset | q: quit")

	return "  " + strings.Join(legend, " ") + "\n  " + status + "\n  " + help
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// detailLines formats the selected cluster for the detail panel.
func detailLines(sel *cluster.Cluster) []string {
	rep := sel.Representative
	lines := []string{
		"┌ " + sel.DisplayName(),
		"│ " + rep.Country,
		"│ " + rep.Status.Description(),
	}
	if rep.CapacityMW > 0 {
		total := 0.0
		for _, r := range sel.Members {
			total += r.CapacityMW
		}
		lines = append(lines, fmt.Sprintf("│ %.0f MW total", total))
	}
	if rep.ReactorType != "" {
		lines = append(lines, "│ "+rep.ReactorType)
	}
	if sel.Count() > 1 {
		lines = append(lines, fmt.Sprintf("│ %d units at this site", sel.Count()))
		for _, r := range sel.Members {
			lines = append(lines, "│  · "+r.Name)
		}
	}
	lines = append(lines, "└ enter: close")
	return lines
}

// shortStatusLabel abbreviates a status for the one-line legend.
func shortStatusLabel(s facility.Status) string {
	switch s {
	case facility.StatusOperational:
		return "oper"
	case facility.StatusUnderConstruction:
		return "constr"
	case facility.StatusPlanned:
		return "plan"
	case facility.StatusSuspended:
		return "susp"
	case facility.StatusShutdown:
		return "shut"
	case facility.StatusCancelled:
		return "canc"
	default:
		return string(s)
	}
}
