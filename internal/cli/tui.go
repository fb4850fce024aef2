package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/griddeck/griddeck/pkg/engine"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/store"
	"github.com/griddeck/griddeck/pkg/widget"
)

// Character geometry of one grid row: rowLines of content plus gapLines of
// spacing. Columns derive from the terminal width.
const (
	rowLines = 3
	gapLines = 1
)

// =============================================================================
// dashboardModel - Interactive grid dashboard
// =============================================================================

// dashboardModel is the bubbletea model for the dashboard.
type dashboardModel struct {
	cli    *CLI
	store  *store.Store
	engine *engine.Engine

	instances map[string]widget.Instance

	width, height int
	scrollY       int

	resizeMode bool
	status     string
	theme      store.Theme

	// menuReq is shared across model copies: the engine's menu callback
	// writes it synchronously during SecondaryClick, the view reads it.
	menuReq *menuRequest
}

type menuRequest struct {
	widgetID string
}

// newDashboardModel builds the model and its engine around a loaded store.
func newDashboardModel(c *CLI, st *store.Store, cfg *Config) dashboardModel {
	m := dashboardModel{
		cli:       c,
		store:     st,
		engine:    engine.New(st, charMetrics(80, st.GridConfig().Cols)),
		instances: make(map[string]widget.Instance),
		width:     80,
		height:    24,
		theme:     st.ThemeValue(),
	}
	if cfg.Theme != "" {
		m.theme = store.Theme(cfg.Theme)
	}
	m.menuReq = &menuRequest{}
	m.engine.SetMenuFunc(func(id string, x, y float64) {
		// Presentation only: the engine requests, the host renders.
		m.menuReq.widgetID = id
	})
	m.syncInstances()
	m.engine.CycleFocus(1)
	return m
}

// charMetrics maps terminal character cells onto the grid: each column is
// width/cols characters wide, each row is rowLines+gapLines lines tall.
func charMetrics(width, cols int) grid.Metrics {
	return grid.Metrics{
		ContainerWidth: float64(width),
		Config:         grid.Config{Cols: cols, RowHeight: rowLines, Gap: gapLines},
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

// =============================================================================
// Update
// =============================================================================

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetMetrics(charMetrics(m.width, m.store.GridConfig().Cols))
		m.engine.SetViewport(engine.Viewport{Top: float64(m.scrollY), Height: float64(m.height - 1)})
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.menuReq.widgetID = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.engine.SessionActive() {
			m.engine.CancelDrag()
			m.engine.CancelResize()
			m.status = "cancelled"
		} else if m.resizeMode {
			m.resizeMode = false
			m.status = ""
		}
		return m, nil

	case "tab":
		m.engine.CycleFocus(1)
		return m, nil
	case "shift+tab":
		m.engine.CycleFocus(-1)
		return m, nil

	case "r":
		m.resizeMode = !m.resizeMode
		if m.resizeMode {
			m.status = "resize mode"
		} else {
			m.status = ""
		}
		return m, nil

	case "m":
		if id := m.engine.Focused(); id != "" {
			if _, err := m.store.ToggleMinimized(id); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil

	case "t":
		m.theme = nextTheme(m.theme)
		if err := m.store.SetTheme(m.theme); err != nil {
			m.status = err.Error()
		} else {
			m.status = "theme: " + string(m.theme)
		}
		return m, nil

	case "a":
		m.addWidget()
		return m, nil

	case "x", "delete":
		if id := m.engine.Focused(); id != "" {
			if err := m.store.RemoveWidget(id); err != nil {
				m.status = err.Error()
			} else {
				m.syncInstances()
				m.engine.CycleFocus(1)
			}
		}
		return m, nil
	}

	if dir, ok := arrowDirection(msg.String()); ok {
		wide := strings.HasPrefix(msg.String(), "shift+")
		var err error
		if m.resizeMode {
			_, err = m.engine.Adjust(dir, wide)
		} else {
			_, err = m.engine.Nudge(dir, wide)
		}
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}
	}
	return m, nil
}

func arrowDirection(key string) (engine.Direction, bool) {
	switch strings.TrimPrefix(key, "shift+") {
	case "up":
		return engine.DirUp, true
	case "down":
		return engine.DirDown, true
	case "left":
		return engine.DirLeft, true
	case "right":
		return engine.DirRight, true
	}
	return 0, false
}

func (m dashboardModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Pointer position in container coordinates: the view may be scrolled.
	px := float64(msg.X)
	py := float64(msg.Y + m.scrollY)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pressAt(px, py)
		case tea.MouseButtonRight:
			m.engine.SecondaryClick(px, py)
		case tea.MouseButtonWheelUp:
			if m.scrollY > 0 {
				m.scrollY--
			}
		case tea.MouseButtonWheelDown:
			m.scrollY++
		}

	case tea.MouseActionMotion:
		if m.engine.Drag() != nil {
			m.applyScroll(m.engine.DragMove(px, py))
		} else if m.engine.Resize() != nil {
			m.engine.ResizeMove(px, py)
		}

	case tea.MouseActionRelease:
		var err error
		if m.engine.Drag() != nil {
			_, err = m.engine.EndDrag()
		} else if m.engine.Resize() != nil {
			_, err = m.engine.EndResize()
		}
		if err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

// pressAt routes a left press to a resize handle or a drag, depending on
// where inside the widget it lands.
func (m *dashboardModel) pressAt(px, py float64) {
	w, ok := m.engine.WidgetAt(px, py)
	if !ok {
		m.engine.Blur()
		return
	}
	if h, ok := m.handleAt(w, px, py); ok {
		if err := m.engine.StartResize(w.ID, h, px, py); err != nil {
			m.status = err.Error()
		}
		return
	}
	if err := m.engine.StartDrag(w.ID, px, py); err != nil {
		m.status = err.Error()
	}
}

// handleAt maps a press near a widget's border to a resize handle. The
// outermost character row/column of the box doubles as the handle strip.
func (m *dashboardModel) handleAt(w store.Widget, px, py float64) (engine.Handle, bool) {
	x0, y0, bw, bh := m.widgetRect(w.Placement)
	left := int(px) <= x0
	right := int(px) >= x0+bw-1
	top := int(py) <= y0
	bottom := int(py) >= y0+bh-1

	switch {
	case top && left:
		return engine.HandleNW, true
	case top && right:
		return engine.HandleNE, true
	case bottom && left:
		return engine.HandleSW, true
	case bottom && right:
		return engine.HandleSE, true
	case top:
		return engine.HandleN, true
	case bottom:
		return engine.HandleS, true
	case left:
		return engine.HandleW, true
	case right:
		return engine.HandleE, true
	}
	return "", false
}

// applyScroll nudges the scroll offset while a drag hugs a viewport edge.
func (m *dashboardModel) applyScroll(s engine.Scroll) {
	switch s {
	case engine.ScrollUp:
		m.scrollY -= int(engine.ScrollSpeed)
		if m.scrollY < 0 {
			m.scrollY = 0
		}
	case engine.ScrollDown:
		m.scrollY += int(engine.ScrollSpeed)
	}
}

// addWidget places a new widget of the least-used builtin kind in the first
// free cell.
func (m *dashboardModel) addWidget() {
	kinds := m.cli.Widgets.Kinds()
	if len(kinds) == 0 {
		return
	}
	counts := make(map[string]int)
	for _, w := range m.store.Widgets() {
		counts[w.Type]++
	}
	kind := kinds[0]
	for _, k := range kinds {
		if counts[k] < counts[kind] {
			kind = k
		}
	}

	placements := make([]grid.Placement, 0)
	for _, w := range m.store.Widgets() {
		placements = append(placements, w.Placement)
	}
	occ := grid.NewOccupancy(placements)
	p := grid.ValidatePosition(grid.Placement{X: 1, Y: 1, W: 3, H: 2}, occ, m.store.GridConfig().Cols, true)

	added, err := m.store.AddWidget(store.Widget{Type: kind, Placement: p})
	if err != nil {
		m.status = err.Error()
		return
	}
	m.syncInstances()
	m.engine.Focus(added.ID)
	m.status = "added " + kind
}

// =============================================================================
// Widget instance lifecycle
// =============================================================================

// syncInstances reconciles live widget instances with the store's widget
// list: missing ones are created, removed ones are destroyed exactly once.
func (m *dashboardModel) syncInstances() {
	current := make(map[string]store.Widget)
	for _, w := range m.store.Widgets() {
		current[w.ID] = w
	}
	for id, inst := range m.instances {
		if _, ok := current[id]; !ok {
			inst.Destroy()
			delete(m.instances, id)
		}
	}
	for id, w := range current {
		if _, ok := m.instances[id]; ok {
			continue
		}
		inst, err := m.cli.Widgets.Create(w.Type, w.Config)
		if err != nil {
			m.cli.Logger.Warn("widget instantiation failed", "type", w.Type, "id", id, "err", err)
			continue
		}
		m.instances[id] = inst
	}
}

// destroyInstances tears down all live instances, called once on exit.
func (m *dashboardModel) destroyInstances() {
	for id, inst := range m.instances {
		inst.Destroy()
		delete(m.instances, id)
	}
}

// =============================================================================
// View
// =============================================================================

// widgetRect converts a grid placement to a character rectangle.
func (m *dashboardModel) widgetRect(p grid.Placement) (x, y, w, h int) {
	cellW := float64(m.width) / float64(m.store.GridConfig().Cols)
	x = int(float64(p.X-1) * cellW)
	w = int(float64(p.W) * cellW)
	y = (p.Y - 1) * (rowLines + gapLines)
	h = p.H*(rowLines+gapLines) - gapLines
	if w < 2 {
		w = 2
	}
	return x, y, w, h
}

func (m dashboardModel) View() string {
	canvas := newCanvas(m.width, m.gridLines())

	drag := m.engine.Drag()
	resize := m.engine.Resize()

	for _, w := range m.store.Widgets() {
		p := w.Placement
		// The session's widget follows its placeholder, not its committed
		// placement.
		if drag != nil && drag.WidgetID == w.ID {
			p = drag.Placeholder()
		}
		if resize != nil && resize.WidgetID == w.ID {
			p = resize.Placeholder()
		}
		x, y, bw, bh := m.widgetRect(p)
		focused := m.engine.Focused() == w.ID
		session := (drag != nil && drag.WidgetID == w.ID) || (resize != nil && resize.WidgetID == w.ID)
		canvas.drawBox(x, y, bw, bh, boxOptions{
			title:   w.Type,
			focused: focused,
			dashed:  session,
			body:    m.widgetBody(w, bw-2, bh-2),
		})
	}

	view := canvas.render(m.scrollY, m.height-1, m.themeStyles())
	return view + "\n" + m.statusBar()
}

// widgetBody renders a widget's content for the given inner size.
func (m dashboardModel) widgetBody(w store.Widget, width, height int) string {
	if w.Minimized {
		return "(minimized)"
	}
	inst, ok := m.instances[w.ID]
	if !ok {
		return "(unavailable)"
	}
	if width < 1 || height < 1 {
		return ""
	}
	return inst.Render(width, height)
}

// gridLines is the container height in lines, covering the lowest widget.
func (m dashboardModel) gridLines() int {
	maxRow := 1
	for _, w := range m.store.Widgets() {
		if b := w.Bottom(); b > maxRow {
			maxRow = b
		}
	}
	if s := m.engine.Drag(); s != nil {
		if b := s.Placeholder().Bottom(); b > maxRow {
			maxRow = b
		}
	}
	if s := m.engine.Resize(); s != nil {
		if b := s.Placeholder().Bottom(); b > maxRow {
			maxRow = b
		}
	}
	lines := maxRow * (rowLines + gapLines)
	if min := m.height - 1; lines < min {
		lines = min
	}
	return lines
}

func (m dashboardModel) statusBar() string {
	styles := m.themeStyles()

	mode := "move"
	if m.resizeMode {
		mode = "resize"
	}
	parts := []string{string(m.theme), mode}
	if id := m.engine.Focused(); id != "" {
		if w, err := m.store.Widget(id); err == nil {
			parts = append(parts, fmt.Sprintf("%s (%d,%d) %dx%d", w.Type, w.X, w.Y, w.W, w.H))
		}
	}
	if m.menuReq.widgetID != "" {
		parts = append(parts, "menu: "+m.menuReq.widgetID+" [m]inimize [x]remove")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	bar := " " + strings.Join(parts, "  ·  ")
	help := "tab focus · r resize · a add · t theme · q quit "

	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(help)
	if gap < 1 {
		gap = 1
	}
	return styles.status.Render(bar + strings.Repeat(" ", gap) + help)
}

// =============================================================================
// Themes
// =============================================================================

type themeStyles struct {
	normal      lipgloss.Style
	focused     lipgloss.Style
	placeholder lipgloss.Style
	status      lipgloss.Style
}

func nextTheme(t store.Theme) store.Theme {
	themes := store.Themes()
	for i, cur := range themes {
		if cur == t {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func (m dashboardModel) themeStyles() themeStyles {
	switch m.theme {
	case store.ThemeLight:
		return themeStyles{
			normal:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			status:      lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252")),
		}
	case store.ThemeAmoled:
		return themeStyles{
			normal:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
			placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			status:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("232")),
		}
	case store.ThemeDark:
		return themeStyles{
			normal:      lipgloss.NewStyle().Foreground(colorDim),
			focused:     lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
			placeholder: lipgloss.NewStyle().Foreground(colorBlue),
			status:      lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236")),
		}
	default: // system
		return themeStyles{
			normal:      lipgloss.NewStyle().Foreground(colorGray),
			focused:     lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
			placeholder: lipgloss.NewStyle().Foreground(colorBlue),
			status:      lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("238")),
		}
	}
}
