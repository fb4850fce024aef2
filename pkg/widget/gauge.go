package widget

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/griddeck/griddeck/pkg/errors"
)

var gaugeLabelStyle = lipgloss.NewStyle().Faint(true)

// Gauge renders a labeled horizontal bar for a percentage value.
//
// Config keys:
//
//	label  text shown above the bar (default "gauge")
//	value  0..100 (default 0)
type Gauge struct {
	mu  sync.Mutex
	cfg map[string]any
}

// NewGauge is the factory for the "gauge" kind.
func NewGauge(initial map[string]any) (Instance, error) {
	g := &Gauge{
		cfg: mergeConfig(map[string]any{"label": "gauge", "value": float64(0)}, initial),
	}
	if v := floatOpt(g.cfg, "value", 0); v < 0 || v > 100 {
		return nil, errors.New(errors.ErrCodeInvalidWidget, "gauge value %.1f out of range [0,100]", v)
	}
	return g, nil
}

func (g *Gauge) Render(width, height int) string {
	g.mu.Lock()
	label := stringOpt(g.cfg, "label", "gauge")
	value := floatOpt(g.cfg, "value", 0)
	g.mu.Unlock()

	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	barWidth := width - 7 // room for " 100%"
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int(value / 100 * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	out := fmt.Sprintf("%s %3.0f%%", bar, value)
	if height > 1 {
		out = gaugeLabelStyle.Render(label) + "\n" + out
	}
	return out
}

func (g *Gauge) Config() map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneConfig(g.cfg)
}

func (g *Gauge) SetConfig(patch map[string]any) error {
	if v, ok := patch["value"]; ok {
		if f := floatOpt(map[string]any{"value": v}, "value", -1); f < 0 || f > 100 {
			return errors.New(errors.ErrCodeInvalidWidget, "gauge value out of range [0,100]")
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = mergeConfig(g.cfg, patch)
	return nil
}

func (g *Gauge) Refresh() {}

func (g *Gauge) Destroy() {}

func (g *Gauge) SettingsForm() []Field {
	return []Field{
		{Key: "label", Label: "Label", Kind: "text", Default: "gauge"},
		{Key: "value", Label: "Value (0-100)", Kind: "number", Default: 0},
	}
}
