package widget

import (
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	clockTimeStyle = lipgloss.NewStyle().Bold(true)
	clockDateStyle = lipgloss.NewStyle().Faint(true)
)

// Clock displays the current time, optionally with the date.
//
// Config keys:
//
//	format    time layout string (default "15:04:05")
//	show_date whether to render the date line (default true)
type Clock struct {
	mu  sync.Mutex
	cfg map[string]any
	now func() time.Time // test seam
}

// NewClock is the factory for the "clock" kind.
func NewClock(initial map[string]any) (Instance, error) {
	return &Clock{
		cfg: mergeConfig(map[string]any{
			"format":    "15:04:05",
			"show_date": true,
		}, initial),
		now: time.Now,
	}, nil
}

func (c *Clock) Render(width, height int) string {
	c.mu.Lock()
	format := stringOpt(c.cfg, "format", "15:04:05")
	showDate := boolOpt(c.cfg, "show_date", true)
	now := c.now()
	c.mu.Unlock()

	lines := clockTimeStyle.Render(now.Format(format))
	if showDate && height > 1 {
		lines += "\n" + clockDateStyle.Render(now.Format("Mon Jan 2"))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lines)
}

func (c *Clock) Config() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneConfig(c.cfg)
}

func (c *Clock) SetConfig(patch map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = mergeConfig(c.cfg, patch)
	return nil
}

func (c *Clock) Refresh() {}

func (c *Clock) Destroy() {}

func (c *Clock) SettingsForm() []Field {
	return []Field{
		{Key: "format", Label: "Time format", Kind: "text", Default: "15:04:05"},
		{Key: "show_date", Label: "Show date", Kind: "bool", Default: true},
	}
}
