package widget

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notes shows a block of free-form text, word-wrapped to the cell.
//
// Config keys:
//
//	text  the note body (default empty)
type Notes struct {
	mu  sync.Mutex
	cfg map[string]any
}

// NewNotes is the factory for the "notes" kind.
func NewNotes(initial map[string]any) (Instance, error) {
	return &Notes{
		cfg: mergeConfig(map[string]any{"text": ""}, initial),
	}, nil
}

func (n *Notes) Render(width, height int) string {
	n.mu.Lock()
	text := stringOpt(n.cfg, "text", "")
	n.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return lipgloss.NewStyle().Faint(true).Render("(empty note)")
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (n *Notes) Config() map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneConfig(n.cfg)
}

func (n *Notes) SetConfig(patch map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cfg = mergeConfig(n.cfg, patch)
	return nil
}

func (n *Notes) Refresh() {}

func (n *Notes) Destroy() {}

func (n *Notes) SettingsForm() []Field {
	return []Field{
		{Key: "text", Label: "Note text", Kind: "text", Default: ""},
	}
}
