package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func testStyles() themeStyles {
	return themeStyles{
		normal:      lipgloss.NewStyle(),
		focused:     lipgloss.NewStyle().Bold(true),
		placeholder: lipgloss.NewStyle().Faint(true),
		status:      lipgloss.NewStyle(),
	}
}

func TestDrawBoxBorders(t *testing.T) {
	c := newCanvas(10, 4)
	c.drawBox(0, 0, 6, 3, boxOptions{})

	lines := strings.Split(stripANSI(c.render(0, 4, testStyles())), "\n")
	if !strings.HasPrefix(lines[0], "╭────╮") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "│    │") {
		t.Errorf("side border = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "╰────╯") {
		t.Errorf("bottom border = %q", lines[2])
	}
}

func TestDrawBoxTitleAndBody(t *testing.T) {
	c := newCanvas(12, 4)
	c.drawBox(0, 0, 10, 4, boxOptions{title: "clock", body: "12:00\nsecond"})

	lines := strings.Split(stripANSI(c.render(0, 4, testStyles())), "\n")
	if !strings.Contains(lines[0], " clock ") {
		t.Errorf("title missing from top border: %q", lines[0])
	}
	if !strings.Contains(lines[1], "12:00") {
		t.Errorf("first body line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "second") {
		t.Errorf("second body line = %q", lines[2])
	}
}

func TestDrawBoxClipsTitleAndBody(t *testing.T) {
	c := newCanvas(8, 3)
	c.drawBox(0, 0, 6, 3, boxOptions{title: "verylongname", body: "abcdefghij\nsecond\nthird"})

	lines := strings.Split(stripANSI(c.render(0, 3, testStyles())), "\n")
	if strings.Contains(lines[0], "verylongname") {
		t.Errorf("title not truncated: %q", lines[0])
	}
	// Interior is 4 wide and 1 tall: the body is cut at both edges.
	if !strings.Contains(lines[1], "abcd") || strings.Contains(lines[1], "abcde") {
		t.Errorf("body not clipped to interior width: %q", lines[1])
	}
	if strings.Contains(stripANSI(c.render(0, 3, testStyles())), "second") {
		t.Error("overflow body lines should be dropped")
	}
}

func TestDrawBoxStyleClasses(t *testing.T) {
	c := newCanvas(20, 3)
	c.drawBox(0, 0, 6, 3, boxOptions{})
	c.drawBox(7, 0, 6, 3, boxOptions{focused: true})
	c.drawBox(14, 0, 6, 3, boxOptions{dashed: true})

	// Each class renders through its own style and border set.
	plain := stripANSI(c.render(0, 3, testStyles()))
	if !strings.Contains(plain, "╭") || !strings.Contains(plain, "╔") || !strings.Contains(plain, "+") {
		t.Errorf("border sets per class missing: %q", plain)
	}
}

func TestDrawBoxLaterDrawWins(t *testing.T) {
	c := newCanvas(12, 4)
	c.drawBox(0, 0, 8, 4, boxOptions{body: "under"})
	c.drawBox(2, 0, 8, 4, boxOptions{dashed: true})

	lines := strings.Split(stripANSI(c.render(0, 4, testStyles())), "\n")
	if strings.Contains(lines[1], "under") {
		t.Errorf("overlapped body should be covered: %q", lines[1])
	}
}

func TestRenderScrollSlice(t *testing.T) {
	c := newCanvas(6, 10)
	c.drawBox(0, 4, 6, 3, boxOptions{})

	out := stripANSI(c.render(4, 3, testStyles()))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("view lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╭") {
		t.Errorf("scrolled view should start at the box top, got %q", lines[0])
	}
}

func TestStripANSI(t *testing.T) {
	styled := "\x1b[1mbold\x1b[0m plain"
	if got := stripANSI(styled); got != "bold plain" {
		t.Errorf("stripANSI = %q", got)
	}
}
