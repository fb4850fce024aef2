package cli

import (
	"regexp"
	"strings"
)

// canvas is a fixed-size character buffer the dashboard view draws widget
// boxes into. Per-cell style classes keep overlap handling simple: later
// draws win, and styling is applied in one pass at render time.
type canvas struct {
	width, height int
	runes         [][]rune
	classes       [][]cellClass
}

type cellClass uint8

const (
	classBlank cellClass = iota
	classNormal
	classFocused
	classPlaceholder
)

func newCanvas(width, height int) *canvas {
	runes := make([][]rune, height)
	classes := make([][]cellClass, height)
	for y := range runes {
		runes[y] = make([]rune, width)
		classes[y] = make([]cellClass, width)
		for x := range runes[y] {
			runes[y][x] = ' '
		}
	}
	return &canvas{width: width, height: height, runes: runes, classes: classes}
}

func (c *canvas) set(x, y int, r rune, class cellClass) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.classes[y][x] = class
}

// boxOptions configures one widget box.
type boxOptions struct {
	title   string
	focused bool
	dashed  bool
	body    string
}

type borderSet struct {
	tl, tr, bl, br, horiz, vert rune
}

var (
	borderNormal  = borderSet{'╭', '╮', '╰', '╯', '─', '│'}
	borderFocused = borderSet{'╔', '╗', '╚', '╝', '═', '║'}
	borderDashed  = borderSet{'+', '+', '+', '+', '┄', '┆'}
)

// drawBox draws a bordered widget box with a title in the top border and
// the body in the interior. Out-of-canvas cells are clipped.
func (c *canvas) drawBox(x, y, w, h int, opts boxOptions) {
	if w < 2 || h < 1 {
		return
	}
	border := borderNormal
	class := classNormal
	if opts.focused {
		border = borderFocused
		class = classFocused
	}
	if opts.dashed {
		border = borderDashed
		class = classPlaceholder
	}

	// Top and bottom borders.
	for i := 1; i < w-1; i++ {
		c.set(x+i, y, border.horiz, class)
		c.set(x+i, y+h-1, border.horiz, class)
	}
	c.set(x, y, border.tl, class)
	c.set(x+w-1, y, border.tr, class)
	c.set(x, y+h-1, border.bl, class)
	c.set(x+w-1, y+h-1, border.br, class)

	// Sides and interior.
	for row := 1; row < h-1; row++ {
		c.set(x, y+row, border.vert, class)
		c.set(x+w-1, y+row, border.vert, class)
		for i := 1; i < w-1; i++ {
			c.set(x+i, y+row, ' ', class)
		}
	}

	// Title in the top border.
	if title := opts.title; title != "" && w > 4 {
		if len(title) > w-4 {
			title = title[:w-4]
		}
		for i, r := range " " + title + " " {
			c.set(x+1+i, y, r, class)
		}
	}

	// Body in the interior.
	if opts.body != "" && h > 2 {
		for row, line := range strings.Split(stripANSI(opts.body), "\n") {
			if row >= h-2 {
				break
			}
			col := 0
			for _, r := range line {
				if col >= w-2 {
					break
				}
				c.set(x+1+col, y+1+row, r, class)
				col++
			}
		}
	}
}

// render materializes the visible slice of the canvas, applying one style
// per cell class.
func (c *canvas) render(scrollY, viewLines int, styles themeStyles) string {
	classStyles := map[cellClass]func(...string) string{
		classNormal:      styles.normal.Render,
		classFocused:     styles.focused.Render,
		classPlaceholder: styles.placeholder.Render,
	}

	var out strings.Builder
	for line := 0; line < viewLines; line++ {
		y := scrollY + line
		if line > 0 {
			out.WriteByte('\n')
		}
		if y < 0 || y >= c.height {
			continue
		}

		// Group runs of the same class so styling stays cheap.
		x := 0
		for x < c.width {
			class := c.classes[y][x]
			start := x
			for x < c.width && c.classes[y][x] == class {
				x++
			}
			seg := string(c.runes[y][start:x])
			if class == classBlank {
				out.WriteString(seg)
			} else {
				out.WriteString(classStyles[class](seg))
			}
		}
	}
	return out.String()
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes SGR escape sequences. Widget bodies may carry their
// own styling; the canvas owns cell styling, so body text is flattened.
func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
