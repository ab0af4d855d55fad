package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/kestrel-editor/kestrel/internal/engine/cursor"
	"github.com/kestrel-editor/kestrel/internal/highlight"
)

// tcellColor converts a hex color string to a tcell color. Empty or
// malformed strings map to the terminal default.
func tcellColor(hex string) tcell.Color {
	if hex == "" {
		return tcell.ColorDefault
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// tcellStyle converts a highlight style on the theme background into
// a terminal style.
func tcellStyle(s highlight.Style, background string) tcell.Style {
	st := tcell.StyleDefault.Foreground(tcellColor(s.Foreground))
	bg := s.Background
	if bg == "" {
		bg = background
	}
	st = st.Background(tcellColor(bg))
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// draw paints the full frame: content with highlight spans, then the
// status bar on the bottom row.
func (u *UI) draw() {
	width, height := u.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	contentRows := height - 1

	doc := u.editor.Document()
	snap := doc.Snapshot()
	theme := doc.Theme()
	spans := doc.Highlight()
	text := snap.Text()

	cur := snap.Cursor()
	u.scrollTo(cur.Line, contentRows)

	sel, hasSel := snap.Selection()
	if hasSel {
		sel = sel.Normalize()
	}

	base := tcellStyle(theme.Default(), theme.Background())
	u.screen.SetStyle(base)
	u.screen.Clear()

	// Index spans by line once; they arrive in document order.
	byLine := make(map[int][]highlight.Span, snap.LineCount())
	for _, sp := range spans {
		byLine[sp.Line] = append(byLine[sp.Line], sp)
	}

	cursorX, cursorY := -1, -1
	for row := 0; row < contentRows; row++ {
		line := u.top + row
		if line >= snap.LineCount() {
			break
		}
		x := 0
		col := 0
		for _, sp := range byLine[line] {
			seg := text[sp.Start:sp.End]
			if n := len(seg); n > 0 && seg[n-1] == '\n' {
				seg = seg[:n-1]
			}
			style := tcellStyle(sp.Style, theme.Background())
			for len(seg) > 0 {
				cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(seg, -1)
				seg = rest

				st := style
				if hasSel && sel.Contains(cursor.Position{Line: line, Col: col}) {
					st = st.Reverse(true)
				}
				if line == cur.Line && col == cur.Col {
					cursorX, cursorY = x, row
				}

				runes := []rune(cluster)
				w := runewidth.StringWidth(cluster)
				if w < 1 {
					w = 1
				}
				if x < width {
					u.screen.SetContent(x, row, runes[0], runes[1:], st)
				}
				x += w
				col++
			}
		}
		if line == cur.Line && cursorX < 0 {
			cursorX, cursorY = x, row
		}
	}

	u.drawStatus(width, height-1)

	if cursorX >= 0 && cursorX < width {
		u.screen.ShowCursor(cursorX, cursorY)
	} else {
		u.screen.HideCursor()
	}

	u.screen.Show()
}

// scrollTo keeps the cursor line inside the viewport.
func (u *UI) scrollTo(line, rows int) {
	if rows < 1 {
		rows = 1
	}
	if line < u.top {
		u.top = line
	}
	if line >= u.top+rows {
		u.top = line - rows + 1
	}
}

// drawStatus renders "title * | lang  ending  theme  line:col" on one
// row, title on the left, position block on the right.
func (u *UI) drawStatus(width, y int) {
	st := u.editor.Status()

	theme := u.editor.Document().Theme()
	style := tcellStyle(theme.Default(), theme.Background()).Reverse(true)

	left := st.Title
	if st.Dirty {
		left += " *"
	}
	right := fmt.Sprintf("%s  %s  %s  %s", st.Language, st.LineEnding, st.Theme, st.Position)

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		u.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}

	rx := width - runewidth.StringWidth(right)
	if rx > runewidth.StringWidth(left)+1 {
		for _, r := range right {
			u.screen.SetContent(rx, y, r, nil, style)
			rx += runewidth.RuneWidth(r)
		}
	}
}
