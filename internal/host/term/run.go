package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cursortrail/internal/color"
	"github.com/dshills/cursortrail/internal/extension"
	"github.com/dshills/cursortrail/internal/host"
)

// Run initializes the screen and blocks in the event loop until the user
// quits with q or Escape.
//
// Keys: arrows and j/k move the cursor, Ctrl-D/Ctrl-U move half a page, g/G
// jump to the first/last line, 1-9 jump proportionally into the file, c and
// C invoke the clear commands, t cycles the colorscheme.
func (h *Host) Run() error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	defer h.screen.Fini()

	// Repaint ticker so debounced marker placements show up without
	// requiring another key press.
	redraw := time.NewTicker(50 * time.Millisecond)
	defer redraw.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	h.draw()
	for {
		select {
		case <-h.quit:
			return nil
		case <-redraw.C:
			h.draw()
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				h.screen.Sync()
				h.draw()
			case *tcell.EventKey:
				if h.handleKey(tev) {
					return nil
				}
				h.draw()
			}
		}
	}
}

// handleKey processes one key event; it reports true on quit.
func (h *Host) handleKey(ev *tcell.EventKey) bool {
	_, height := h.screen.Size()
	page := height - 2
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		h.moveCursor(-1)
	case tcell.KeyDown:
		h.moveCursor(1)
	case tcell.KeyCtrlD:
		h.moveCursor(page / 2)
	case tcell.KeyCtrlU:
		h.moveCursor(-page / 2)
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return true
		case 'j':
			h.moveCursor(1)
		case 'k':
			h.moveCursor(-1)
		case 'g':
			h.jumpTo(1)
		case 'G':
			h.jumpTo(len(h.lines))
		case 'c':
			h.invoke(extension.CommandClear)
		case 'C':
			h.invoke(extension.CommandClearAll)
		case 't':
			h.cycleScheme()
		default:
			if r >= '1' && r <= '9' {
				h.jumpTo(1 + int(r-'1')*len(h.lines)/9)
			}
		}
	}
	return false
}

func (h *Host) moveCursor(delta int) {
	h.mu.Lock()
	line := h.cursorLine + delta
	if line < 1 {
		line = 1
	}
	if line > len(h.lines) {
		line = len(h.lines)
	}
	changed := line != h.cursorLine
	h.cursorLine = line
	h.mu.Unlock()

	if changed {
		h.emit(host.Event{
			Topic:  host.TopicCursorMoved,
			Buffer: mainBuffer,
			Window: mainWindow,
			Line:   line,
		})
	}
}

func (h *Host) jumpTo(line int) {
	h.mu.Lock()
	current := h.cursorLine
	h.mu.Unlock()
	h.moveCursor(line - current)
}

// cycleScheme activates the next registered colorscheme and emits the
// colorscheme-changed event the extension listens for.
func (h *Host) cycleScheme() {
	names := h.themes.Names()
	if len(names) < 2 {
		return
	}
	current := h.themes.Current()
	for i, name := range names {
		if name == current {
			next := names[(i+1)%len(names)]
			if err := h.themes.SetCurrent(next); err == nil {
				h.Notify(host.LevelInfo, "colorscheme "+next)
				h.emit(host.Event{Topic: host.TopicColorschemeChanged, Buffer: mainBuffer})
			}
			return
		}
	}
}

func (h *Host) draw() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.screen.Clear()
	width, height := h.screen.Size()
	textRows := height - 1
	if textRows < 1 {
		textRows = 1
	}

	// Keep the cursor in view.
	cur := h.cursorLine - 1
	if cur < h.scrollTop {
		h.scrollTop = cur
	}
	if cur >= h.scrollTop+textRows {
		h.scrollTop = cur - textRows + 1
	}

	// At most one marker per line; index the placed signs by line.
	markers := make(map[int]signDef)
	for _, p := range h.placed {
		if s, ok := h.signs[p.sign]; ok {
			markers[p.line] = s
		}
	}

	textStyle := tcell.StyleDefault
	if fg, ok := h.themes.Lookup("Normal"); ok {
		if c, err := color.ParseHex(fg); err == nil {
			textStyle = textStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
	}
	cursorStyle := textStyle.Reverse(true)

	for row := 0; row < textRows; row++ {
		idx := h.scrollTop + row
		if idx >= len(h.lines) {
			break
		}
		line := idx + 1

		// Gutter cell.
		if s, ok := markers[line]; ok {
			style := tcell.StyleDefault
			if def, ok := h.styles[s.style]; ok {
				if c, err := color.ParseHex(def.fg); err == nil {
					style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
				}
				style = style.Bold(def.bold)
			}
			glyph := ' '
			for _, r := range s.glyph {
				glyph = r
				break
			}
			h.screen.SetContent(0, row, glyph, nil, style)
		}

		// Text.
		st := textStyle
		if line == h.cursorLine {
			st = cursorStyle
		}
		col := gutterWidth
		for _, r := range h.lines[idx] {
			if col >= width {
				break
			}
			h.screen.SetContent(col, row, r, nil, st)
			col++
		}
	}

	// Status line.
	status := h.status
	if status == "" || time.Since(h.statusTime) > 4*time.Second {
		status = h.name
	}
	statusStyle := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, height-1, ' ', nil, statusStyle)
	}
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		h.screen.SetContent(col, height-1, r, nil, statusStyle)
		col++
	}

	h.screen.Show()
}
