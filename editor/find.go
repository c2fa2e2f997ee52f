package editor

import "bytes"

/*** find ***/

// viewportState is a snapshot of the cursor and scroll offsets, taken on
// entry to a find session so cancellation can put the view back.
type viewportState struct {
	cx, cy    int
	colOffset int
	rowOffset int
}

func (e *Editor) saveViewport() viewportState {
	return viewportState{
		cx:        e.cx,
		cy:        e.cy,
		colOffset: e.colOffset,
		rowOffset: e.rowOffset,
	}
}

func (e *Editor) restoreViewport(v viewportState) {
	e.cx = v.cx
	e.cy = v.cy
	e.colOffset = v.colOffset
	e.rowOffset = v.rowOffset
}

// findState lives for one find session. It tracks the row of the most
// recent hit, the scan direction, and the highlight snapshot of the row
// currently painted with MATCH.
type findState struct {
	lastMatch   int
	direction   int
	savedHlLine int
	savedHl     []byte
}

// onKey is the per-keystroke search callback. Arrow keys pick the scan
// direction, any edit restarts from the top, and each invocation first
// repairs the highlight it painted last time.
func (fs *findState) onKey(e *Editor, query []byte, key int) {
	if fs.savedHl != nil {
		copy(e.row[fs.savedHlLine].hl, fs.savedHl)
		fs.savedHl = nil
	}

	switch key {
	case '\r', ESC:
		fs.lastMatch = -1
		fs.direction = 1
		return
	case ARROW_RIGHT, ARROW_DOWN:
		fs.direction = 1
	case ARROW_LEFT, ARROW_UP:
		fs.direction = -1
	default:
		fs.lastMatch = -1
		fs.direction = 1
	}

	if fs.lastMatch == -1 {
		fs.direction = 1
	}
	current := fs.lastMatch

	for i := 0; i < e.totalRows; i++ {
		current += fs.direction
		if current == -1 {
			current = e.totalRows - 1
		} else if current == e.totalRows {
			current = 0
		}

		row := &e.row[current]
		match := bytes.Index(row.render, query)
		if match == -1 {
			continue
		}

		fs.lastMatch = current
		e.cy = current
		e.cx = row.rxToCx(match)
		// Force the scroll pass to bring the match to the top.
		e.rowOffset = e.totalRows

		fs.savedHlLine = current
		fs.savedHl = make([]byte, len(row.hl))
		copy(fs.savedHl, row.hl)
		for k := match; k < match+len(query) && k < len(row.hl); k++ {
			row.hl[k] = HL_MATCH
		}
		break
	}
}

// Find runs an incremental search session. Cancelling restores the
// viewport saved on entry; committing leaves the cursor on the hit.
func (e *Editor) Find() error {
	saved := e.saveViewport()
	fs := &findState{lastMatch: -1, direction: 1}

	query, err := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", func(q []byte, key int) {
		fs.onKey(e, q, key)
	})
	if err != nil {
		return err
	}

	if query == "" {
		e.restoreViewport(saved)
	}
	return nil
}
