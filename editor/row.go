package editor

import "slices"

/*** row operations ***/

// editorRow keeps a line of text in three parallel forms: the logical
// bytes, their display expansion (tabs become spaces), and one highlight
// tag per rendered byte.
type editorRow struct {
	chars  []byte
	render []byte
	hl     []byte
}

// Convert cursor X to render X. The two differ only where tabs sit left
// of the cursor.
func (row *editorRow) cxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx; j++ {
		if row.chars[j] == '\t' {
			rx += (TAB_STOP - 1) - (rx % TAB_STOP)
		}
		rx++
	}
	return rx
}

// rxToCx is the inverse of cxToRx: the first logical index whose
// cumulative render width exceeds rx. A cursor aimed inside a tab
// expansion snaps to the tab itself.
func (row *editorRow) rxToCx(rx int) int {
	curRx := 0
	var cx int
	for cx = 0; cx < len(row.chars); cx++ {
		if row.chars[cx] == '\t' {
			curRx += (TAB_STOP - 1) - (curRx % TAB_STOP)
		}
		curRx++

		if curRx > rx {
			return cx
		}
	}
	return cx
}

// update recomputes the render form and its highlights from chars.
func (row *editorRow) update(syntax *editorSyntax) {
	tabs := 0
	for _, c := range row.chars {
		if c == '\t' {
			tabs++
		}
	}

	// Worst case: every tab expands to a full stop.
	row.render = make([]byte, 0, len(row.chars)+tabs*(TAB_STOP-1))
	for _, c := range row.chars {
		if c == '\t' {
			row.render = append(row.render, ' ')
			for len(row.render)%TAB_STOP != 0 {
				row.render = append(row.render, ' ')
			}
		} else {
			row.render = append(row.render, c)
		}
	}

	row.updateSyntax(syntax)
}

// InsertRow inserts a row holding chars at position at, shifting later
// rows down.
func (e *Editor) InsertRow(at int, chars []byte) {
	if at < 0 || at > e.totalRows {
		return
	}

	newRow := editorRow{chars: slices.Clone(chars)}
	e.row = slices.Insert(e.row, at, newRow)
	e.row[at].update(e.syntax)
	e.totalRows++
	e.dirty++
}

// DeleteRow removes the row at position at, shifting later rows up.
func (e *Editor) DeleteRow(at int) {
	if at < 0 || at >= e.totalRows {
		return
	}

	e.row = slices.Delete(e.row, at, at+1)
	e.totalRows--
	e.dirty++
}

func (row *editorRow) insertChar(e *Editor, at, c int) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}

	row.chars = slices.Insert(row.chars, at, byte(c))
	row.update(e.syntax)
	e.dirty++
}

func (row *editorRow) appendBytes(e *Editor, s []byte) {
	row.chars = append(row.chars, s...)
	row.update(e.syntax)
	e.dirty++
}

func (row *editorRow) deleteChar(e *Editor, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}

	row.chars = slices.Delete(row.chars, at, at+1)
	row.update(e.syntax)
	e.dirty++
}
