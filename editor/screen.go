package editor

import (
	"fmt"
	"time"
)

/*** append buffer ***/

// appendBuffer collects a whole frame so it reaches the terminal in a
// single write.
type appendBuffer struct {
	b []byte
}

func (ab *appendBuffer) append(s []byte) {
	ab.b = append(ab.b, s...)
}

func (ab *appendBuffer) appendString(s string) {
	ab.b = append(ab.b, s...)
}

/*** output ***/

// Scroll keeps the cursor inside the visible window, recomputing the
// render column first. Runs before every frame.
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < e.totalRows {
		e.rx = e.row[e.cy].cxToRx(e.cx)
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}

	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}
}

func (e *Editor) DrawRows(abuf *appendBuffer) {
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOffset
		if filerow >= e.totalRows {
			if e.totalRows == 0 && y == e.screenRows/3 {
				welcome := "Zen editor -- version " + ZEN_VERSION
				welcomeLen := min(len(welcome), e.screenCols)
				padding := (e.screenCols - welcomeLen) / 2
				if padding > 0 {
					abuf.appendString("~")
					padding--
				}
				for i := 0; i < padding; i++ {
					abuf.appendString(" ")
				}
				abuf.appendString(welcome[:welcomeLen])
			} else {
				abuf.appendString("~")
			}
		} else {
			row := &e.row[filerow]
			lineLen := min(max(len(row.render)-e.colOffset, 0), e.screenCols)

			// Emit a color change only where the highlight changes.
			currentColor := -1
			for j := 0; j < lineLen; j++ {
				c := row.render[e.colOffset+j]
				hl := row.hl[e.colOffset+j]
				if hl == HL_NORMAL {
					if currentColor != -1 {
						abuf.append(fmt.Appendf(nil, COLOR_FORMAT, ANSI_COLOR_DEFAULT))
						currentColor = -1
					}
				} else {
					color := syntaxToColor(hl)
					if color != currentColor {
						abuf.append(fmt.Appendf(nil, COLOR_FORMAT, color))
						currentColor = color
					}
				}
				abuf.append([]byte{c})
			}
			abuf.append(fmt.Appendf(nil, COLOR_FORMAT, ANSI_COLOR_DEFAULT))
		}

		abuf.appendString(CLEAR_LINE)
		abuf.appendString("\r\n")
	}
}

func (e *Editor) DrawStatusBar(abuf *appendBuffer) {
	abuf.appendString(COLORS_INVERT)

	filename := "[No Name]"
	if e.filename != "" {
		filename = e.filename
	}
	dirtyFlag := ""
	if e.dirty > 0 {
		dirtyFlag = "(modified)"
	}
	status := fmt.Sprintf("%.20s - %d lines %s", filename, e.totalRows, dirtyFlag)
	statusLen := min(len(status), e.screenCols)

	filetype := "no ft"
	if e.syntax != nil {
		filetype = e.syntax.filetype
	}
	rstatus := fmt.Sprintf("%s | %d/%d", filetype, e.cy+1, e.totalRows)
	rstatusLen := len(rstatus)

	abuf.appendString(status[:statusLen])
	for statusLen < e.screenCols {
		if e.screenCols-statusLen == rstatusLen {
			abuf.appendString(rstatus)
			break
		}
		abuf.appendString(" ")
		statusLen++
	}

	abuf.appendString(COLORS_RESET)
	abuf.appendString("\r\n")
}

func (e *Editor) DrawMessageBar(abuf *appendBuffer) {
	abuf.appendString(CLEAR_LINE)
	messageLen := min(len(e.statusMessage), e.screenCols)
	if messageLen > 0 && time.Since(e.statusMessageTime) < 5*time.Second {
		abuf.appendString(e.statusMessage[:messageLen])
	}
}

// RefreshScreen composes one frame and writes it with a single call.
func (e *Editor) RefreshScreen() error {
	e.Scroll()

	var abuf appendBuffer

	abuf.appendString(CURSOR_HIDE)
	abuf.appendString(CURSOR_HOME)

	e.DrawRows(&abuf)
	e.DrawStatusBar(&abuf)
	e.DrawMessageBar(&abuf)

	abuf.append(fmt.Appendf(nil, CURSOR_POSITION_FORMAT,
		e.cy-e.rowOffset+1, e.rx-e.colOffset+1))
	abuf.appendString(CURSOR_SHOW)

	if _, err := e.terminal.out.Write(abuf.b); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}
