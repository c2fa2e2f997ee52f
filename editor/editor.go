package editor

import (
	"errors"
	"fmt"
	"time"
)

/*** helper ***/

// Config constants
const (
	ZEN_VERSION = "0.0.1"
	TAB_STOP    = 4
	QUIT_TIMES  = 3
)

// Key aliases
const (
	ESC        = '\x1b'
	BACKSPACE  = 127 // ASCII backspace
	ARROW_LEFT = iota + 1000
	ARROW_RIGHT
	ARROW_UP
	ARROW_DOWN
	DELETE_KEY
	HOME_KEY
	END_KEY
	PAGE_UP
	PAGE_DOWN
)

// ErrQuit threads a clean Ctrl-Q exit out of the dispatch loop.
var ErrQuit = errors.New("quit editor")

// Check if the byte is a control character
func isControl(c byte) bool {
	return c < 32 || c == 127
}

// Check if the byte is a digit character
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Convert a character to its control key equivalent
func withControlKey(c int) int {
	return c & 0x1f
}

/*** data ***/

// Editor represents the text editor state
type Editor struct {
	cx, cy            int
	rx                int
	rowOffset         int
	colOffset         int
	screenRows        int
	screenCols        int
	totalRows         int
	row               []editorRow
	dirty             int // captures if and how much edits are made
	filename          string
	statusMessage     string
	statusMessageTime time.Time
	syntax            *editorSyntax
	terminal          *Terminal
	quitTimes         int
}

/*** init ***/

// New creates an Editor bound to the process terminal. The buffer is
// empty, the cursor is at the origin and no syntax rule is selected.
func New() *Editor {
	return &Editor{
		terminal:  NewTerminal(),
		quitTimes: QUIT_TIMES,
	}
}

// Init enters raw mode and measures the window. The bottom two screen
// lines are reserved for the status and message bars.
func (e *Editor) Init() error {
	if err := e.terminal.EnableRawMode(); err != nil {
		return err
	}
	rows, cols, err := e.terminal.WindowSize()
	if err != nil {
		// Raw mode is already on; put the terminal back before the
		// caller reports the failure and exits.
		e.Shutdown()
		return fmt.Errorf("getting window size: %w", err)
	}
	e.screenRows = rows - 2
	e.screenCols = cols
	return nil
}

// Shutdown clears the screen and restores the saved terminal attributes.
// It runs on every exit path, fatal ones included.
func (e *Editor) Shutdown() {
	e.terminal.out.WriteString(CLEAR_SCREEN + CURSOR_HOME)
	e.terminal.Restore()
}

// SetStatusMessage formats a transient message for the message bar.
// Messages are capped at 80 bytes and expire after 5 seconds.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > 80 {
		msg = msg[:80]
	}
	e.statusMessage = msg
	e.statusMessageTime = time.Now()
}

/*** editor operations ***/

func (e *Editor) InsertChar(c int) {
	if e.cy == e.totalRows {
		e.InsertRow(e.totalRows, nil)
	}
	e.row[e.cy].insertChar(e, e.cx, c)
	e.cx++
}

func (e *Editor) InsertNewline() {
	if e.cx == 0 {
		e.InsertRow(e.cy, nil)
	} else {
		row := &e.row[e.cy]

		// Move everything from the cursor onward to a new row below.
		remaining := make([]byte, len(row.chars)-e.cx)
		copy(remaining, row.chars[e.cx:])
		e.InsertRow(e.cy+1, remaining)

		// InsertRow may have reallocated the slice; re-take the pointer.
		row = &e.row[e.cy]
		row.chars = row.chars[:e.cx]
		row.update(e.syntax)
	}
	e.cy++
	e.cx = 0
}

func (e *Editor) DeleteChar() {
	if e.cy == e.totalRows {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	row := &e.row[e.cy]
	if e.cx > 0 {
		row.deleteChar(e, e.cx-1)
		e.cx--
	} else {
		e.cx = len(e.row[e.cy-1].chars)
		e.row[e.cy-1].appendBytes(e, row.chars)
		e.DeleteRow(e.cy)
		e.cy--
	}
}

/*** input ***/

func (e *Editor) MoveCursor(key int) {
	var row *editorRow
	if e.cy < e.totalRows {
		row = &e.row[e.cy]
	}

	switch key {
	case ARROW_LEFT:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.row[e.cy].chars)
		}
	case ARROW_RIGHT:
		if row != nil && e.cx < len(row.chars) {
			e.cx++
		} else if row != nil && e.cx == len(row.chars) {
			e.cy++
			e.cx = 0
		}
	case ARROW_UP:
		if e.cy != 0 {
			e.cy--
		}
	case ARROW_DOWN:
		if e.cy < e.totalRows {
			e.cy++
		}
	}

	// Snap the cursor onto the row it landed on.
	rowLen := 0
	if e.cy < e.totalRows {
		rowLen = len(e.row[e.cy].chars)
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
}

// ProcessKeypress reads one logical key and dispatches it. It returns
// ErrQuit on a confirmed Ctrl-Q and a plain error on terminal failure.
func (e *Editor) ProcessKeypress() error {
	key, err := e.terminal.ReadKey()
	if err != nil {
		return err
	}

	switch key {
	case '\r':
		e.InsertNewline()

	case withControlKey('q'):
		if e.dirty > 0 {
			e.quitTimes--
			if e.quitTimes > 0 {
				e.SetStatusMessage("WARNING!!! File has unsaved changes. "+
					"Press Ctrl-Q %d more times to quit.", e.quitTimes)
				return nil
			}
		}
		return ErrQuit

	case withControlKey('s'):
		if err := e.Save(); err != nil {
			return err
		}

	case withControlKey('f'):
		if err := e.Find(); err != nil {
			return err
		}

	case HOME_KEY:
		e.cx = 0

	case END_KEY:
		if e.cy < e.totalRows {
			e.cx = len(e.row[e.cy].chars)
		}

	case BACKSPACE, withControlKey('h'), DELETE_KEY:
		if key == DELETE_KEY {
			e.MoveCursor(ARROW_RIGHT)
		}
		e.DeleteChar()

	case PAGE_UP:
		e.cy = e.rowOffset
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_UP)
		}

	case PAGE_DOWN:
		e.cy = min(e.rowOffset+e.screenRows-1, e.totalRows)
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_DOWN)
		}

	case ARROW_LEFT, ARROW_RIGHT, ARROW_UP, ARROW_DOWN:
		e.MoveCursor(key)

	case withControlKey('l'), ESC:
		// Ctrl-L asks for a repaint, which happens every cycle anyway.

	default:
		e.InsertChar(key)
	}

	e.quitTimes = QUIT_TIMES
	return nil
}
