package editor

import "strings"

/*** syntax highlighting ***/

// Highlight tags, one per rendered byte
const (
	HL_NORMAL byte = iota
	HL_NUMBER
	HL_MATCH
)

// Syntax highlighting flags
const (
	HL_HIGHLIGHT_NUMBERS = 1 << 0
)

// ANSI SGR color codes
const (
	ANSI_COLOR_RED     = 31
	ANSI_COLOR_BLUE    = 34
	ANSI_COLOR_DEFAULT = 39
)

type editorSyntax struct {
	filetype  string
	filematch []string
	flags     int
}

// HLDB is the highlight database. Entries are matched against the
// filename in order; patterns starting with a dot match the extension,
// anything else matches as a substring.
var HLDB = []editorSyntax{
	{
		filetype:  "c",
		filematch: []string{".c", ".h", ".cpp"},
		flags:     HL_HIGHLIGHT_NUMBERS,
	},
	{
		filetype:  "go",
		filematch: []string{".go"},
		flags:     HL_HIGHLIGHT_NUMBERS,
	},
}

// A separator ends a number token.
func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0:
		return true
	}
	return strings.IndexByte(",.()+-/*=~%<>[];", c) != -1
}

// updateSyntax repopulates hl from render. MATCH is never produced here;
// the find session paints it directly.
func (row *editorRow) updateSyntax(syntax *editorSyntax) {
	row.hl = make([]byte, len(row.render))

	if syntax == nil {
		return
	}

	prevSep := true
	for i := 0; i < len(row.render); i++ {
		c := row.render[i]
		prevHl := HL_NORMAL
		if i > 0 {
			prevHl = row.hl[i-1]
		}

		if syntax.flags&HL_HIGHLIGHT_NUMBERS != 0 {
			if (isDigit(c) && (prevSep || prevHl == HL_NUMBER)) ||
				(c == '.' && prevHl == HL_NUMBER) {
				row.hl[i] = HL_NUMBER
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
	}
}

func syntaxToColor(hl byte) int {
	switch hl {
	case HL_NUMBER:
		return ANSI_COLOR_RED
	case HL_MATCH:
		return ANSI_COLOR_BLUE
	default:
		return ANSI_COLOR_DEFAULT
	}
}

// SelectSyntaxHighlight picks the highlight rule matching the current
// filename and re-derives every row. Rows are re-derived on a cleared
// rule too, so no stale colors survive a save-as.
func (e *Editor) SelectSyntaxHighlight() {
	e.syntax = nil

	if e.filename != "" {
		var ext string
		if lastDot := strings.LastIndex(e.filename, "."); lastDot != -1 {
			ext = e.filename[lastDot:]
		}

	match:
		for j := range HLDB {
			s := &HLDB[j]
			for _, pattern := range s.filematch {
				isExt := pattern[0] == '.'
				if (isExt && ext != "" && ext == pattern) ||
					(!isExt && strings.Contains(e.filename, pattern)) {
					e.syntax = s
					break match
				}
			}
		}
	}

	for filerow := 0; filerow < e.totalRows; filerow++ {
		e.row[filerow].updateSyntax(e.syntax)
	}
}
