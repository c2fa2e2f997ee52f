package editor

import "testing"

func TestUpdateSyntaxHighlightsNumbers(t *testing.T) {
	row := &editorRow{chars: []byte("x 12 3.5 a4")}
	row.update(&HLDB[0])

	N, D := HL_NORMAL, HL_NUMBER
	want := []byte{N, N, D, D, N, D, D, D, N, N, N}
	if len(row.hl) != len(want) {
		t.Fatalf("len(hl) = %d, want %d", len(row.hl), len(want))
	}
	for i := range want {
		if row.hl[i] != want[i] {
			t.Errorf("hl[%d] (%q) = %d, want %d", i, row.render[i], row.hl[i], want[i])
		}
	}
}

func TestUpdateSyntaxWithoutRuleIsAllNormal(t *testing.T) {
	row := &editorRow{chars: []byte("int x = 42;")}
	row.update(nil)

	for i, hl := range row.hl {
		if hl != HL_NORMAL {
			t.Errorf("hl[%d] = %d, want HL_NORMAL", i, hl)
		}
	}
}

func TestUpdateSyntaxNeverProducesMatch(t *testing.T) {
	row := &editorRow{chars: []byte("needle 123")}
	row.update(&HLDB[0])
	for i := range row.hl {
		row.hl[i] = HL_MATCH
	}

	row.update(&HLDB[0])

	for i, hl := range row.hl {
		if hl == HL_MATCH {
			t.Errorf("hl[%d] = HL_MATCH after update, want it cleared", i)
		}
	}
}

func TestNumberAfterSeparatorOnly(t *testing.T) {
	// The digit in "a4" follows a non-separator, the one in "(4" follows
	// a separator.
	row := &editorRow{chars: []byte("a4 (4")}
	row.update(&HLDB[0])

	if row.hl[1] != HL_NORMAL {
		t.Errorf("hl of digit after letter = %d, want HL_NORMAL", row.hl[1])
	}
	if row.hl[4] != HL_NUMBER {
		t.Errorf("hl of digit after separator = %d, want HL_NUMBER", row.hl[4])
	}
}

func TestSelectSyntaxHighlightByExtension(t *testing.T) {
	tests := []struct {
		filename string
		filetype string
	}{
		{"main.c", "c"},
		{"defs.h", "c"},
		{"main.cpp", "c"},
		{"main.go", "go"},
		{"notes.txt", ""},
		{"", ""},
	}

	for _, tt := range tests {
		e := newTestEditor("line 1")
		e.filename = tt.filename
		e.SelectSyntaxHighlight()

		if tt.filetype == "" {
			if e.syntax != nil {
				t.Errorf("%q: syntax = %q, want none", tt.filename, e.syntax.filetype)
			}
			continue
		}
		if e.syntax == nil || e.syntax.filetype != tt.filetype {
			t.Errorf("%q: syntax = %v, want filetype %q", tt.filename, e.syntax, tt.filetype)
		}
	}
}

func TestSelectSyntaxHighlightRederivesRows(t *testing.T) {
	e := newTestEditor("value 42")

	e.filename = "main.c"
	e.SelectSyntaxHighlight()
	if e.row[0].hl[6] != HL_NUMBER {
		t.Fatalf("hl[6] = %d after selecting c, want HL_NUMBER", e.row[0].hl[6])
	}

	// A save-as to an unmatched name clears the rule and the colors.
	e.filename = "notes.txt"
	e.SelectSyntaxHighlight()
	if e.syntax != nil {
		t.Fatalf("syntax = %q, want none", e.syntax.filetype)
	}
	for i, hl := range e.row[0].hl {
		if hl != HL_NORMAL {
			t.Errorf("hl[%d] = %d after clearing rule, want HL_NORMAL", i, hl)
		}
	}
}

func TestSyntaxToColor(t *testing.T) {
	if got := syntaxToColor(HL_NUMBER); got != ANSI_COLOR_RED {
		t.Errorf("NUMBER color = %d, want %d", got, ANSI_COLOR_RED)
	}
	if got := syntaxToColor(HL_MATCH); got != ANSI_COLOR_BLUE {
		t.Errorf("MATCH color = %d, want %d", got, ANSI_COLOR_BLUE)
	}
	if got := syntaxToColor(HL_NORMAL); got != ANSI_COLOR_DEFAULT {
		t.Errorf("NORMAL color = %d, want %d", got, ANSI_COLOR_DEFAULT)
	}
}
