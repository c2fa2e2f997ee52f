package editor

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

/*** file i/o ***/

// rowsToBytes serializes the buffer: every row followed by a newline,
// the last one included.
func (e *Editor) rowsToBytes() []byte {
	total := 0
	for i := range e.row {
		total += len(e.row[i].chars) + 1
	}

	var buf bytes.Buffer
	buf.Grow(total)
	for i := range e.row {
		buf.Write(e.row[i].chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Open reads filename into the buffer. Both \n and \r\n endings are
// recognized and stripped. A read failure is fatal to the caller.
func (e *Editor) Open(filename string) error {
	e.filename = filename
	e.SelectSyntaxHighlight()

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		e.InsertRow(e.totalRows, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	e.dirty = 0
	return nil
}

// Save writes the buffer to disk, prompting for a filename first if none
// is set. I/O failures are reported in the message bar and leave dirty
// untouched; only a terminal failure inside the prompt escalates.
func (e *Editor) Save() error {
	if e.filename == "" {
		filename, err := e.Prompt("Save as: %s (ESC to cancel)", nil)
		if err != nil {
			return err
		}
		if filename == "" {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.filename = filename
		e.SelectSyntaxHighlight()
	}

	buf := e.rowsToBytes()

	file, err := os.OpenFile(e.filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return nil
	}
	defer file.Close()

	if err := file.Truncate(int64(len(buf))); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return nil
	}
	n, err := file.Write(buf)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return nil
	}
	if n != len(buf) {
		e.SetStatusMessage("Can't save! Partial write: %d/%d bytes", n, len(buf))
		return nil
	}

	e.SetStatusMessage("%d bytes written to disk", len(buf))
	e.dirty = 0
	return nil
}
