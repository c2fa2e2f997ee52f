package editor

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// openPty returns a master/slave pair, skipping when the environment has
// no pty device.
func openPty(t *testing.T) (master, slave *os.File) {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		slave.Close()
	})
	return master, slave
}

func TestEnableRawModeSetsAndRestoresAttributes(t *testing.T) {
	_, slave := openPty(t)
	term := newTerminal(slave, slave)

	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode: %v", err)
	}
	if term.origTermios == nil {
		t.Fatal("original termios not saved")
	}

	raw, err := unix.IoctlGetTermios(int(slave.Fd()), unix.TCGETS)
	if err != nil {
		t.Fatalf("reading termios back: %v", err)
	}
	if raw.Lflag&(unix.ECHO|unix.ICANON|unix.ISIG|unix.IEXTEN) != 0 {
		t.Errorf("local flags not cleared: %#x", raw.Lflag)
	}
	if raw.Iflag&(unix.BRKINT|unix.ICRNL|unix.INPCK|unix.ISTRIP|unix.IXON) != 0 {
		t.Errorf("input flags not cleared: %#x", raw.Iflag)
	}
	if raw.Oflag&unix.OPOST != 0 {
		t.Errorf("output post-processing not cleared: %#x", raw.Oflag)
	}
	if raw.Cc[unix.VMIN] != 0 || raw.Cc[unix.VTIME] != 1 {
		t.Errorf("VMIN/VTIME = %d/%d, want 0/1", raw.Cc[unix.VMIN], raw.Cc[unix.VTIME])
	}

	term.Restore()
	if term.origTermios != nil {
		t.Error("Restore did not clear the saved state")
	}
	restored, err := unix.IoctlGetTermios(int(slave.Fd()), unix.TCGETS)
	if err != nil {
		t.Fatalf("reading termios back: %v", err)
	}
	if restored.Lflag&unix.ICANON == 0 {
		t.Error("canonical mode not restored")
	}
	term.Restore() // second call is a no-op
}

func TestEnableRawModeRefusesNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	term := newTerminal(r, w)
	if err := term.EnableRawMode(); err == nil {
		t.Error("EnableRawMode on a pipe returned nil, want error")
	}
}

func TestReadKeyDecodesSequences(t *testing.T) {
	master, slave := openPty(t)
	term := newTerminal(slave, slave)
	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode: %v", err)
	}
	defer term.Restore()

	tests := []struct {
		input string
		want  int
	}{
		{"a", 'a'},
		{"Z", 'Z'},
		{"\r", '\r'},
		{string(rune(withControlKey('q'))), withControlKey('q')},
		{"\x1b[A", ARROW_UP},
		{"\x1b[B", ARROW_DOWN},
		{"\x1b[C", ARROW_RIGHT},
		{"\x1b[D", ARROW_LEFT},
		{"\x1b[H", HOME_KEY},
		{"\x1b[F", END_KEY},
		{"\x1bOH", HOME_KEY},
		{"\x1bOF", END_KEY},
		{"\x1b[1~", HOME_KEY},
		{"\x1b[3~", DELETE_KEY},
		{"\x1b[4~", END_KEY},
		{"\x1b[5~", PAGE_UP},
		{"\x1b[6~", PAGE_DOWN},
		{"\x1b[7~", HOME_KEY},
		{"\x1b[8~", END_KEY},
		{"\x1b[Z", ESC}, // unrecognized sequence collapses to ESC
	}

	for _, tt := range tests {
		if _, err := master.WriteString(tt.input); err != nil {
			t.Fatalf("%q: writing to master: %v", tt.input, err)
		}
		got, err := term.ReadKey()
		if err != nil {
			t.Fatalf("%q: ReadKey: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("%q: ReadKey = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestReadKeyBareEscapeTimesOut(t *testing.T) {
	master, slave := openPty(t)
	term := newTerminal(slave, slave)
	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode: %v", err)
	}
	defer term.Restore()

	if _, err := master.WriteString("\x1b"); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	got, err := term.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if got != ESC {
		t.Errorf("ReadKey = %d, want ESC", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("bare ESC took %v, want the decode timeout to cut it short", elapsed)
	}
}

func TestWindowSizeReportsPtySize(t *testing.T) {
	master, slave := openPty(t)
	if err := pty.Setsize(master, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	term := newTerminal(slave, slave)
	rows, cols, err := term.WindowSize()
	if err != nil {
		t.Fatalf("WindowSize: %v", err)
	}
	if rows != 24 || cols != 80 {
		t.Errorf("WindowSize = %dx%d, want 24x80", rows, cols)
	}
}

func TestCursorPositionResponseParsing(t *testing.T) {
	master, slave := openPty(t)
	term := newTerminal(slave, slave)
	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode: %v", err)
	}
	defer term.Restore()

	// Play the terminal side: answer the DSR query with a position.
	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		if _, err := master.Read(buf); err != nil {
			done <- err
			return
		}
		_, err := master.WriteString("\x1b[42;137R")
		done <- err
	}()

	rows, cols, err := term.cursorPositionFallback()
	if err != nil {
		t.Fatalf("cursorPositionFallback: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("terminal side: %v", err)
	}
	if rows != 42 || cols != 137 {
		t.Errorf("fallback size = %dx%d, want 42x137", rows, cols)
	}
}
