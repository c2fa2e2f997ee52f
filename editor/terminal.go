package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// How long a partial escape sequence may sit in the input before the
// decoder gives up and reports a bare ESC. Matches the VTIME granularity.
const ESCAPE_TIMEOUT_MS = 100

// Terminal owns the tty the editor runs on. It remembers the termios
// state found at startup so every exit path can put it back.
type Terminal struct {
	in, out     *os.File
	origTermios *unix.Termios
}

// NewTerminal returns a Terminal bound to the process's stdin/stdout.
func NewTerminal() *Terminal {
	return newTerminal(os.Stdin, os.Stdout)
}

func newTerminal(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// EnableRawMode puts the terminal into raw mode.
// Input is delivered byte by byte with a 100 ms read timeout, echo and
// line editing are off, and Ctrl-C/Z/S/Q reach the editor as plain bytes.
func (t *Terminal) EnableRawMode() error {
	if !isatty.IsTerminal(t.in.Fd()) || !isatty.IsTerminal(t.out.Fd()) {
		return errors.New("not running in a terminal")
	}

	termios, err := unix.IoctlGetTermios(int(t.in.Fd()), unix.TCGETS)
	if err != nil {
		return fmt.Errorf("tcgetattr: %w", err)
	}
	t.origTermios = termios

	raw := *termios
	// BRKINT: break condition raises SIGINT
	// ICRNL: CR to NL translation
	// INPCK: parity checking
	// ISTRIP: strip eighth bit of each input byte
	// IXON: Ctrl-S/Ctrl-Q software flow control
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// OPOST: output post-processing
	raw.Oflag &^= unix.OPOST
	// CS8: 8-bit characters
	raw.Cflag |= unix.CS8
	// ECHO: echo input
	// ICANON: canonical line mode
	// ISIG: SIGINT/SIGTSTP on Ctrl-C/Ctrl-Z
	// IEXTEN: Ctrl-V literal-next
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// read returns after 0 bytes with a 100 ms per-byte timeout
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	// TCSETSF discards pending input, like tcsetattr with TCSAFLUSH.
	if err := unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETSF, &raw); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	return nil
}

// Restore reinstalls the termios state saved by EnableRawMode. Safe to
// call more than once.
func (t *Terminal) Restore() {
	if t.origTermios != nil {
		unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETSF, t.origTermios)
		t.origTermios = nil
	}
}

// WindowSize reports the terminal dimensions, preferring the kernel
// ioctl and falling back to a cursor-position query.
func (t *Terminal) WindowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return t.cursorPositionFallback()
	}
	return int(ws.Row), int(ws.Col), nil
}

// cursorPositionFallback pushes the cursor to the bottom-right corner and
// asks the terminal where it ended up via a Device Status Report.
func (t *Terminal) cursorPositionFallback() (int, int, error) {
	if _, err := t.out.WriteString(CURSOR_BOTTOM_RIGHT + CURSOR_GET_POSITION); err != nil {
		return 0, 0, err
	}

	// Reply looks like \x1b[24;80R.
	resp := make([]byte, 0, 32)
	for len(resp) < 32 {
		b, ok, err := t.readByte(ESCAPE_TIMEOUT_MS)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			break
		}
		resp = append(resp, b)
		if b == 'R' {
			break
		}
	}

	var rows, cols int
	if _, err := fmt.Sscanf(string(resp), CURSOR_RESPONSE_FORMAT, &rows, &cols); err != nil {
		return 0, 0, errors.New("improper cursor position response")
	}
	return rows, cols, nil
}

// readByte reads a single byte from the terminal. A negative timeout
// blocks until input arrives; otherwise it waits at most timeoutMs and
// reports ok=false on expiry. A raw-mode read timing out (zero bytes)
// also reports ok=false.
func (t *Terminal) readByte(timeoutMs int) (b byte, ok bool, err error) {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		break
	}

	buf := make([]byte, 1)
	n, err := t.in.Read(buf)
	if n == 1 {
		return buf[0], true, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, err
	}
	return 0, false, nil
}

// ReadKey blocks until one logical key is available and returns it.
// Escape sequences that stall past the timeout, and sequences the editor
// does not recognize, come back as a bare ESC.
func (t *Terminal) ReadKey() (int, error) {
	var c byte
	for {
		b, ok, err := t.readByte(-1)
		if err != nil {
			return 0, fmt.Errorf("reading keyboard input: %w", err)
		}
		if ok {
			c = b
			break
		}
	}

	if c != ESC {
		return int(c), nil
	}

	seq0, ok, err := t.readByte(ESCAPE_TIMEOUT_MS)
	if err != nil || !ok {
		return ESC, err
	}
	seq1, ok, err := t.readByte(ESCAPE_TIMEOUT_MS)
	if err != nil || !ok {
		return ESC, err
	}

	switch seq0 {
	case '[':
		if seq1 >= '0' && seq1 <= '9' {
			seq2, ok, err := t.readByte(ESCAPE_TIMEOUT_MS)
			if err != nil || !ok {
				return ESC, err
			}
			if seq2 == '~' {
				switch seq1 {
				case '1', '7':
					return HOME_KEY, nil
				case '3':
					return DELETE_KEY, nil
				case '4', '8':
					return END_KEY, nil
				case '5':
					return PAGE_UP, nil
				case '6':
					return PAGE_DOWN, nil
				}
			}
		} else {
			switch seq1 {
			case 'A':
				return ARROW_UP, nil
			case 'B':
				return ARROW_DOWN, nil
			case 'C':
				return ARROW_RIGHT, nil
			case 'D':
				return ARROW_LEFT, nil
			case 'H':
				return HOME_KEY, nil
			case 'F':
				return END_KEY, nil
			}
		}
	case 'O':
		switch seq1 {
		case 'H':
			return HOME_KEY, nil
		case 'F':
			return END_KEY, nil
		}
	}
	return ESC, nil
}
