package editor

/*** prompt ***/

// Prompt runs a modal line input in the message bar. The format string
// carries one %s slot for the buffer so far. The callback, if any, sees
// the buffer after every keystroke, including the ESC or Enter that ends
// the session. ESC cancels and returns the empty string; Enter commits a
// non-empty buffer.
func (e *Editor) Prompt(prompt string, callback func([]byte, int)) (string, error) {
	bufSize := 128
	buf := make([]byte, 0, bufSize)

	for {
		e.SetStatusMessage(prompt, string(buf))
		if err := e.RefreshScreen(); err != nil {
			return "", err
		}

		key, err := e.terminal.ReadKey()
		if err != nil {
			return "", err
		}

		switch key {
		case DELETE_KEY, BACKSPACE, withControlKey('h'):
			if len(buf) != 0 {
				buf = buf[:len(buf)-1]
			}

		case ESC:
			e.SetStatusMessage("")
			if callback != nil {
				callback(buf, key)
			}
			return "", nil

		case '\r':
			if len(buf) != 0 {
				e.SetStatusMessage("")
				if callback != nil {
					callback(buf, key)
				}
				return string(buf), nil
			}

		default:
			if key < 128 && !isControl(byte(key)) {
				if len(buf) == bufSize-1 {
					bufSize *= 2
					buf = append(make([]byte, 0, bufSize), buf...)
				}
				buf = append(buf, byte(key))
			}
		}

		if callback != nil {
			callback(buf, key)
		}
	}
}
