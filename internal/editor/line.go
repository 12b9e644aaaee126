package editor

// LineBuffer is the unsubmitted input line. Bytes are treated as single
// ASCII characters.
type LineBuffer struct {
	buf []byte
}

func (l *LineBuffer) Append(b byte) {
	l.buf = append(l.buf, b)
}

// Pop removes the last character. It reports false on an empty buffer.
func (l *LineBuffer) Pop() bool {
	if len(l.buf) == 0 {
		return false
	}
	l.buf = l.buf[:len(l.buf)-1]
	return true
}

func (l *LineBuffer) Reset() {
	l.buf = l.buf[:0]
}

func (l *LineBuffer) Len() int {
	return len(l.buf)
}

func (l *LineBuffer) String() string {
	return string(l.buf)
}
