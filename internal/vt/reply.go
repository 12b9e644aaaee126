package vt

import (
	"fmt"
	"strconv"
)

const (
	esc        = 0x1b
	csi        = '['
	separator  = ';'
	terminator = 'R'

	// Coordinates are reported as 16-bit values by every terminal we know of.
	maxCoord = 1<<16 - 1
)

// Position is a 1-indexed screen coordinate.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return strconv.Itoa(p.Row) + ", " + strconv.Itoa(p.Col)
}

// ReplyError describes a cursor position report that does not have the
// form ESC [ row ; col R.
type ReplyError struct {
	Reply  []byte
	Offset int
	Reason string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("malformed cursor position reply %q at offset %d: %s", e.Reply, e.Offset, e.Reason)
}

// ParseReply decodes a complete cursor position report, terminator
// included. Both fields must be present and consist of decimal digits only.
func ParseReply(reply []byte) (Position, error) {
	s := replyScanner{buf: reply}
	if !s.accept(esc) {
		return Position{}, s.fail("missing ESC")
	}
	if !s.accept(csi) {
		return Position{}, s.fail("missing '['")
	}
	row, err := s.number("row")
	if err != nil {
		return Position{}, err
	}
	if !s.accept(separator) {
		return Position{}, s.fail("missing column field")
	}
	col, err := s.number("column")
	if err != nil {
		return Position{}, err
	}
	if !s.accept(terminator) {
		return Position{}, s.fail("missing 'R' terminator")
	}
	if s.pos != len(s.buf) {
		return Position{}, s.fail("trailing bytes")
	}
	return Position{Row: row, Col: col}, nil
}

type replyScanner struct {
	buf []byte
	pos int
}

func (s *replyScanner) accept(b byte) bool {
	if s.pos < len(s.buf) && s.buf[s.pos] == b {
		s.pos++
		return true
	}
	return false
}

func (s *replyScanner) number(field string) (int, error) {
	start := s.pos
	n := 0
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > maxCoord {
			return 0, s.fail(field + " out of range")
		}
		s.pos++
	}
	if s.pos == start {
		return 0, s.fail("expected digits for " + field)
	}
	return n, nil
}

func (s *replyScanner) fail(reason string) error {
	return &ReplyError{Reply: s.buf, Offset: s.pos, Reason: reason}
}
