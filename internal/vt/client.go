// Package vt speaks the small part of the ANSI/VT100 control protocol needed
// to learn and set the cursor position: the device status report (ESC [6n)
// and cursor addressing (ESC [row;colf).
package vt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kobzarvs/rawline/internal/logger"
	"github.com/kobzarvs/rawline/internal/term"
)

const (
	requestPosition = "\x1b[6n"
	eraseToEOL      = "\x1b[K"
)

// Client sends requests on out and reads replies (and keystrokes) from in,
// one byte at a time. Every write is flushed before the call returns, and
// at most one request is in flight.
type Client struct {
	in  io.Reader
	out *bufio.Writer
	b   [1]byte
}

func NewClient(in io.Reader, out io.Writer) *Client {
	return &Client{in: in, out: bufio.NewWriter(out)}
}

// ReadByte reads a single byte from the input stream without buffering
// ahead, so replies and keystrokes are never consumed early.
func (c *Client) ReadByte() (byte, error) {
	if _, err := io.ReadFull(c.in, c.b[:]); err != nil {
		return 0, err
	}
	return c.b[0], nil
}

// QueryPosition asks the terminal where the cursor is and blocks until the
// reply arrives. A malformed reply is reported as *ReplyError.
func (c *Client) QueryPosition() (Position, error) {
	if err := c.send(requestPosition); err != nil {
		return Position{}, err
	}
	var reply []byte
	for {
		b, err := c.ReadByte()
		if err != nil {
			return Position{}, &term.IOError{Op: "read cursor position", Err: err}
		}
		reply = append(reply, b)
		if b == terminator {
			break
		}
	}
	pos, err := ParseReply(reply)
	if err != nil {
		return Position{}, err
	}
	logger.Debug("vt: cursor position", "row", pos.Row, "col", pos.Col)
	return pos, nil
}

// Goto moves the cursor. The terminal sends no reply.
func (c *Client) Goto(row, col int) error {
	return c.send(fmt.Sprintf("\x1b[%d;%df", row, col))
}

// PaintAt writes text starting at the given position.
func (c *Client) PaintAt(text string, row, col int) error {
	if _, err := fmt.Fprintf(c.out, "\x1b[%d;%df", row, col); err != nil {
		return &term.IOError{Op: "write", Err: err}
	}
	return c.send(text)
}

// EraseToEOL clears from the cursor to the end of the line.
func (c *Client) EraseToEOL() error {
	return c.send(eraseToEOL)
}

// Print writes s as is.
func (c *Client) Print(s string) error {
	return c.send(s)
}

func (c *Client) send(s string) error {
	if _, err := c.out.WriteString(s); err != nil {
		return &term.IOError{Op: "write", Err: err}
	}
	if err := c.out.Flush(); err != nil {
		return &term.IOError{Op: "flush", Err: err}
	}
	return nil
}
