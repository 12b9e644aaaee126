// Package term switches the controlling terminal between canonical and raw
// input modes and keeps the original mode recoverable.
package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Device is the only native capability the rest of the program needs:
// reading and applying a terminal attribute record.
type Device interface {
	GetAttr() (*unix.Termios, error)
	SetAttr(attrs *unix.Termios) error
}

type fdDevice struct {
	fd int
}

// NewDevice returns a Device backed by ioctl calls on fd.
func NewDevice(fd int) Device {
	return fdDevice{fd: fd}
}

func (d fdDevice) GetAttr() (*unix.Termios, error) {
	return unix.IoctlGetTermios(d.fd, ioctlGetAttr)
}

// SetAttr applies attrs immediately (TCSANOW).
func (d fdDevice) SetAttr(attrs *unix.Termios) error {
	return unix.IoctlSetTermios(d.fd, ioctlSetAttr, attrs)
}

// IOError reports a failed terminal or stream operation together with the
// underlying OS error.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
