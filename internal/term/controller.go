package term

import (
	"golang.org/x/sys/unix"

	"github.com/kobzarvs/rawline/internal/logger"
)

// Controller owns the raw-mode state of one terminal device.
//
// The attribute record observed on the first EnableRaw is kept as the
// original and is what DisableRaw puts back; later EnableRaw calls never
// replace it, so entering raw mode twice cannot lose the canonical settings.
type Controller struct {
	dev        Device
	rawEnabled bool
	original   *unix.Termios
}

func NewController(dev Device) *Controller {
	return &Controller{dev: dev}
}

// EnableRaw switches the device to raw mode. A failure is returned as
// *IOError; state set before the failure is kept.
func (c *Controller) EnableRaw() error {
	attrs, err := c.dev.GetAttr()
	if err != nil {
		return &IOError{Op: "get terminal attributes", Err: err}
	}
	if c.original == nil {
		orig := *attrs
		c.original = &orig
		logger.Debug("term: saved original attributes")
	}
	c.rawEnabled = true

	raw := MakeRaw(*attrs)
	if err := c.dev.SetAttr(&raw); err != nil {
		return &IOError{Op: "set terminal attributes", Err: err}
	}
	logger.Debug("term: raw mode enabled")
	return nil
}

// DisableRaw restores the original attributes. It does nothing when raw
// mode was never entered.
func (c *Controller) DisableRaw() error {
	if c.original == nil {
		return nil
	}
	orig := *c.original
	if err := c.dev.SetAttr(&orig); err != nil {
		return &IOError{Op: "set terminal attributes", Err: err}
	}
	c.rawEnabled = false
	logger.Debug("term: raw mode disabled")
	return nil
}

func (c *Controller) RawEnabled() bool {
	return c.rawEnabled
}

// Original returns a copy of the saved attributes, if any.
func (c *Controller) Original() (unix.Termios, bool) {
	if c.original == nil {
		return unix.Termios{}, false
	}
	return *c.original, true
}
