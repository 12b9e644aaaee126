package term

import (
	"errors"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

type fakeDevice struct {
	reads  []unix.Termios
	n      int
	set    []unix.Termios
	getErr error
	setErr error
}

func (d *fakeDevice) GetAttr() (*unix.Termios, error) {
	if d.getErr != nil {
		return nil, d.getErr
	}
	i := d.n
	if i >= len(d.reads) {
		i = len(d.reads) - 1
	}
	d.n++
	attrs := d.reads[i]
	return &attrs, nil
}

func (d *fakeDevice) SetAttr(attrs *unix.Termios) error {
	if d.setErr != nil {
		return d.setErr
	}
	d.set = append(d.set, *attrs)
	return nil
}

func cooked() unix.Termios {
	var attrs unix.Termios
	attrs.Iflag |= unix.ICRNL | unix.IXON | unix.BRKINT
	attrs.Oflag |= unix.OPOST
	attrs.Lflag |= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	attrs.Cflag |= unix.CS7 | unix.PARENB
	attrs.Cc[unix.VMIN] = 4
	attrs.Cc[unix.VTIME] = 2
	return attrs
}

func allSet() unix.Termios {
	var attrs unix.Termios
	attrs.Iflag = ^attrs.Iflag
	attrs.Oflag = ^attrs.Oflag
	attrs.Lflag = ^attrs.Lflag
	attrs.Cflag = ^attrs.Cflag
	for i := range attrs.Cc {
		attrs.Cc[i] = 0xff
	}
	return attrs
}

func TestMakeRawIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		attrs unix.Termios
	}{
		{"zero", unix.Termios{}},
		{"cooked", cooked()},
		{"all bits", allSet()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := MakeRaw(tt.attrs)
			twice := MakeRaw(once)
			if once != twice {
				t.Fatalf("MakeRaw not idempotent:\nonce  %+v\ntwice %+v", once, twice)
			}
		})
	}
}

func TestMakeRawFlags(t *testing.T) {
	raw := MakeRaw(cooked())
	if raw.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG|unix.IEXTEN) != 0 {
		t.Fatalf("Lflag = %#x, canonical/echo/signal bits still set", raw.Lflag)
	}
	if raw.Iflag&(unix.ICRNL|unix.IXON|unix.BRKINT) != 0 {
		t.Fatalf("Iflag = %#x, input processing bits still set", raw.Iflag)
	}
	if raw.Oflag&unix.OPOST != 0 {
		t.Fatalf("Oflag = %#x, OPOST still set", raw.Oflag)
	}
	if raw.Cflag&unix.CSIZE != unix.CS8 {
		t.Fatalf("Cflag size = %#x, want CS8", raw.Cflag&unix.CSIZE)
	}
	if raw.Cflag&unix.PARENB != 0 {
		t.Fatalf("Cflag = %#x, PARENB still set", raw.Cflag)
	}
	if raw.Cc[unix.VMIN] != 1 || raw.Cc[unix.VTIME] != 0 {
		t.Fatalf("VMIN/VTIME = %d/%d, want 1/0", raw.Cc[unix.VMIN], raw.Cc[unix.VTIME])
	}
}

func TestMakeRawDoesNotMutateInput(t *testing.T) {
	in := cooked()
	_ = MakeRaw(in)
	if in != cooked() {
		t.Fatalf("MakeRaw modified its argument")
	}
}

func TestEnableRawKeepsFirstSnapshot(t *testing.T) {
	first := cooked()
	second := MakeRaw(first)
	dev := &fakeDevice{reads: []unix.Termios{first, second}}
	c := NewController(dev)

	if err := c.EnableRaw(); err != nil {
		t.Fatalf("EnableRaw error: %v", err)
	}
	if err := c.EnableRaw(); err != nil {
		t.Fatalf("second EnableRaw error: %v", err)
	}

	orig, ok := c.Original()
	if !ok {
		t.Fatalf("no original snapshot")
	}
	if orig != first {
		t.Fatalf("snapshot = %+v, want first read %+v", orig, first)
	}
	if !c.RawEnabled() {
		t.Fatalf("RawEnabled = false, want true")
	}
	if len(dev.set) != 2 || dev.set[0] != MakeRaw(first) {
		t.Fatalf("applied = %+v, want raw attributes twice", dev.set)
	}
}

func TestDisableRawWithoutEnableIsNoop(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}}
	c := NewController(dev)

	if err := c.DisableRaw(); err != nil {
		t.Fatalf("DisableRaw error: %v", err)
	}
	if len(dev.set) != 0 {
		t.Fatalf("SetAttr called %d times, want 0", len(dev.set))
	}
	if dev.n != 0 {
		t.Fatalf("GetAttr called %d times, want 0", dev.n)
	}
}

func TestDisableRawRestoresOriginal(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}}
	c := NewController(dev)

	if err := c.EnableRaw(); err != nil {
		t.Fatalf("EnableRaw error: %v", err)
	}
	if err := c.DisableRaw(); err != nil {
		t.Fatalf("DisableRaw error: %v", err)
	}
	if c.RawEnabled() {
		t.Fatalf("RawEnabled = true after DisableRaw")
	}
	if got := dev.set[len(dev.set)-1]; got != cooked() {
		t.Fatalf("restored %+v, want %+v", got, cooked())
	}
	if _, ok := c.Original(); !ok {
		t.Fatalf("snapshot cleared by DisableRaw")
	}
}

func TestEnableRawGetError(t *testing.T) {
	dev := &fakeDevice{getErr: unix.ENOTTY}
	c := NewController(dev)

	err := c.EnableRaw()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("EnableRaw error = %v, want *IOError", err)
	}
	if !errors.Is(err, unix.ENOTTY) {
		t.Fatalf("EnableRaw error = %v, want ENOTTY", err)
	}
	if c.RawEnabled() {
		t.Fatalf("RawEnabled = true after failed read")
	}
	if _, ok := c.Original(); ok {
		t.Fatalf("snapshot stored after failed read")
	}
}

func TestEnableRawSetErrorKeepsState(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}, setErr: unix.EIO}
	c := NewController(dev)

	err := c.EnableRaw()
	if !errors.Is(err, unix.EIO) {
		t.Fatalf("EnableRaw error = %v, want EIO", err)
	}
	if !c.RawEnabled() {
		t.Fatalf("RawEnabled = false, want the attempted state")
	}
	if orig, ok := c.Original(); !ok || orig != cooked() {
		t.Fatalf("snapshot = %+v, %v; want cooked attributes", orig, ok)
	}

	err = c.DisableRaw()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("DisableRaw error = %v, want *IOError", err)
	}
}

func TestDeviceNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()

	c := NewController(NewDevice(int(f.Fd())))
	err = c.EnableRaw()
	if !errors.Is(err, unix.ENOTTY) {
		t.Fatalf("EnableRaw error = %v, want ENOTTY", err)
	}
	if err := c.DisableRaw(); err != nil {
		t.Fatalf("DisableRaw error = %v, want nil", err)
	}
}

func TestGuardReleaseOnce(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}}
	g, err := Acquire(NewController(dev))
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("second Release error: %v", err)
	}
	if len(dev.set) != 2 {
		t.Fatalf("SetAttr called %d times, want 2 (raw, restore)", len(dev.set))
	}
	if dev.set[1] != cooked() {
		t.Fatalf("restored %+v, want %+v", dev.set[1], cooked())
	}
}

func TestGuardUsableAfterAcquireError(t *testing.T) {
	dev := &fakeDevice{getErr: unix.ENOTTY}
	g, err := Acquire(NewController(dev))
	if err == nil {
		t.Fatalf("expected Acquire error")
	}
	if g == nil {
		t.Fatalf("Acquire returned nil guard")
	}
	if err := g.Release(); err != nil {
		t.Fatalf("Release error: %v", err)
	}
}

func TestGuardRecoverRestoresOnPanic(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}}
	ctrl := NewController(dev)
	g, err := Acquire(ctrl)
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}

	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		defer g.Recover()
		panic("boom")
	}()

	if recovered != "boom" {
		t.Fatalf("recovered = %v, want boom", recovered)
	}
	if ctrl.RawEnabled() {
		t.Fatalf("terminal still raw after panic")
	}
	if got := dev.set[len(dev.set)-1]; got != cooked() {
		t.Fatalf("restored %+v, want %+v", got, cooked())
	}
}

func TestGuardRecoverWithoutPanic(t *testing.T) {
	dev := &fakeDevice{reads: []unix.Termios{cooked()}}
	ctrl := NewController(dev)
	g, _ := Acquire(ctrl)

	func() {
		defer g.Recover()
	}()

	if !ctrl.RawEnabled() {
		t.Fatalf("Recover released the terminal without a panic")
	}
}
