package term

// Guard keeps a terminal in raw mode until it is released. Release is safe
// to call more than once; only the first call touches the device.
//
//	g, err := term.Acquire(ctrl)
//	defer g.Recover()
//	...
//	return g.Release()
type Guard struct {
	ctrl     *Controller
	released bool
	err      error
}

// Acquire enables raw mode on ctrl. The returned Guard is usable even when
// err is non-nil, so callers can always defer its release.
func Acquire(ctrl *Controller) (*Guard, error) {
	g := &Guard{ctrl: ctrl}
	return g, ctrl.EnableRaw()
}

// Release restores the original terminal mode.
func (g *Guard) Release() error {
	if g.released {
		return g.err
	}
	g.released = true
	g.err = g.ctrl.DisableRaw()
	return g.err
}

// Recover must be deferred directly. On a panic it restores the terminal
// before the panic continues to unwind.
func (g *Guard) Recover() {
	if r := recover(); r != nil {
		_ = g.Release()
		panic(r)
	}
}
