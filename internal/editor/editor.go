// Package editor implements a single-line editor driven by raw keystrokes.
//
// Control bytes: CTRL-A moves the cursor back to the anchor, CTRL-C quits,
// CR submits the line, DEL removes the last character. Every other byte is
// inserted literally. Submitted lines are matched against the built-in
// commands quit, jump and where; anything else is ignored.
package editor

import (
	"errors"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/rawline/internal/config"
	"github.com/kobzarvs/rawline/internal/logger"
	"github.com/kobzarvs/rawline/internal/vt"
)

// Console is the terminal surface the editor draws on and reads from.
// *vt.Client implements it.
type Console interface {
	io.ByteReader
	QueryPosition() (vt.Position, error)
	Goto(row, col int) error
	PaintAt(text string, row, col int) error
	EraseToEOL() error
	Print(s string) error
}

// RawMode switches the terminal in and out of raw mode.
// *term.Controller implements it.
type RawMode interface {
	EnableRaw() error
	DisableRaw() error
}

type command func(e *Editor) (quit bool)

var commands = map[string]command{
	"quit":  func(*Editor) bool { return true },
	"jump":  (*Editor).jump,
	"where": (*Editor).where,
}

type Editor struct {
	con    Console
	mode   RawMode
	prompt string
	jumpTo vt.Position

	line   LineBuffer
	anchor vt.Position
}

func New(cfg config.Config, con Console, mode RawMode) *Editor {
	return &Editor{
		con:    con,
		mode:   mode,
		prompt: cfg.Editor.Prompt,
		jumpTo: vt.Position{Row: cfg.Commands.JumpRow, Col: cfg.Commands.JumpCol},
	}
}

// Run enables raw mode and processes keystrokes until CTRL-C, the quit
// command, or the end of input. Raw mode is disabled on every way out,
// panics included. Terminal errors are logged, never returned.
func (e *Editor) Run() {
	if err := e.mode.EnableRaw(); err != nil {
		logger.Warn("enable raw mode failed", "err", err)
	}
	defer func() {
		if err := e.mode.DisableRaw(); err != nil {
			logger.Warn("disable raw mode failed", "err", err)
		}
	}()

	e.Start()
	for {
		b, err := e.con.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("input closed")
				return
			}
			logger.Debug("read failed, retrying", "err", err)
			continue
		}
		if e.HandleKey(DecodeByte(b)) {
			return
		}
	}
}

// Start prints the prompt and records the anchor all repaints start from.
// If the terminal does not answer sensibly the anchor is the home position.
func (e *Editor) Start() {
	e.line.Reset()
	e.report("print prompt", e.con.Print(e.prompt))
	pos, err := e.con.QueryPosition()
	if err != nil {
		logger.Warn("anchor query failed", "err", err)
		pos = vt.Position{Row: 1, Col: 1}
	}
	e.anchor = pos
	logger.Debug("anchor captured", "row", pos.Row, "col", pos.Col)
}

// HandleKey applies one keystroke and reports whether the session is over.
func (e *Editor) HandleKey(k Keystroke) bool {
	logger.Debug("Editor.HandleKey", "byte", k.Byte, "line", e.line.String())
	switch k.Key {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlA:
		e.report("goto anchor", e.con.Goto(e.anchor.Row, e.anchor.Col))
	case tcell.KeyEnter:
		return e.submit()
	case tcell.KeyBackspace2:
		e.line.Pop()
		e.repaint()
	default:
		e.line.Append(k.Byte)
		e.repaint()
	}
	return false
}

func (e *Editor) submit() bool {
	name := e.line.String()
	if cmd, ok := commands[name]; ok {
		logger.Info("command", "name", name)
		if cmd(e) {
			return true
		}
	}
	e.line.Reset()
	e.report("print prompt", e.con.Print(e.prompt))
	return false
}

func (e *Editor) jump() bool {
	e.report("jump", e.con.Goto(e.jumpTo.Row, e.jumpTo.Col))
	return false
}

func (e *Editor) where() bool {
	pos, err := e.con.QueryPosition()
	if err != nil {
		logger.Warn("position query failed", "err", err)
		return false
	}
	e.report("print position", e.con.Print(pos.String()+"\r\n"))
	return false
}

// repaint redraws the line at the anchor. The rest of the row is erased so
// a shorter line leaves nothing stale behind.
func (e *Editor) repaint() {
	e.report("paint line", e.con.PaintAt(e.line.String(), e.anchor.Row, e.anchor.Col))
	e.report("erase line tail", e.con.EraseToEOL())
}

func (e *Editor) report(op string, err error) {
	if err != nil {
		logger.Debug("terminal write failed", "op", op, "err", err)
	}
}

func (e *Editor) Line() string {
	return e.line.String()
}

func (e *Editor) Anchor() vt.Position {
	return e.anchor
}
