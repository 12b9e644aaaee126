package editor

import "github.com/gdamore/tcell/v2"

// Keystroke is one raw input byte together with the tcell key it is bound
// to. Only CTRL-A, CTRL-C, CR and DEL are bound; every other byte, other
// control bytes such as BS included, is a KeyRune and inserted as is.
type Keystroke struct {
	Byte byte
	Key  tcell.Key
}

// DecodeByte maps b onto the editor's key bindings. The mapping is explicit
// because tcell's own numbering of control keys does not follow ASCII.
func DecodeByte(b byte) Keystroke {
	k := Keystroke{Byte: b, Key: tcell.KeyRune}
	switch b {
	case 0x01:
		k.Key = tcell.KeyCtrlA
	case 0x03:
		k.Key = tcell.KeyCtrlC
	case '\r':
		k.Key = tcell.KeyEnter
	case 0x7f:
		k.Key = tcell.KeyBackspace2
	}
	return k
}
