package term

import "golang.org/x/sys/unix"

// MakeRaw returns attrs transformed the way cfmakeraw(3) does: no canonical
// line editing, no echo, no signal characters, no output post-processing,
// 8-bit characters and reads that return after every single byte.
func MakeRaw(attrs unix.Termios) unix.Termios {
	attrs.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	attrs.Oflag &^= unix.OPOST
	attrs.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	attrs.Cflag &^= unix.CSIZE | unix.PARENB
	attrs.Cflag |= unix.CS8
	attrs.Cc[unix.VMIN] = 1
	attrs.Cc[unix.VTIME] = 0
	return attrs
}
