package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// rawConsole puts stdin into raw mode for the duration of a run, so the
// interpreted program sees every keystroke immediately instead of waiting
// on the host terminal's own line buffering and echo. It is a no-op when
// stdin isn't a terminal (piped input, redirected files), which also makes
// it safe to always construct.
type rawConsole struct {
	fd    int
	state *term.State
}

func newRawConsole() *rawConsole {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return &rawConsole{fd: -1}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return &rawConsole{fd: -1}
	}
	return &rawConsole{fd: fd, state: state}
}

func (c *rawConsole) restore() {
	if c.state != nil {
		_ = term.Restore(c.fd, c.state)
	}
}

func (c *rawConsole) reader() io.Reader {
	return os.Stdin
}
