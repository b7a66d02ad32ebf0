package notify

import (
	"io"
	"os"
)

// Chimer emits a short audible cue. The terminal implementation rings the
// bell; what that sounds like (or whether it sounds at all) is up to the
// terminal emulator.
type Chimer interface {
	Chime()
}

// terminalChimer rings the terminal bell by writing BEL.
type terminalChimer struct {
	w io.Writer
}

// NewChimer returns a Chimer that rings the controlling terminal's bell.
func NewChimer() Chimer {
	return &terminalChimer{w: os.Stdout}
}

// NewChimerTo returns a Chimer writing the bell to w. Used in tests.
func NewChimerTo(w io.Writer) Chimer {
	return &terminalChimer{w: w}
}

func (c *terminalChimer) Chime() {
	_, _ = c.w.Write([]byte{'\a'})
}
