package btxt

import (
	"bytes"
	"fmt"
)

// TangleModeKind distinguishes the four ways a Code block's contents may be
// written to its destination file.
type TangleModeKind int

// TangleModeKind values.
const (
	OverwriteMode TangleModeKind = iota
	AppendMode
	PrependMode
	InsertMode
)

// TangleMode describes how a Code block's contents should be applied to its
// destination file. The zero value is the Overwrite mode; a Properties
// with no Mode set defaults to Append instead (see Properties.EffectiveMode).
type TangleMode struct {
	kind   TangleModeKind
	marker []byte
}

// Overwrite returns the Overwrite mode.
func Overwrite() TangleMode { return TangleMode{kind: OverwriteMode} }

// Append returns the Append mode, the default when no mode is ever set.
func Append() TangleMode { return TangleMode{kind: AppendMode} }

// Prepend returns the Prepend mode.
func Prepend() TangleMode { return TangleMode{kind: PrependMode} }

// Insert returns the Insert mode with the given marker bytes.
func Insert(marker []byte) TangleMode { return TangleMode{kind: InsertMode, marker: marker} }

// Kind reports which of the four modes the receiver is.
func (m TangleMode) Kind() TangleModeKind { return m.kind }

// Marker returns the insertion marker bytes; only meaningful when
// Kind() == InsertMode.
func (m TangleMode) Marker() []byte { return m.marker }

// String renders the mode back into the syntax ParseTangleMode accepts,
// making TangleMode round-trip through ParseTangleMode(m.String()) bytes.
func (m TangleMode) String() string {
	switch m.kind {
	case OverwriteMode:
		return "overwrite"
	case AppendMode:
		return "append"
	case PrependMode:
		return "prepend"
	case InsertMode:
		return fmt.Sprintf("insert[%s]", m.marker)
	default:
		return "invalid"
	}
}

// ParseTangleMode parses a mode property value: one of "overwrite",
// "append", "prepend", or "insert[<marker>]" where marker is non-empty and
// does not contain ']'.
func ParseTangleMode(value []byte) (TangleMode, error) {
	switch {
	case bytes.Equal(value, []byte("overwrite")):
		return Overwrite(), nil
	case bytes.Equal(value, []byte("append")):
		return Append(), nil
	case bytes.Equal(value, []byte("prepend")):
		return Prepend(), nil
	case bytes.HasPrefix(value, []byte("insert[")) && bytes.HasSuffix(value, []byte("]")):
		marker := value[len("insert[") : len(value)-1]
		if len(marker) == 0 || bytes.IndexByte(marker, ']') >= 0 {
			return TangleMode{}, fmt.Errorf("btxt: invalid insert marker %q", marker)
		}
		return Insert(marker), nil
	default:
		return TangleMode{}, fmt.Errorf("btxt: invalid mode %q", value)
	}
}
