package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/jcorbin/btangle/btxt"
	"github.com/jcorbin/btangle/internal/socutil"
)

// writeCode applies one Code block's contents to its destination file
// according to its effective tangle mode. filename is the resolved
// destination path.
func writeCode(filename string, code btxt.Code) error {
	contents := withFixture(code)

	switch mode := code.Effective.EffectiveMode(); mode.Kind() {
	case btxt.OverwriteMode:
		return writeOverwrite(filename, contents)
	case btxt.AppendMode:
		return writeAppend(filename, contents)
	case btxt.PrependMode:
		return writePrepend(filename, contents)
	case btxt.InsertMode:
		return writeInsert(filename, contents, mode.Marker())
	default:
		return fmt.Errorf("btangle: unhandled tangle mode %v", mode)
	}
}

// withFixture wraps a code block's contents with its pre/post fixture
// bytes, if set.
func withFixture(code btxt.Code) []byte {
	var buf bytes.Buffer
	if p := code.Effective.Prefix; p.Present {
		buf.Write(p.Bytes)
	}
	buf.Write(code.Part.Contents)
	if p := code.Effective.Postfix; p.Present {
		buf.Write(p.Bytes)
	}
	return buf.Bytes()
}

// writeOverwrite replaces filename's entire contents atomically, via a
// temp-file-then-rename.
func writeOverwrite(filename string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return err
	}
	return renameio.WriteFile(filename, contents, 0666)
}

// writeAppend adds contents to the end of filename, creating it if
// necessary.
func writeAppend(filename string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	_, werr := f.Write(contents)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// writePrepend rebuilds filename with contents inserted before its
// existing body, via a sibling temp file renamed into place.
func writePrepend(filename string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return err
	}
	existing, err := ioutil.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	tmp, err := ioutil.TempFile(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp_*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(existing); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// writeInsert splices contents into filename just before the first line
// equal to marker, rebuilding the file via a sibling temp file. If marker
// is not found, contents are appended at the end instead.
func writeInsert(filename string, contents, marker []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return err
	}
	existing, err := ioutil.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	at := findMarkerLine(existing, marker)

	tmp, err := ioutil.TempFile(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp_*")
	if err != nil {
		return err
	}
	werr := spliceAt(tmp, existing, contents, at)
	if werr == nil {
		werr = tmp.Sync()
	}
	cerr := tmp.Close()
	if werr != nil {
		os.Remove(tmp.Name())
		return werr
	}
	if cerr != nil {
		os.Remove(tmp.Name())
		return cerr
	}
	return os.Rename(tmp.Name(), filename)
}

// findMarkerLine returns the byte offset of the first line in existing
// that is exactly equal to marker, or len(existing) if no such line is
// present.
func findMarkerLine(existing, marker []byte) int {
	off := 0
	for off < len(existing) {
		nl := bytes.IndexByte(existing[off:], '\n')
		var line []byte
		if nl < 0 {
			line = existing[off:]
		} else {
			line = existing[off : off+nl]
		}
		if bytes.Equal(line, marker) {
			return off
		}
		if nl < 0 {
			break
		}
		off += nl + 1
	}
	return len(existing)
}

// spliceAt writes existing[:at], then contents, then existing[at:].
func spliceAt(w io.Writer, existing, contents []byte, at int) error {
	src := bytes.NewReader(existing)
	if _, err := socutil.CopySection(w, src, 0, int64(at), nil); err != nil {
		return err
	}
	if _, err := w.Write(contents); err != nil {
		return err
	}
	_, err := socutil.CopySection(w, src, int64(at), int64(len(existing)-at), nil)
	return err
}
