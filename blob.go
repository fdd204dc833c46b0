package fixtext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/klauspost/compress/gzip"
)

// The classification table can be persisted as an opaque compressed blob so
// that separate processes (or a build step) agree on classifications without
// rebuilding from the Unicode tables. The blob is one byte per codepoint,
// gzip-compressed, behind a header recording the format and Unicode versions.

const blobMagic = "fixtext-classes/1"

var errTableInitialized = errors.New("fixtext: classification table already initialized")

// WriteClassTable writes the classification table to w in its persisted
// form. Triggers the table build if it has not happened yet.
func WriteClassTable(w io.Writer) error {
	t := classes()

	gz := gzip.NewWriter(w)
	if _, err := fmt.Fprintf(gz, "%s %s\n", blobMagic, tableUnicodeVersion); err != nil {
		return err
	}
	buf := make([]byte, len(t))
	for i, c := range t {
		buf[i] = byte(c)
	}
	if _, err := gz.Write(buf); err != nil {
		return err
	}
	return gz.Close()
}

// ReadClassTable loads a persisted classification table from r and installs
// it as the table for this process. It must be called before the first use
// of Classify or any of the repair functions; afterwards it reports
// an error and leaves the active table alone.
func ReadClassTable(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("fixtext: reading class table: %w", err)
	}
	defer gz.Close()

	br := bufio.NewReader(gz)
	header, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("fixtext: reading class table header: %w", err)
	}
	want := fmt.Sprintf("%s %s\n", blobMagic, tableUnicodeVersion)
	if header != want {
		return fmt.Errorf("fixtext: class table version mismatch: have %q, want %q", header, want)
	}

	buf := make([]byte, unicode.MaxRune+1)
	if _, err := io.ReadFull(br, buf); err != nil {
		return fmt.Errorf("fixtext: reading class table data: %w", err)
	}

	t := make([]Class, len(buf))
	for i, b := range buf {
		if b >= byte(numClasses) {
			return fmt.Errorf("fixtext: class table contains invalid class %d at codepoint %#x", b, i)
		}
		t[i] = Class(b)
	}

	installed := false
	classOnce.Do(func() {
		classTable = t
		installed = true
	})
	if !installed {
		return errTableInitialized
	}
	return nil
}
