// Package encoding normalises uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of the input is inspected before decoding.
const sniffLen = 4096

var boms = []struct {
	mark []byte
	enc  xenc.Encoding // nil means the content is already UTF-8
}{
	{mark: []byte{0xEF, 0xBB, 0xBF}},
	{mark: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{mark: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet names to decoders. Unlisted charsets decode as
// Windows-1252.
var charsets = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// Charset reports the detected charset name of buf: "UTF-8" for BOM-less or
// BOM-marked UTF-8, "UTF-16LE"/"UTF-16BE" for marked UTF-16, or the chardet
// guess otherwise.
func Charset(buf []byte) string {
	switch {
	case bytes.HasPrefix(buf, boms[0].mark), utf8.Valid(trimPartialRune(buf)):
		return "UTF-8"
	case bytes.HasPrefix(buf, boms[1].mark):
		return "UTF-16LE"
	case bytes.HasPrefix(buf, boms[2].mark):
		return "UTF-16BE"
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return "windows-1252"
	}

	return result.Charset
}

// NewUTF8Reader returns a reader yielding the content of r as UTF-8 with any
// byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.mark) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	cs := Charset(buf)
	if cs == "UTF-8" {
		return br, nil
	}

	enc, ok := charsets[cs]
	if !ok {
		enc = charmap.Windows1252
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of buf.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
