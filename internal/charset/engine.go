package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnknownCharset is returned by Lookup for labels no index knows
	ErrUnknownCharset = errors.New("unknown charset")
	// ErrInvalidSequence reports input bytes that are not valid in the source charset
	ErrInvalidSequence = errors.New("invalid byte sequence")
	// ErrOutputFull reports that the destination buffer cannot hold the next output unit
	ErrOutputFull = errors.New("output buffer too small")
	// ErrClosed is returned when a closed Context is used
	ErrClosed = errors.New("conversion context closed")
)

// Context is one open from->to conversion session. It must be closed by the
// caller that opened it.
type Context interface {
	// Convert transforms src into dst and reports how many bytes were written
	// and consumed. src is always treated as the end of the input.
	Convert(dst, src []byte) (nDst, nSrc int, err error)
	Close() error
}

// Engine opens conversion contexts for a pair of charset names
type Engine interface {
	Open(from, to string) (Context, error)
}

// Lookup resolves a charset label (case-insensitive) using the WHATWG index
// first and the IANA registry second. WHATWG maps some labels (HZ, ISO-2022-KR,
// ISO-2022-CN) to the replacement encoding, which cannot produce them; those
// labels resolve through IANA or not at all.
func Lookup(name string) (encoding.Encoding, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownCharset)
	}

	if enc, err := htmlindex.Get(label); err == nil && enc != encoding.Replacement {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil || enc == encoding.Replacement {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}
	return enc, nil
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// TextEngine is the Engine backed by golang.org/x/text
type TextEngine struct{}

// Open implements Engine. Decoding from a non-UTF-8 charset is strict: a
// sequence the decoder would replace with U+FFFD fails instead.
func (TextEngine) Open(from, to string) (Context, error) {
	src, err := Lookup(from)
	if err != nil {
		return nil, err
	}
	dst, err := Lookup(to)
	if err != nil {
		return nil, err
	}

	var dec transform.Transformer = encoding.UTF8Validator
	if !isUTF8(src) {
		dec = newStrictDecoder(src)
	}

	var enc transform.Transformer = transform.Nop
	if !isUTF8(dst) {
		enc = dst.NewEncoder()
	}

	return &textContext{t: transform.Chain(dec, enc)}, nil
}

type textContext struct {
	t      transform.Transformer
	closed bool
}

func (c *textContext) Convert(dst, src []byte) (int, int, error) {
	if c.closed {
		return 0, 0, ErrClosed
	}
	return c.t.Transform(dst, src, true)
}

func (c *textContext) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.t.Reset()
	c.closed = true
	return nil
}

var replacementChar = []byte("\uFFFD")

// strictDecoder fails where the wrapped decoder substitutes U+FFFD for
// invalid input. A U+FFFD that is spelled out in the source is kept.
type strictDecoder struct {
	enc encoding.Encoding
	t   transform.Transformer
	// replacement is U+FFFD in the source charset, nil if it has none
	replacement []byte
}

func newStrictDecoder(enc encoding.Encoding) *strictDecoder {
	d := &strictDecoder{enc: enc, t: enc.NewDecoder()}
	if b, err := enc.NewEncoder().Bytes(replacementChar); err == nil {
		d.replacement = b
	}
	return d
}

func (s *strictDecoder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	nDst, nSrc, err := s.t.Transform(dst, src, atEOF)
	for off := 0; off < nDst; {
		i := bytes.Index(dst[off:nDst], replacementChar)
		if i < 0 {
			break
		}
		i += off
		if !s.spelledOut(i, src, atEOF) {
			return i, 0, ErrInvalidSequence
		}
		off = i + len(replacementChar)
	}
	return nDst, nSrc, err
}

// spelledOut reports whether the U+FFFD decoded at output offset at comes
// from its own encoding in src. A fresh decoder limited to at output bytes
// stops exactly where that rune's source bytes begin.
func (s *strictDecoder) spelledOut(at int, src []byte, atEOF bool) bool {
	if s.replacement == nil {
		return false
	}
	_, n, _ := s.enc.NewDecoder().Transform(make([]byte, at), src, atEOF)
	return bytes.HasPrefix(src[n:], s.replacement)
}

func (s *strictDecoder) Reset() {
	s.t.Reset()
}
