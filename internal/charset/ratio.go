package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// unboundedBytesPerRune is used for stateful charsets (escape sequences can
// accompany every rune) and for charsets missing from the tables below
const unboundedBytesPerRune = 8

// maxBytesPerRune is the longest encoding of a single rune, by WHATWG name
var maxBytesPerRune = map[string]int{
	"utf-8":     4,
	"utf-16le":  4,
	"utf-16be":  4,
	"gbk":       2,
	"gb18030":   4,
	"big5":      2,
	"euc-kr":    2,
	"shift_jis": 2,
	"euc-jp":    3,
}

// minBytesPerRune is the shortest encoding of a single rune, by WHATWG name
var minBytesPerRune = map[string]int{
	"utf-16le": 2,
	"utf-16be": 2,
}

func maxOut(enc encoding.Encoding) int {
	if _, ok := enc.(*charmap.Charmap); ok {
		return 1
	}
	if name, err := htmlindex.Name(enc); err == nil {
		if n, ok := maxBytesPerRune[name]; ok {
			return n
		}
	}
	return unboundedBytesPerRune
}

func minIn(enc encoding.Encoding) int {
	if name, err := htmlindex.Name(enc); err == nil {
		if n, ok := minBytesPerRune[name]; ok {
			return n
		}
	}
	return 1
}

// ExpansionRatio returns an upper bound on output bytes per input byte when
// converting from -> to. Unknown charsets yield 0.
func ExpansionRatio(from, to string) int {
	src, err := Lookup(from)
	if err != nil {
		return 0
	}
	dst, err := Lookup(to)
	if err != nil {
		return 0
	}

	in, out := minIn(src), maxOut(dst)
	return (out + in - 1) / in
}
