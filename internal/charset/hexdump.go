package charset

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// HexBytes yields the bytes of b as two-digit lowercase hex pairs, stopping
// at the first NUL byte or at the end of b
func HexBytes(b []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, c := range b {
			if c == 0 {
				return
			}
			if !yield(fmt.Sprintf("%02x", c)) {
				return
			}
		}
	}
}

// HexDump writes "Hex Char Code:" followed by the hex pairs of b on one line
func HexDump(w io.Writer, b []byte) error {
	var pairs []string
	for p := range HexBytes(b) {
		pairs = append(pairs, p)
	}
	_, err := fmt.Fprintf(w, "Hex Char Code:\n%s\n", strings.Join(pairs, " "))
	return err
}
