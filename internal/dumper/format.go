// internal/dumper/format.go
package dumper

import "io"

// GroupSize is the number of bytes per dump line.
const GroupSize = 16

// Group is one dump line worth of sampled bytes, in address order.
type Group [GroupSize]byte

const hexDigits = "0123456789ABCDEF"

// lineLen is the longest rendering of a group: hex tokens, separator,
// ascii tokens and the line break.
const lineLen = GroupSize*3 + 2 + GroupSize*2 + 1

// FormatGroup writes g as one hex dump line to w.
// Each byte is two uppercase hex digits and a space. With ascii set,
// two spaces follow and then each byte as a character (or '.') and a space.
// The line is written with a single Write call.
func FormatGroup(w io.Writer, g Group, ascii bool) error {
	_, err := w.Write(AppendGroup(make([]byte, 0, lineLen), g, ascii))
	return err
}

// AppendGroup appends the rendering of g to dst.
func AppendGroup(dst []byte, g Group, ascii bool) []byte {
	for _, b := range g {
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0F], ' ')
	}
	if ascii {
		dst = append(dst, ' ', ' ')
		for _, b := range g {
			dst = append(dst, Printable(b), ' ')
		}
	}
	return append(dst, '\n')
}

// Printable returns b as a character if it is strictly between space and DEL,
// '.' otherwise.
func Printable(b byte) byte {
	if b > 0x20 && b < 0x7F {
		return b
	}
	return '.'
}
