package token

import (
	"bytes"
	"io"

	"github.com/tap-format/tap"
)

// scanYAMLBlock recognizes the optional diagnostic block attached to a
// test-point line. d begins right after the line's terminator; base is the
// position of d[0]. A nil block with a nil error means no block follows.
//
// The block opens with a line of two spaces and three dashes and closes
// with a line of two spaces and three dots. The interior is captured
// verbatim, line by line, without interpretation. While d is a strict
// prefix of the open marker, or the close marker has not appeared, the
// outcome is undecided and the result is io.EOF. atEOF resolves only the
// empty tail to "no block": once marker bytes have started, the test
// point stays undecided and the caller reports the truncation.
func scanYAMLBlock(d []byte, atEOF bool, base tap.Pos) ([]byte, int, error) {
	if !bytes.HasPrefix(d, yamlOpen) {
		switch {
		case len(d) >= len(yamlOpen) || !bytes.Equal(d, yamlOpen[:len(d)]):
			return nil, 0, nil
		case len(d) == 0 && atEOF:
			return nil, 0, nil
		default:
			return nil, 0, io.EOF
		}
	}
	i := len(yamlOpen)
	for {
		nl := bytes.IndexByte(d[i:], '\n')
		if nl < 0 {
			return nil, 0, io.EOF
		}
		lineEnd := i + nl + 1
		if bytes.Equal(d[i:lineEnd], yamlClose) {
			interior := d[len(yamlOpen):i]
			if j := invalidUTF8(interior); j >= 0 {
				return nil, 0, NewSyntaxError(ErrBadUTF8, posAt(base, d, len(yamlOpen)+j))
			}
			return append([]byte{}, interior...), lineEnd, nil
		}
		i = lineEnd
	}
}
