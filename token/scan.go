package token

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/tap-format/tap"
)

// Version is the only protocol revision this grammar accepts.
const Version = "TAP Version 14"

var (
	versionLine = []byte(Version + "\n")

	statusOK      = []byte("ok")
	statusNotOK   = []byte("not ok")
	planPrefix    = []byte("1..")
	planReasonSep = []byte(" # ")
	bailPrefix    = []byte("Bail out!")
	pragmaPrefix  = []byte("pragma ")
	descMarker    = []byte(" -")
	directiveMark = []byte(" #")
	kwTodo        = []byte("todo")
	kwSkip        = []byte("skip")
	yamlOpen      = []byte("  ---\n")
	yamlClose     = []byte("  ...\n")
)

// ScanVersion matches the header line at the front of d. It returns the
// consumed length on a match, io.EOF while d is a short prefix of the
// header, and tap.ErrMalformedHeader as soon as d diverges from it.
func ScanVersion(d []byte) (int, error) {
	if len(d) < len(versionLine) {
		if bytes.Equal(d, versionLine[:len(d)]) {
			return 0, io.EOF
		}
		return 0, tap.ErrMalformedHeader
	}
	if !bytes.Equal(d[:len(versionLine)], versionLine) {
		return 0, tap.ErrMalformedHeader
	}
	return len(versionLine), nil
}

// Scan recognizes one unit at the front of d and returns the record, the
// number of bytes consumed, and an error: nil when a full unit was
// recognized, io.EOF when d is a valid prefix of a unit whose outcome more
// input could change, or a *SyntaxError when the content can never form a
// unit.
//
// atEOF reports that d is all the input there will ever be. It resolves
// the decisions that otherwise wait for more bytes, such as whether a
// diagnostic block follows a test-point line. With atEOF set, io.EOF from
// Scan means the remaining bytes cannot complete any unit.
//
// base is the position of d[0]; the record and any error positions are
// derived from it. Captured text is copied, never aliased into d.
func Scan(d []byte, atEOF bool, base tap.Pos) (tap.Record, int, error) {
	nl := bytes.IndexByte(d, '\n')
	if nl < 0 {
		return tap.Record{}, 0, io.EOF
	}
	line := d[:nl]
	n := nl + 1
	if i := invalidUTF8(line); i >= 0 {
		return tap.Record{}, 0, NewSyntaxError(ErrBadUTF8, posAt(base, d, i))
	}

	rec := tap.Record{Pos: base}
	switch {
	case bytes.HasPrefix(line, statusNotOK) || bytes.HasPrefix(line, statusOK):
		p, ok := scanTestPoint(line)
		if !ok {
			break
		}
		yamlBase := tap.Pos{Line: base.Line + 1, Offset: base.Offset + int64(n)}
		yaml, yn, err := scanYAMLBlock(d[n:], atEOF, yamlBase)
		if err != nil {
			return tap.Record{}, 0, err
		}
		p.YAML = yaml
		rec.Kind, rec.Point = tap.KindTestPoint, p
		return rec, n + yn, nil
	case bytes.HasPrefix(line, planPrefix):
		p, ok := scanPlan(line)
		if !ok {
			break
		}
		rec.Kind, rec.Plan = tap.KindPlan, p
		return rec, n, nil
	case bytes.HasPrefix(line, bailPrefix):
		rec.Kind, rec.Bail = tap.KindBailOut, scanBailOut(line)
		return rec, n, nil
	case bytes.HasPrefix(line, pragmaPrefix):
		p, ok := scanPragma(line)
		if !ok {
			break
		}
		rec.Kind, rec.Pragma = tap.KindPragma, p
		return rec, n, nil
	}
	// A structurally broken candidate for one of the prefixed rules falls
	// through here rather than erroring.
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\r') {
		i++
	}
	switch {
	case i == len(line):
		rec.Kind = tap.KindEmpty
	case line[i] == '#':
		rec.Kind, rec.Comment = tap.KindComment, string(line[i+1:])
	default:
		rec.Kind, rec.Text = tap.KindAnything, string(line)
	}
	return rec, n, nil
}

// scanPlan parses a complete "1..N" line, with an optional " # " reason.
func scanPlan(line []byte) (*tap.Plan, bool) {
	rest := line[len(planPrefix):]
	j := 0
	for j < len(rest) && isDigit(rest[j]) {
		j++
	}
	if j == 0 {
		return nil, false
	}
	count, ok := parseCount(rest[:j])
	if !ok {
		return nil, false
	}
	rest = rest[j:]
	if len(rest) == 0 {
		return &tap.Plan{Count: count}, true
	}
	if !bytes.HasPrefix(rest, planReasonSep) || len(rest) == len(planReasonSep) {
		return nil, false
	}
	return &tap.Plan{Count: count, Reason: string(rest[len(planReasonSep):])}, true
}

// scanBailOut parses a complete "Bail out!" line. The text after the bang
// is kept verbatim; an empty reason stays empty.
func scanBailOut(line []byte) *tap.BailOut {
	return &tap.BailOut{Reason: string(line[len(bailPrefix):])}
}

// scanPragma parses a complete "pragma (+|-)key" line.
func scanPragma(line []byte) (*tap.Pragma, bool) {
	rest := line[len(pragmaPrefix):]
	if len(rest) < 2 {
		return nil, false
	}
	var enabled bool
	switch rest[0] {
	case '+':
		enabled = true
	case '-':
		enabled = false
	default:
		return nil, false
	}
	key := rest[1:]
	for i := 0; i < len(key); i++ {
		if !isPragmaKeyByte(key[i]) {
			return nil, false
		}
	}
	return &tap.Pragma{Key: string(key), Enabled: enabled}, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isPragmaKeyByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// parseCount converts a digit run to a count. Overflow is a non-match,
// never a panic.
func parseCount(digits []byte) (uint64, bool) {
	n, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// invalidUTF8 returns the index of the first invalid byte in b, or -1.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// posAt derives the position of d[i] from the position of d[0].
func posAt(base tap.Pos, d []byte, i int) tap.Pos {
	return tap.Pos{
		Line:   base.Line + bytes.Count(d[:i], []byte{'\n'}),
		Offset: base.Offset + int64(i),
	}
}
