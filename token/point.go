package token

import (
	"bytes"
	"strings"

	"github.com/tap-format/tap"
)

// scanTestPoint assembles one test point from a complete line (terminator
// already stripped). Field order is fixed: status, then optionally number,
// description, directive. A line that starts like a test point but cannot
// complete one reports !ok and falls back to the caller's catch-all.
func scanTestPoint(line []byte) (*tap.TestPoint, bool) {
	p := &tap.TestPoint{}
	var rest []byte
	switch {
	case bytes.HasPrefix(line, statusNotOK):
		p.Status = false
		rest = line[len(statusNotOK):]
	case bytes.HasPrefix(line, statusOK):
		p.Status = true
		rest = line[len(statusOK):]
	default:
		return nil, false
	}
	rest = scanNumber(rest, p)
	rest = scanDescription(rest, p)
	rest, ok := scanDirective(rest, p)
	if !ok || len(rest) != 0 {
		return nil, false
	}
	return p, true
}

// scanNumber consumes " <digits>" when the digit run is followed by a
// space or ends the line. Any other follower, or overflow, is a non-match
// and the text falls through to the description rule.
func scanNumber(rest []byte, p *tap.TestPoint) []byte {
	if len(rest) < 2 || rest[0] != ' ' || !isDigit(rest[1]) {
		return rest
	}
	j := 1
	for j < len(rest) && isDigit(rest[j]) {
		j++
	}
	if j < len(rest) && rest[j] != ' ' {
		return rest
	}
	num, ok := parseCount(rest[1:j])
	if !ok {
		return rest
	}
	p.Number = &num
	return rest[j:]
}

// scanDescription consumes an optional " -" marker, one mandatory space,
// and the text up to the first " #" or the end of the line, whichever
// comes first. A " #" sitting where the mandatory space would be means
// there is no description at all and the directive rule takes over. On
// any non-match the input is rewound past the marker too.
func scanDescription(rest []byte, p *tap.TestPoint) []byte {
	t := rest
	if bytes.HasPrefix(t, descMarker) {
		t = t[len(descMarker):]
	}
	stop := bytes.Index(t, directiveMark)
	if stop < 0 {
		stop = len(t)
	}
	if stop == 0 || t[0] != ' ' {
		return rest
	}
	p.Description = strings.TrimSpace(string(t[1:stop]))
	return t[stop:]
}

// scanDirective consumes " #", interior spaces, a case-insensitive TODO or
// SKIP keyword, discarded legacy punctuation glued to the keyword, and the
// trimmed free-text reason. A present " #" with no recognizable keyword
// invalidates the whole line.
func scanDirective(rest []byte, p *tap.TestPoint) ([]byte, bool) {
	if !bytes.HasPrefix(rest, directiveMark) {
		return rest, true
	}
	s := rest[len(directiveMark):]
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	var kind tap.DirectiveKind
	switch {
	case len(s) >= len(kwTodo) && bytes.EqualFold(s[:len(kwTodo)], kwTodo):
		kind = tap.Todo
		s = s[len(kwTodo):]
	case len(s) >= len(kwSkip) && bytes.EqualFold(s[:len(kwSkip)], kwSkip):
		kind = tap.Skip
		s = s[len(kwSkip):]
	default:
		return rest, false
	}
	for len(s) > 0 && s[0] != ' ' {
		s = s[1:]
	}
	p.Directive = &tap.Directive{
		Kind:   kind,
		Reason: strings.TrimSpace(string(s)),
	}
	return nil, true
}
