package tap

import (
	"fmt"
	"strings"
)

// Record is one parsed line-level unit of a TAP stream. Kind selects the
// variant; exactly one of the payload fields below is meaningful for it.
type Record struct {
	Kind Kind

	// Pos is where the unit began in the input.
	Pos Pos

	// Variant payloads (only one is set based on Kind).
	Point  *TestPoint // KindTestPoint
	Plan   *Plan      // KindPlan
	Bail   *BailOut   // KindBailOut
	Pragma *Pragma    // KindPragma

	// Comment is the text after '#' for KindComment, empty when the
	// comment carried no text.
	Comment string

	// Text is the raw line content for KindAnything.
	Text string
}

// Kind identifies which variant a Record holds.
type Kind int

const (
	KindTestPoint Kind = iota
	KindPlan
	KindBailOut
	KindPragma
	KindComment
	KindEmpty
	KindAnything
)

func (k Kind) String() string {
	switch k {
	case KindTestPoint:
		return "TestPoint"
	case KindPlan:
		return "Plan"
	case KindBailOut:
		return "BailOut"
	case KindPragma:
		return "Pragma"
	case KindComment:
		return "Comment"
	case KindEmpty:
		return "Empty"
	case KindAnything:
		return "Anything"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TestPoint is one reported test outcome. Status is always meaningful; the
// remaining fields are independently optional and mirror exactly what the
// input line carried.
type TestPoint struct {
	// Status is true for "ok", false for "not ok".
	Status bool

	// Number is the test number, nil when the line carried none. The
	// parser does not check uniqueness or ordering.
	Number *uint64

	// Description is the trimmed free text, empty when absent.
	Description string

	// Directive is the TODO/SKIP annotation, nil when absent.
	Directive *Directive

	// YAML is the verbatim interior of the attached diagnostic block,
	// nil when no block followed the line. A present block with no
	// interior lines is non-nil and empty.
	YAML []byte
}

func (p *TestPoint) String() string {
	var b strings.Builder
	if p.Status {
		b.WriteString("ok")
	} else {
		b.WriteString("not ok")
	}
	if p.Number != nil {
		fmt.Fprintf(&b, " %d", *p.Number)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, " - %s", p.Description)
	}
	if p.Directive != nil {
		fmt.Fprintf(&b, " # %s", p.Directive)
	}
	if p.YAML != nil {
		fmt.Fprintf(&b, " +yaml(%d bytes)", len(p.YAML))
	}
	return b.String()
}

// Directive is a TODO or SKIP annotation on a test point.
type Directive struct {
	Kind DirectiveKind

	// Reason is the trimmed free text after the keyword, empty when
	// absent.
	Reason string
}

func (d *Directive) String() string {
	if d.Reason == "" {
		return d.Kind.String()
	}
	return d.Kind.String() + " " + d.Reason
}

// DirectiveKind distinguishes TODO from SKIP.
type DirectiveKind int

const (
	Todo DirectiveKind = iota
	Skip
)

func (k DirectiveKind) String() string {
	switch k {
	case Todo:
		return "TODO"
	case Skip:
		return "SKIP"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DirectiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Plan is a "1..N" line declaring the expected test count. The parser
// delivers every plan it sees and leaves cardinality checks to the caller.
type Plan struct {
	Count uint64

	// Reason is the text after " # ", empty when absent.
	Reason string
}

func (p *Plan) String() string {
	if p.Reason == "" {
		return fmt.Sprintf("1..%d", p.Count)
	}
	return fmt.Sprintf("1..%d # %s", p.Count, p.Reason)
}

// BailOut is an out-of-band abort signal. It is delivered as an ordinary
// record: deciding whether to stop consuming after one is the caller's
// concern, and parsing continues if the caller keeps pulling.
type BailOut struct {
	// Reason is the verbatim text after "Bail out!", empty when absent.
	Reason string
}

func (b *BailOut) String() string {
	if b.Reason == "" {
		return "Bail out!"
	}
	return "Bail out!" + b.Reason
}

// Pragma is a named boolean switch ("pragma +key" / "pragma -key"). It
// affects consumer-side interpretation only; the parser never changes its
// own behavior based on one.
type Pragma struct {
	Key     string
	Enabled bool
}

func (p *Pragma) String() string {
	sign := "-"
	if p.Enabled {
		sign = "+"
	}
	return "pragma " + sign + p.Key
}

func (r *Record) String() string {
	switch r.Kind {
	case KindTestPoint:
		return r.Point.String()
	case KindPlan:
		return r.Plan.String()
	case KindBailOut:
		return r.Bail.String()
	case KindPragma:
		return r.Pragma.String()
	case KindComment:
		return "# " + r.Comment
	case KindEmpty:
		return "<empty>"
	case KindAnything:
		return r.Text
	default:
		return "<unknown>"
	}
}
