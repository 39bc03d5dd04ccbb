package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tap-format/tap"
	"github.com/tap-format/tap/token"
)

// Encoder writes records in canonical TAP version 14 wire form. A
// complete stream is WriteHeader followed by one WriteRecord per record.
// The output of WriteRecord reparses to an equal record; incidental
// whitespace from the original input is not reproduced.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteHeader emits the version line.
func (e *Encoder) WriteHeader() error {
	_, err := io.WriteString(e.w, token.Version+"\n")
	return err
}

// WriteRecord emits rec as one unit, always ending on a line terminator.
func (e *Encoder) WriteRecord(rec *tap.Record) error {
	var b bytes.Buffer
	if err := appendRecord(&b, rec); err != nil {
		return err
	}
	_, err := e.w.Write(b.Bytes())
	return err
}

func appendRecord(b *bytes.Buffer, rec *tap.Record) error {
	switch rec.Kind {
	case tap.KindTestPoint:
		appendTestPoint(b, rec.Point)
	case tap.KindPlan:
		if rec.Plan.Reason == "" {
			fmt.Fprintf(b, "1..%d\n", rec.Plan.Count)
		} else {
			fmt.Fprintf(b, "1..%d # %s\n", rec.Plan.Count, rec.Plan.Reason)
		}
	case tap.KindBailOut:
		b.WriteString("Bail out!")
		b.WriteString(rec.Bail.Reason)
		b.WriteByte('\n')
	case tap.KindPragma:
		sign := "-"
		if rec.Pragma.Enabled {
			sign = "+"
		}
		fmt.Fprintf(b, "pragma %s%s\n", sign, rec.Pragma.Key)
	case tap.KindComment:
		b.WriteByte('#')
		b.WriteString(rec.Comment)
		b.WriteByte('\n')
	case tap.KindEmpty:
		b.WriteByte('\n')
	case tap.KindAnything:
		b.WriteString(rec.Text)
		b.WriteByte('\n')
	default:
		return fmt.Errorf("unknown record kind %d", rec.Kind)
	}
	return nil
}

func appendTestPoint(b *bytes.Buffer, p *tap.TestPoint) {
	if p.Status {
		b.WriteString("ok")
	} else {
		b.WriteString("not ok")
	}
	if p.Number != nil {
		fmt.Fprintf(b, " %d", *p.Number)
	}
	if p.Description != "" {
		b.WriteString(" - ")
		b.WriteString(p.Description)
	}
	if p.Directive != nil {
		b.WriteString(" # ")
		b.WriteString(p.Directive.Kind.String())
		if p.Directive.Reason != "" {
			b.WriteByte(' ')
			b.WriteString(p.Directive.Reason)
		}
	}
	b.WriteByte('\n')
	if p.YAML != nil {
		b.WriteString("  ---\n")
		b.Write(p.YAML)
		b.WriteString("  ...\n")
	}
}
