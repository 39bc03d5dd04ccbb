// Package stream decodes TAP version 14 byte streams into records and
// encodes records back to wire form. The Decoder pulls bytes from an
// io.Reader strictly on demand, so sources that trickle input at
// arbitrary chunk boundaries are handled without buffering the whole
// stream.
package stream

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/tap-format/tap"
	"github.com/tap-format/tap/debug"
	"github.com/tap-format/tap/token"
)

// Decoder reads a TAP stream and yields one record per pull. Construction
// performs the version handshake: the header line must arrive and match
// before NewDecoder returns. A Decoder is not safe for concurrent use.
type Decoder struct {
	src *source
	pos tap.Pos
	err error
}

// NewDecoder reads the version header from r and returns a decoder for
// the records that follow. It fails with tap.ErrMalformedHeader when the
// first line is not the exact version literal, with tap.ErrTruncated when
// r ends inside the header, or with the reader's own error.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	d := &Decoder{}
	if err := d.Reset(r, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset discards all decoder state and starts over on r, performing the
// version handshake again. On failure the decoder stays unusable until
// the next successful Reset.
func (d *Decoder) Reset(r io.Reader, opts ...Option) error {
	o := newOptions(opts)
	d.src = newSource(r, o.bufferSize)
	d.pos = tap.Pos{}
	d.err = nil
	if err := d.handshake(); err != nil {
		d.err = err
		return err
	}
	return nil
}

func (d *Decoder) handshake() error {
	for {
		n, err := token.ScanVersion(d.src.rest())
		switch {
		case err == nil:
			d.src.advance(n)
			d.pos = tap.Pos{Line: 2, Offset: d.src.offset()}
			if debug.Stream() {
				debug.LogAny(map[string]any{"at": "handshake", "version": token.Version})
			}
			return nil
		case err == io.EOF:
			more, ferr := d.src.fill()
			if ferr != nil {
				return ferr
			}
			if !more {
				return fmt.Errorf("%w: stream ended inside the header", tap.ErrTruncated)
			}
		default:
			return fmt.Errorf("%w: got %q", err, headOf(d.src.rest()))
		}
	}
}

// headOf trims the unconsumed buffer to the offending header line for an
// error message.
func headOf(d []byte) []byte {
	if i := bytes.IndexByte(d, '\n'); i >= 0 {
		d = d[:i]
	}
	if len(d) > len(token.Version) {
		d = d[:len(token.Version)]
	}
	return d
}

// ReadRecord returns the next record in input order. It returns io.EOF at
// clean exhaustion. Any other error is terminal and every later call
// returns it again: a *token.SyntaxError for content no unit can match,
// tap.ErrTruncated when the source ends mid-unit, or the reader's own
// error passed through as-is.
func (d *Decoder) ReadRecord() (*tap.Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	rec, err := d.readRecord()
	if err != nil {
		d.err = err
		if err != io.EOF && debug.Stream() {
			debug.LogAny(map[string]any{"at": "error", "err": err.Error()})
		}
		return nil, err
	}
	if debug.Stream() {
		debug.LogAny(map[string]any{"at": "record", "kind": rec.Kind, "pos": rec.Pos})
	}
	return rec, nil
}

func (d *Decoder) readRecord() (*tap.Record, error) {
	for {
		rest := d.src.rest()
		if len(rest) == 0 && d.src.eof {
			return nil, io.EOF
		}
		atEOF := d.src.eof
		rec, n, err := token.Scan(rest, atEOF, d.pos)
		if debug.Scan() {
			debug.LogAny(map[string]any{"at": "scan", "buffered": len(rest), "atEOF": atEOF, "n": n, "err": errString(err)})
		}
		switch {
		case err == nil:
			d.src.advance(n)
			d.pos = tap.Pos{
				Line:   d.pos.Line + bytes.Count(rest[:n], []byte{'\n'}),
				Offset: d.pos.Offset + int64(n),
			}
			return &rec, nil
		case err == io.EOF:
			if atEOF {
				// The grammar has seen the final state of the buffer and
				// still cannot complete a unit.
				return nil, fmt.Errorf("%w at %s", tap.ErrTruncated, d.pos)
			}
			// fill either appends bytes, latches EOF, or fails; each way
			// the next scan attempt is decidable further.
			if _, ferr := d.src.fill(); ferr != nil {
				return nil, ferr
			}
		default:
			return nil, err
		}
	}
}

// ReadTestPoint returns the next test point, discarding every other
// record kind on the way. io.EOF and terminal errors behave exactly as in
// ReadRecord.
func (d *Decoder) ReadTestPoint() (*tap.TestPoint, error) {
	for {
		rec, err := d.ReadRecord()
		if err != nil {
			return nil, err
		}
		if rec.Kind == tap.KindTestPoint {
			return rec.Point, nil
		}
	}
}

// All returns an iterator over the remaining records. Iteration ends at
// clean exhaustion; a terminal error is yielded once with a nil record.
func (d *Decoder) All() iter.Seq2[*tap.Record, error] {
	return func(yield func(*tap.Record, error) bool) {
		for {
			rec, err := d.ReadRecord()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
