package stream

import (
	"io"

	"github.com/tap-format/tap/debug"
)

// source owns the byte accumulator between the reader and the grammar.
// Consumed bytes are evicted logically by advancing bufPos; the physical
// copy happens in fill once the consumed prefix dominates the buffer, so
// eviction stays amortized O(1) per byte.
type source struct {
	reader io.Reader

	buf      []byte
	bufStart int64 // absolute offset of buf[0] in the stream
	bufPos   int   // cursor within buf

	eof        bool
	err        error // read error held back until its bytes are consumed
	bufferSize int
}

func newSource(r io.Reader, bufferSize int) *source {
	return &source{reader: r, bufferSize: bufferSize}
}

// rest returns the unconsumed view. The slice is invalidated by fill.
func (s *source) rest() []byte {
	return s.buf[s.bufPos:]
}

// advance marks n bytes of rest as consumed.
func (s *source) advance(n int) {
	s.bufPos += n
}

// offset returns the absolute offset of the next unconsumed byte.
func (s *source) offset() int64 {
	return s.bufStart + int64(s.bufPos)
}

// fill appends one chunk from the reader. It reports whether new bytes
// arrived; false with a nil error means end of input. When a read returns
// bytes together with an error, the bytes win and the error is delivered
// on the next call.
func (s *source) fill() (bool, error) {
	if s.err != nil {
		err := s.err
		s.err = nil
		return false, err
	}
	if s.eof {
		return false, nil
	}
	if s.bufPos > s.bufferSize && len(s.buf) > 2*s.bufferSize {
		remaining := copy(s.buf, s.buf[s.bufPos:])
		s.buf = s.buf[:remaining]
		s.bufStart += int64(s.bufPos)
		s.bufPos = 0
		if debug.Fill() {
			debug.LogAny(map[string]any{"at": "compact", "start": s.bufStart, "len": remaining})
		}
	}
	chunk := make([]byte, s.bufferSize)
	for {
		n, err := s.reader.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
		}
		if debug.Fill() {
			debug.LogAny(map[string]any{"at": "fill", "n": n, "err": errString(err), "buffered": len(s.buf) - s.bufPos})
		}
		switch {
		case err == io.EOF:
			s.eof = true
			return n > 0, nil
		case err != nil:
			if n > 0 {
				s.err = err
				return true, nil
			}
			return false, err
		case n > 0:
			return true, nil
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
