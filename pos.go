package tap

import "fmt"

// Pos locates a unit in the input stream. Line is 1-based and counts
// physical lines from the version header; Offset is the absolute byte
// offset of the unit's first byte. A zero Pos means the position is
// unknown.
type Pos struct {
	Line   int
	Offset int64
}

func (p Pos) String() string {
	if p.Line == 0 {
		return fmt.Sprintf("byte %d", p.Offset)
	}
	return fmt.Sprintf("line %d (byte %d)", p.Line, p.Offset)
}
