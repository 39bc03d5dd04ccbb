package token

import (
	"errors"
	"fmt"

	"github.com/tap-format/tap"
)

var (
	ErrBadUTF8 = errors.New("bad utf8")
)

// SyntaxError reports content that can never form a recognized unit,
// together with the position of the offending byte.
type SyntaxError struct {
	Err error
	Pos tap.Pos
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func NewSyntaxError(err error, pos tap.Pos) *SyntaxError {
	return &SyntaxError{Err: err, Pos: pos}
}
