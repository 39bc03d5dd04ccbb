package token

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tap-format/tap"
)

func TestScanYAMLBlock(t *testing.T) {
	input := "not ok 2 - dies\n" +
		"  ---\n" +
		"  message: 'oops'\n" +
		"  severity: fail\n" +
		"  ...\n"
	rec, n, err := Scan([]byte(input), false, tap.Pos{Line: 1})
	require.NoError(t, err)
	require.Equal(t, len(input), n)
	require.Equal(t, tap.KindTestPoint, rec.Kind)
	require.Equal(t, "dies", rec.Point.Description)
	require.Equal(t, "  message: 'oops'\n  severity: fail\n", string(rec.Point.YAML))
}

func TestScanYAMLBlockEmptyInterior(t *testing.T) {
	rec, n, err := Scan([]byte("ok\n  ---\n  ...\n"), false, tap.Pos{})
	require.NoError(t, err)
	require.Equal(t, 15, n)
	if rec.Point.YAML == nil {
		t.Fatal("empty block should still be present")
	}
	require.Len(t, rec.Point.YAML, 0)
}

func TestScanYAMLBlockIncomplete(t *testing.T) {
	// No close marker yet: undecided regardless of how much interior has
	// arrived, and still undecided at EOF only from Scan's point of view
	// (the caller turns it into a truncation).
	for _, in := range []string{
		"ok\n  ---\n",
		"ok\n  ---\n  a: 1\n",
		"ok\n  ---\n  a: 1\n  ..",
		"ok\n  ---\n  ....\n",
	} {
		for _, atEOF := range []bool{false, true} {
			if _, _, err := Scan([]byte(in), atEOF, tap.Pos{}); err != io.EOF {
				t.Fatalf("input %q atEOF=%v: got %v, want io.EOF", in, atEOF, err)
			}
		}
	}
}

func TestScanYAMLBlockRuledOut(t *testing.T) {
	// Bytes that diverge from the open marker mean the test point stands
	// alone and the following line is scanned separately.
	d := []byte("ok\n  --x\n")
	rec, n, err := Scan(d, false, tap.Pos{Line: 1})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Nil(t, rec.Point.YAML)

	rec, _, err = Scan(d[n:], true, tap.Pos{Line: 2, Offset: 3})
	require.NoError(t, err)
	require.Equal(t, tap.KindAnything, rec.Kind)
	require.Equal(t, "  --x", rec.Text)
}

func TestScanYAMLBlockInteriorVerbatim(t *testing.T) {
	// Blank lines and near-miss close markers belong to the interior.
	input := "ok\n  ---\n\n  ....\n not indented\n  ...\n"
	rec, n, err := Scan([]byte(input), false, tap.Pos{})
	require.NoError(t, err)
	require.Equal(t, len(input), n)
	require.Equal(t, "\n  ....\n not indented\n", string(rec.Point.YAML))
}

func TestScanYAMLBlockBadUTF8(t *testing.T) {
	input := "ok\n  ---\n  junk: \xff\n  ...\n"
	_, _, err := Scan([]byte(input), false, tap.Pos{Line: 1})
	if !errors.Is(err, ErrBadUTF8) {
		t.Fatalf("got %v, want ErrBadUTF8", err)
	}
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 3, serr.Pos.Line)
}
