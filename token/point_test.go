package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tap-format/tap"
)

func num(n uint64) *uint64 {
	return &n
}

func TestScanTestPoint(t *testing.T) {
	cases := []struct {
		name string
		line string
		want *tap.TestPoint
	}{
		{
			name: "bare ok",
			line: "ok",
			want: &tap.TestPoint{Status: true},
		},
		{
			name: "bare not ok",
			line: "not ok",
			want: &tap.TestPoint{Status: false},
		},
		{
			name: "number only",
			line: "ok 3",
			want: &tap.TestPoint{Status: true, Number: num(3)},
		},
		{
			name: "marker description",
			line: "ok - works",
			want: &tap.TestPoint{Status: true, Description: "works"},
		},
		{
			name: "bare description",
			line: "ok works",
			want: &tap.TestPoint{Status: true, Description: "works"},
		},
		{
			name: "number and description",
			line: "not ok 42 - broken",
			want: &tap.TestPoint{Number: num(42), Description: "broken"},
		},
		{
			name: "legacy skip with noise and padding",
			line: "ok 3 - this is a stupid description # SkiPped: stupid Legacy skip ",
			want: &tap.TestPoint{
				Status:      true,
				Number:      num(3),
				Description: "this is a stupid description",
				Directive:   &tap.Directive{Kind: tap.Skip, Reason: "stupid Legacy skip"},
			},
		},
		{
			name: "upper todo no reason",
			line: "ok # TODO",
			want: &tap.TestPoint{Status: true, Directive: &tap.Directive{Kind: tap.Todo}},
		},
		{
			name: "lower todo no reason",
			line: "ok # todo",
			want: &tap.TestPoint{Status: true, Directive: &tap.Directive{Kind: tap.Todo}},
		},
		{
			name: "skip after number",
			line: "ok 3 # skip",
			want: &tap.TestPoint{Status: true, Number: num(3), Directive: &tap.Directive{Kind: tap.Skip}},
		},
		{
			name: "todo with reason",
			line: "ok 1 # ToDo works on tuesdays",
			want: &tap.TestPoint{
				Status:    true,
				Number:    num(1),
				Directive: &tap.Directive{Kind: tap.Todo, Reason: "works on tuesdays"},
			},
		},
		{
			name: "todo with colon noise",
			line: "ok - later # TODO: legacy",
			want: &tap.TestPoint{
				Status:      true,
				Description: "later",
				Directive:   &tap.Directive{Kind: tap.Todo, Reason: "legacy"},
			},
		},
		{
			name: "description trimmed",
			line: "ok -   padded   ",
			want: &tap.TestPoint{Status: true, Description: "padded"},
		},
		{
			name: "blank description is absent",
			line: "ok -  ",
			want: &tap.TestPoint{Status: true},
		},
		{
			name: "hash without space stays in description",
			line: "ok - a#b",
			want: &tap.TestPoint{Status: true, Description: "a#b"},
		},
		{
			name: "number boundary falls through",
			line: "ok 3a - y",
			want: &tap.TestPoint{Status: true, Description: "3a - y"},
		},
		{
			name: "number overflow falls through",
			line: "ok 99999999999999999999999999 - overflow",
			want: &tap.TestPoint{Status: true, Description: "99999999999999999999999999 - overflow"},
		},
		{
			name: "glued number falls through",
			line: "ok 3- d",
			want: &tap.TestPoint{Status: true, Description: "3- d"},
		},
		{
			name: "double space then directive",
			line: "ok  # todo",
			want: &tap.TestPoint{Status: true, Directive: &tap.Directive{Kind: tap.Todo}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := scanTestPoint([]byte(tc.line))
			require.True(t, ok, "line %q did not scan", tc.line)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestScanTestPointRejects(t *testing.T) {
	lines := []string{
		"okay",
		"not okay",
		"ok - desc # unknown",
		"ok -x",
		"ok - a # b # todo",
		"ok - # TODO",
		"ok # to",
	}
	for _, line := range lines {
		if p, ok := scanTestPoint([]byte(line)); ok {
			t.Fatalf("line %q scanned as %v, want reject", line, p)
		}
	}
}
