// Package debug gates diagnostic tracing of the parser internals behind
// environment variables. TAP_DEBUG enables everything; TAP_DEBUG_SCAN,
// TAP_DEBUG_FILL and TAP_DEBUG_STREAM enable single areas. Values are
// parsed with strconv.ParseBool. Tracing never alters parsing behavior.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan   bool
	Fill   bool
	Stream bool
}

var d *debug

func init() {
	d = &debug{}
	all := boolEnv("TAP_DEBUG")
	d.Scan = all || boolEnv("TAP_DEBUG_SCAN")
	d.Fill = all || boolEnv("TAP_DEBUG_FILL")
	d.Stream = all || boolEnv("TAP_DEBUG_STREAM")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Scan reports whether grammar-level scanning is traced.
func Scan() bool {
	return d.Scan
}

// Fill reports whether buffer refill and compaction are traced.
func Fill() bool {
	return d.Fill
}

// Stream reports whether decoded records and stream errors are traced.
func Stream() bool {
	return d.Stream
}

// LogAny writes v to stderr as one JSON line, falling back to plain
// formatting when v does not marshal.
func LogAny(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	b = append(b, '\n')
	os.Stderr.Write(b)
}
