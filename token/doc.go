// Package token implements the TAP version 14 line grammar.
//
// [Scan] recognizes one unit (test point, plan, bail-out, pragma, comment,
// empty or unrecognized line) at the front of a byte slice. [ScanVersion]
// matches the mandatory header line.
//
// Scanners distinguish three outcomes: a parsed unit with its consumed
// byte count, io.EOF when the slice is a valid prefix whose outcome more
// input could still change, and *SyntaxError when the content can never
// form a unit. Streaming callers feed growing slices and retry on io.EOF.
package token
