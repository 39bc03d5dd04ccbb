// Package tap defines the data model for TAP version 14 streams: the
// record variants produced by parsing (test points, plans, bail-outs,
// pragmas, comments, filler lines) and the error kinds shared by the
// scanning and streaming layers.
//
// Parsing lives in the stream subpackage:
//
//	dec, err := stream.NewDecoder(r)
//	...
//	for {
//		rec, err := dec.ReadRecord()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
//
// The line grammar itself is in the token subpackage.
package tap
