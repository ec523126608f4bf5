// Package jtoken provides the canonical in-memory document model and the
// streaming writer that builds it.
//
// - A closed set of token kinds (Null, Undefined, Object, Array and the scalar
//   kinds String, Integer, Float, Boolean, Date, Bytes) behind the Token interface
// - A Writer state machine that consumes JSON-emitter style calls
//   (WriteStartObject, WritePropertyName, WriteValue, WriteEnd, ...) and
//   assembles the tree, rejecting malformed call sequences at the offending call
// - A type normalizer mapping Go scalar types onto the canonical kinds
// - Emit for replaying a finished tree through the same call grammar
// - Source/JSONDriver and ReadFrom for building trees from tokenized text
//
// Design policy:
// - Keep the document model and the writer in the root package; tokenizers live
//   under source/, the JSON text sink under jsontext/, the CLI under cmd/jtoken.
// - A writer builds exactly one document. Finished trees are immutable by
//   convention and may be shared between goroutines for reading.
//
// Typical usage:
//
//	w := jtoken.NewWriter()
//	_ = w.WriteStartObject()
//	_ = w.WritePropertyName("name")
//	_ = w.WriteValue("Ada")
//	_ = w.WriteEnd()
//	doc := w.Token()
//
//	tok, err := jtoken.ReadFrom(ctx, jtoken.JSONBytes(data))
//	out, err := jsontext.Marshal(tok)
package jtoken
