// Package pipeline defines the stage contracts of a conversion and the
// format-independent stages themselves.
//
// A conversion runs in a fixed order:
//   - input preprocessing (line ending normalization)
//   - a format Reader turning bytes into a document.Document
//   - the Transform stage (table of contents)
//   - a format Writer streaming the document to an io.Writer
//
// Readers and Writers for concrete formats live in their own packages and
// are registered with the engine in the root package. Envelope wrapping is a
// Writer concern signaled through WriteOptions; the Transform stage never
// touches it.
package pipeline
