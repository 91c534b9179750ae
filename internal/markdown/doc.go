// Package markdown reads CommonMark into a document.Document and writes a
// document back as CommonMark.
//
// Parsing is done by goldmark; the goldmark AST is mapped onto the document
// model and never rendered directly. The Writer emits Markdown that the
// Reader parses back into an equal tree.
package markdown
