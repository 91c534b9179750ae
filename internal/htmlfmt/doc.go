// Package htmlfmt reads and writes HTML.
//
// The Reader maps the common document elements (headings, paragraphs, lists,
// preformatted code, blockquotes, rules and the usual inline elements) and
// treats layout containers such as div or section as transparent. Anything
// else degrades to its text content. Inline whitespace is collapsed as a
// browser would render it.
//
// The Writer emits one element per node, gives every heading a unique id, and
// can wrap the body in a page envelope and highlight code with chroma.
package htmlfmt
